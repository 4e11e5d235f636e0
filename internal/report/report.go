// Package report runs the profiling pipeline over a table and assembles the
// results into one self-contained, navigable HTML document.
package report

import (
	"fmt"
	"html/template"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/KaramelBytes/datasight-cli/internal/dataset"
	"github.com/KaramelBytes/datasight-cli/internal/profile"
	"github.com/KaramelBytes/datasight-cli/internal/render"
)

// Options configures the pipeline.
type Options struct {
	Title   string
	Profile profile.Options
	Render  render.Options
}

// DefaultOptions returns the application defaults.
func DefaultOptions() Options {
	return Options{
		Title:   "Data Analysis Report",
		Profile: profile.DefaultOptions(),
		Render:  render.DefaultOptions(),
	}
}

// Analysis holds everything computed from one table: the dataset summary,
// the ordered per-column profiles and charts, and the correlation result.
type Analysis struct {
	Source   string
	Summary  profile.Summary
	Profiles []profile.ColumnProfile
	Corr     *profile.CorrMatrix

	opts       Options
	charts     []*render.Chart
	chartNotes []string
	corrChart  *render.Chart
	corrNote   string
}

// Analyze runs classification, profiling, rendering, summarization, and
// correlation over the table. Columns are processed concurrently; a failure
// rendering one column's chart is recorded on that column alone and never
// aborts the run. The only fatal input condition is a malformed table shape.
func Analyze(t *dataset.Table, opts Options) (*Analysis, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	ncol := len(t.Columns)
	a := &Analysis{
		Source:     t.Name,
		Profiles:   make([]profile.ColumnProfile, ncol),
		charts:     make([]*render.Chart, ncol),
		chartNotes: make([]string, ncol),
		opts:       opts,
	}
	classes := make([]profile.Class, ncol)
	for i := range t.Columns {
		classes[i] = profile.Classify(&t.Columns[i])
	}

	// Per-column work is independent; fan out over a bounded pool and
	// reassemble by index so the report keeps original column order.
	workers := runtime.GOMAXPROCS(0)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range t.Columns {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			col := &t.Columns[i]
			a.Profiles[i] = profile.Profile(col, classes[i], opts.Profile)
			var chart *render.Chart
			var err error
			switch classes[i] {
			case profile.ClassNumeric:
				chart, err = render.Histogram(col, opts.Render)
			case profile.ClassCategorical:
				chart, err = render.BarChart(a.Profiles[i])
			}
			if err != nil {
				a.chartNotes[i] = fmt.Sprintf("Chart omitted: %v", err)
				return
			}
			a.charts[i] = chart
		}(i)
	}
	wg.Wait()

	a.Summary = profile.Summarize(t, a.Profiles)
	a.Corr = profile.Correlate(t, classes)
	if a.Corr == nil {
		a.corrNote = "Not applicable: fewer than two numeric columns."
	} else {
		hm, err := render.Heatmap(a.Corr)
		if err != nil {
			a.corrNote = fmt.Sprintf("Heatmap omitted: %v", err)
		} else {
			a.corrChart = hm
		}
	}
	return a, nil
}

// Build is the single-call pipeline: analyze the table and assemble the
// HTML document.
func Build(t *dataset.Table, opts Options) (string, error) {
	a, err := Analyze(t, opts)
	if err != nil {
		return "", err
	}
	return a.HTML()
}

type statRow struct {
	Label string
	Value string
}

type sectionView struct {
	ID           string
	Name         string
	Class        string
	Active       bool
	Stats        []statRow
	ChartURI     template.URL
	ChartCaption string
	ChartNote    string
}

type pageView struct {
	Title    string
	Source   string
	RunID    string
	Summary  profile.Summary
	Sections []sectionView
	CorrURI  template.URL
	CorrNote string
}

// HTML assembles the final document. Assembly failure is fatal: no partial
// document is returned.
func (a *Analysis) HTML() (string, error) {
	view := pageView{
		Title:    a.opts.Title,
		Source:   a.Source,
		RunID:    uuid.NewString(),
		Summary:  a.Summary,
		CorrNote: a.corrNote,
	}
	if a.corrChart != nil {
		view.CorrURI = template.URL(a.corrChart.DataURI())
	}
	for i, p := range a.Profiles {
		sec := sectionView{
			ID:        fmt.Sprintf("col-%d", i),
			Name:      p.Name,
			Class:     p.Class.String(),
			Active:    i == 0,
			Stats:     statRows(p),
			ChartNote: a.chartNotes[i],
		}
		if c := a.charts[i]; c != nil {
			sec.ChartURI = template.URL(c.DataURI())
			sec.ChartCaption = c.Caption
		}
		view.Sections = append(view.Sections, sec)
	}

	tmpl, err := template.New("report").Parse(pageTemplate)
	if err != nil {
		return "", fmt.Errorf("assemble report: parse template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("assemble report: %w", err)
	}
	return b.String(), nil
}

const notApplicable = "n/a"

// statRows renders a profile as the deterministic label/value pairs shown in
// a column's statistics table.
func statRows(p profile.ColumnProfile) []statRow {
	rows := []statRow{
		{"Count", fmt.Sprintf("%d", p.NonNull)},
		{"Missing values", fmt.Sprintf("%d", p.Missing)},
	}
	switch p.Class {
	case profile.ClassNumeric:
		rows = append(rows,
			statRow{"Mean", numStat(p.Mean, p.HasStats)},
			statRow{"Std deviation", numStat(p.Std, p.HasStd)},
			statRow{"Min", numStat(p.Min, p.HasStats)},
		)
		for _, q := range p.Quantiles {
			rows = append(rows, statRow{fmt.Sprintf("%.0f%%", q.Q*100), numStat(q.Value, p.HasStats)})
		}
		rows = append(rows, statRow{"Max", numStat(p.Max, p.HasStats)})
	case profile.ClassCategorical:
		rows = append(rows, statRow{"Unique", fmt.Sprintf("%d", p.Unique)})
		for i, t := range p.Top {
			rows = append(rows, statRow{fmt.Sprintf("Top %d", i+1), fmt.Sprintf("%s (%d)", t.Value, t.Count)})
		}
		if p.HasOther {
			rows = append(rows, statRow{"Other", fmt.Sprintf("%d values (%d)", p.Unique-len(p.Top), p.OtherCount)})
		}
	default:
		rows = append(rows, statRow{"Analysis", "not supported for this column type"})
	}
	return rows
}

func numStat(v float64, ok bool) string {
	if !ok {
		return notApplicable
	}
	return fmt.Sprintf("%.4g", v)
}
