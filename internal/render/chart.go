// Package render turns column profiles into self-contained PNG chart
// artifacts suitable for inline data-URI embedding.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/datasight-cli/internal/dataset"
	"github.com/KaramelBytes/datasight-cli/internal/profile"
)

const (
	chartWidth  = 720
	chartHeight = 420
)

// Chart is an encoded raster image plus a caption, ready for embedding.
type Chart struct {
	PNG     []byte
	Caption string
}

// DataURI encodes the chart for inline embedding in an HTML document.
func (c *Chart) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(c.PNG)
}

// Options controls chart rendering.
type Options struct {
	// Bins is the number of equal-width histogram bins for numeric columns.
	Bins int
}

// DefaultOptions returns the application defaults.
func DefaultOptions() Options {
	return Options{Bins: 20}
}

var barFill = drawing.Color{R: 84, G: 112, B: 198, A: 255}

// Histogram renders an equal-width-bin histogram for a numeric column.
// It returns (nil, nil) when the column has no non-missing values: there is
// no range to bin and no chart to draw. A zero range (all values identical)
// renders a single bin rather than failing.
func Histogram(c *dataset.Column, opt Options) (*Chart, error) {
	if opt.Bins < 1 {
		return nil, fmt.Errorf("render histogram %q: invalid bin count %d", c.Name, opt.Bins)
	}
	var vals []float64
	for i := 0; i < c.Len(); i++ {
		if x, ok := c.Float(i); ok {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return nil, nil
	}
	lo, hi := vals[0], vals[0]
	for _, x := range vals {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	bins := opt.Bins
	if hi == lo {
		bins = 1
	}
	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, x := range vals {
		idx := 0
		if width > 0 {
			idx = int((x - lo) / width)
			if idx >= bins { // x == hi lands in the last bin
				idx = bins - 1
			}
		}
		counts[idx]++
	}
	maxCount := 0
	bars := make([]chart.Value, bins)
	for i, n := range counts {
		if n > maxCount {
			maxCount = n
		}
		label := ""
		// Crowded axes are unreadable; label every other bin beyond 12.
		if bins <= 12 || i%2 == 0 {
			label = fmt.Sprintf("%.3g", lo+float64(i)*width)
		}
		bars[i] = chart.Value{Value: float64(n), Label: label, Style: chart.Style{FillColor: barFill, StrokeWidth: 0}}
	}
	caption := fmt.Sprintf("Histogram of %s (%d bins)", c.Name, bins)
	return renderBars(bars, caption, maxCount)
}

// BarChart renders the top-category frequencies of a categorical column,
// including the aggregate "other" bucket when present. It returns (nil, nil)
// for a column with no categories.
func BarChart(p profile.ColumnProfile) (*Chart, error) {
	if len(p.Top) == 0 {
		return nil, nil
	}
	maxCount := 0
	bars := make([]chart.Value, 0, len(p.Top)+1)
	for _, t := range p.Top {
		if t.Count > maxCount {
			maxCount = t.Count
		}
		bars = append(bars, chart.Value{Value: float64(t.Count), Label: truncateLabel(t.Value, 14), Style: chart.Style{FillColor: barFill, StrokeWidth: 0}})
	}
	if p.HasOther {
		if p.OtherCount > maxCount {
			maxCount = p.OtherCount
		}
		bars = append(bars, chart.Value{Value: float64(p.OtherCount), Label: "(other)", Style: chart.Style{FillColor: drawing.Color{R: 160, G: 160, B: 160, A: 255}, StrokeWidth: 0}})
	}
	caption := fmt.Sprintf("Top %d categories of %s", len(p.Top), p.Name)
	return renderBars(bars, caption, maxCount)
}

func renderBars(bars []chart.Value, caption string, maxCount int) (*Chart, error) {
	// An explicit axis range keeps output deterministic and avoids the
	// zero-range panic when every bar has the same height.
	yMax := float64(maxCount)
	if yMax <= 0 {
		yMax = 1
	}
	barWidth := (chartWidth - 120) / len(bars)
	if barWidth < 4 {
		barWidth = 4
	} else if barWidth > 60 {
		barWidth = 60
	}
	bc := chart.BarChart{
		Title:    caption,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth,
		Bars:     bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.05},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", math.Round(f))
				}
				return ""
			},
		},
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart %q: %w", caption, err)
	}
	return &Chart{PNG: buf.Bytes(), Caption: caption}, nil
}

func truncateLabel(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
