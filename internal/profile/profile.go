// Package profile computes per-column descriptive statistics and the
// whole-table summary that feed the HTML report.
package profile

import (
	"math"
	"sort"

	"github.com/KaramelBytes/datasight-cli/internal/dataset"
)

// Class is the dispatch key for profiling and rendering, decided once per
// column from its declared element type.
type Class int

const (
	ClassNumeric Class = iota
	ClassCategorical
	ClassUnsupported
)

func (c Class) String() string {
	switch c {
	case ClassNumeric:
		return "numeric"
	case ClassCategorical:
		return "categorical"
	default:
		return "unsupported"
	}
}

// Classify assigns a column to a class by its declared element type. An
// all-missing column still classifies by type rather than being skipped.
func Classify(c *dataset.Column) Class {
	switch c.Type {
	case dataset.TypeFloat, dataset.TypeInt:
		return ClassNumeric
	case dataset.TypeBool, dataset.TypeString:
		return ClassCategorical
	default:
		return ClassUnsupported
	}
}

// Options controls profiling behavior.
type Options struct {
	// MaxCategories caps the number of named buckets reported for a
	// categorical column; values beyond it aggregate into an "other" bucket.
	MaxCategories int
	// Quantiles to report for numeric columns, each in (0, 1).
	Quantiles []float64
}

// DefaultOptions returns the application defaults.
func DefaultOptions() Options {
	return Options{
		MaxCategories: 10,
		Quantiles:     []float64{0.25, 0.5, 0.75},
	}
}

// CategoryCount is one named frequency bucket of a categorical column.
type CategoryCount struct {
	Value string
	Count int
}

// QuantileValue pairs a requested quantile with its computed value.
type QuantileValue struct {
	Q     float64
	Value float64
}

// ColumnProfile bundles the computed statistics for one column. Statistics
// that cannot be computed from the available data are flagged rather than
// reported as numeric sentinels.
type ColumnProfile struct {
	Name    string
	Class   Class
	NonNull int
	Missing int

	// Numeric statistics. Min/Max/Mean are valid when HasStats; Std is
	// valid when HasStd (at least two non-missing values; zero variance
	// reports Std == 0).
	Min       float64
	Max       float64
	Mean      float64
	Std       float64
	HasStats  bool
	HasStd    bool
	Quantiles []QuantileValue

	// Categorical statistics.
	Unique     int
	Top        []CategoryCount
	OtherCount int
	HasOther   bool
}

// Profile computes a ColumnProfile for the column given its class. It never
// fails: degenerate inputs (all-missing, single value, unsupported type)
// produce profiles with the corresponding statistics flagged off.
func Profile(c *dataset.Column, class Class, opt Options) ColumnProfile {
	p := ColumnProfile{Name: c.Name, Class: class}
	n := c.Len()
	for i := 0; i < n; i++ {
		if c.Missing(i) {
			p.Missing++
		} else {
			p.NonNull++
		}
	}
	switch class {
	case ClassNumeric:
		profileNumeric(c, opt, &p)
	case ClassCategorical:
		profileCategorical(c, opt, &p)
	}
	return p
}

func profileNumeric(c *dataset.Column, opt Options, p *ColumnProfile) {
	vals := make([]float64, 0, p.NonNull)
	for i := 0; i < c.Len(); i++ {
		if x, ok := c.Float(i); ok {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return
	}
	p.HasStats = true
	p.Min = vals[0]
	p.Max = vals[0]
	var sum float64
	for _, x := range vals {
		if x < p.Min {
			p.Min = x
		}
		if x > p.Max {
			p.Max = x
		}
		sum += x
	}
	p.Mean = sum / float64(len(vals))
	if len(vals) >= 2 {
		var m2 float64
		for _, x := range vals {
			d := x - p.Mean
			m2 += d * d
		}
		p.Std = math.Sqrt(m2 / float64(len(vals)-1))
		p.HasStd = true
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	for _, q := range opt.Quantiles {
		p.Quantiles = append(p.Quantiles, QuantileValue{Q: q, Value: quantile(sorted, q)})
	}
}

func profileCategorical(c *dataset.Column, opt Options, p *ColumnProfile) {
	maxCats := opt.MaxCategories
	if maxCats < 1 {
		maxCats = 1
	}
	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Label(i)
		if !ok {
			continue
		}
		if _, seen := counts[v]; !seen {
			firstSeen[v] = i
		}
		counts[v]++
	}
	p.Unique = len(counts)
	if p.Unique == 0 {
		return
	}
	tops := make([]CategoryCount, 0, len(counts))
	for v, n := range counts {
		tops = append(tops, CategoryCount{Value: v, Count: n})
	}
	// Descending by frequency, ties broken by first appearance.
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return firstSeen[tops[i].Value] < firstSeen[tops[j].Value]
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > maxCats {
		for _, t := range tops[maxCats:] {
			p.OtherCount += t.Count
		}
		tops = tops[:maxCats]
		p.HasOther = true
	}
	p.Top = tops
}

// quantile computes a linear-interpolated quantile from an ascending-sorted
// slice, interpolating at q*(n-1) between order statistics.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
