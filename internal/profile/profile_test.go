package profile

import (
	"math"
	"testing"
	"time"

	"github.com/KaramelBytes/datasight-cli/internal/dataset"
)

func numCol(name string, cells ...any) dataset.Column {
	return dataset.Column{Name: name, Type: dataset.TypeFloat, Cells: cells}
}

func strCol(name string, cells ...any) dataset.Column {
	return dataset.Column{Name: name, Type: dataset.TypeString, Cells: cells}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		typ  dataset.Type
		want Class
	}{
		{dataset.TypeFloat, ClassNumeric},
		{dataset.TypeInt, ClassNumeric},
		{dataset.TypeBool, ClassCategorical},
		{dataset.TypeString, ClassCategorical},
		{dataset.TypeTime, ClassUnsupported},
		{dataset.TypeUnknown, ClassUnsupported},
	}
	for _, c := range cases {
		col := dataset.Column{Name: "x", Type: c.typ}
		if got := Classify(&col); got != c.want {
			t.Errorf("Classify(%s) = %s, want %s", c.typ, got, c.want)
		}
	}
}

func TestClassifyAllMissingUsesDeclaredType(t *testing.T) {
	col := numCol("empty", nil, nil, nil)
	if got := Classify(&col); got != ClassNumeric {
		t.Fatalf("all-missing numeric column classified as %s", got)
	}
}

func TestProfileNumericWithMissing(t *testing.T) {
	col := numCol("age", 20.0, 25.0, 30.0, nil)
	p := Profile(&col, ClassNumeric, DefaultOptions())

	if p.Missing != 1 {
		t.Errorf("missing = %d, want 1", p.Missing)
	}
	if p.NonNull != 3 {
		t.Errorf("non-null = %d, want 3", p.NonNull)
	}
	if p.Missing+p.NonNull != col.Len() {
		t.Errorf("missing+non-null = %d, want row count %d", p.Missing+p.NonNull, col.Len())
	}
	if !p.HasStats {
		t.Fatal("expected stats for column with 3 values")
	}
	if p.Mean != 25.0 {
		t.Errorf("mean = %g, want 25", p.Mean)
	}
	if p.Min != 20 || p.Max != 30 {
		t.Errorf("min/max = %g/%g, want 20/30", p.Min, p.Max)
	}
	if p.Mean < p.Min || p.Mean > p.Max {
		t.Errorf("mean %g outside [min, max]", p.Mean)
	}
	want := map[float64]float64{0.25: 22.5, 0.5: 25, 0.75: 27.5}
	for _, q := range p.Quantiles {
		if got, ok := want[q.Q]; !ok || got != q.Value {
			t.Errorf("quantile %g = %g, want %g", q.Q, q.Value, got)
		}
	}
}

func TestProfileNumericNaNCellIsMissing(t *testing.T) {
	col := numCol("x", 1.0, math.NaN(), 3.0)
	p := Profile(&col, ClassNumeric, DefaultOptions())
	if p.Missing != 1 || p.NonNull != 2 {
		t.Fatalf("missing/non-null = %d/%d, want 1/2", p.Missing, p.NonNull)
	}
	if p.Mean != 2 {
		t.Errorf("mean = %g, want 2", p.Mean)
	}
}

func TestProfileAllMissing(t *testing.T) {
	col := numCol("empty", nil, nil)
	p := Profile(&col, ClassNumeric, DefaultOptions())
	if p.HasStats || p.HasStd {
		t.Error("all-missing column should flag stats off")
	}
	if p.Missing != 2 || p.NonNull != 0 {
		t.Errorf("missing/non-null = %d/%d, want 2/0", p.Missing, p.NonNull)
	}
}

func TestProfileZeroRows(t *testing.T) {
	col := numCol("x")
	p := Profile(&col, ClassNumeric, DefaultOptions())
	if p.HasStats || p.HasStd || p.Missing != 0 || p.NonNull != 0 {
		t.Errorf("zero-row profile = %+v, want everything off", p)
	}
}

func TestStdSingleValueNotApplicable(t *testing.T) {
	col := numCol("x", 7.0)
	p := Profile(&col, ClassNumeric, DefaultOptions())
	if !p.HasStats {
		t.Fatal("single value still has min/max/mean")
	}
	if p.HasStd {
		t.Error("std with one value should be flagged not applicable")
	}
}

// Zero variance reports std = 0, not "not applicable". This is the fixed
// convention; change it and the report wording must change with it.
func TestStdZeroVariance(t *testing.T) {
	col := numCol("x", 5.0, 5.0, 5.0)
	p := Profile(&col, ClassNumeric, DefaultOptions())
	if !p.HasStd {
		t.Fatal("std with 3 values should be applicable")
	}
	if p.Std != 0 {
		t.Errorf("std = %g, want 0", p.Std)
	}
}

func TestProfileCategoricalTopAndTies(t *testing.T) {
	col := strCol("city", "A", "B", "A", "C")
	p := Profile(&col, ClassCategorical, DefaultOptions())
	if p.Unique != 3 {
		t.Fatalf("unique = %d, want 3", p.Unique)
	}
	if len(p.Top) != 3 {
		t.Fatalf("top buckets = %d, want 3", len(p.Top))
	}
	if p.Top[0].Value != "A" || p.Top[0].Count != 2 {
		t.Errorf("top category = %s(%d), want A(2)", p.Top[0].Value, p.Top[0].Count)
	}
	// B and C tie at 1; B appeared first.
	if p.Top[1].Value != "B" || p.Top[2].Value != "C" {
		t.Errorf("tie order = %s, %s, want B, C", p.Top[1].Value, p.Top[2].Value)
	}
	if p.HasOther {
		t.Error("no other bucket expected when distinct <= max categories")
	}
}

func TestProfileCategoricalOtherBucket(t *testing.T) {
	col := strCol("label", "a", "a", "a", "b", "b", "c", "d", "e")
	opt := DefaultOptions()
	opt.MaxCategories = 2
	p := Profile(&col, ClassCategorical, opt)
	if len(p.Top) != 2 {
		t.Fatalf("named buckets = %d, want min(k, distinct) = 2", len(p.Top))
	}
	if !p.HasOther {
		t.Fatal("expected other bucket: distinct (5) > k (2)")
	}
	if p.OtherCount != 3 { // c + d + e
		t.Errorf("other count = %d, want 3", p.OtherCount)
	}
}

func TestProfileCategoricalExactlyAtCap(t *testing.T) {
	col := strCol("label", "a", "b", "c")
	opt := DefaultOptions()
	opt.MaxCategories = 3
	p := Profile(&col, ClassCategorical, opt)
	if len(p.Top) != 3 || p.HasOther {
		t.Errorf("buckets = %d, other = %t; want 3 buckets and no other", len(p.Top), p.HasOther)
	}
}

func TestProfileBoolAsCategorical(t *testing.T) {
	col := dataset.Column{Name: "flag", Type: dataset.TypeBool, Cells: []any{true, false, true, nil}}
	p := Profile(&col, ClassCategorical, DefaultOptions())
	if p.Missing != 1 || p.Unique != 2 {
		t.Fatalf("missing/unique = %d/%d, want 1/2", p.Missing, p.Unique)
	}
	if p.Top[0].Value != "true" || p.Top[0].Count != 2 {
		t.Errorf("top = %s(%d), want true(2)", p.Top[0].Value, p.Top[0].Count)
	}
}

func TestProfileUnsupported(t *testing.T) {
	col := dataset.Column{Name: "ts", Type: dataset.TypeTime, Cells: []any{time.Now(), nil}}
	p := Profile(&col, ClassUnsupported, DefaultOptions())
	if p.Missing != 1 || p.NonNull != 1 {
		t.Errorf("missing/non-null = %d/%d, want 1/1", p.Missing, p.NonNull)
	}
	if p.HasStats || len(p.Top) != 0 {
		t.Error("unsupported profile should carry counts only")
	}
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	cases := []struct{ q, want float64 }{
		{0, 1}, {1, 4}, {0.5, 2.5}, {0.25, 1.75}, {0.75, 3.25},
	}
	for _, c := range cases {
		if got := quantile(sorted, c.q); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("quantile(%g) = %g, want %g", c.q, got, c.want)
		}
	}
	if got := quantile(nil, 0.5); got != 0 {
		t.Errorf("quantile of empty slice = %g, want 0", got)
	}
}
