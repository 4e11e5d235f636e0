package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadCSVTypeInference(t *testing.T) {
	path := writeFixture(t, "people.csv",
		"age,score,city,active,joined\n"+
			"20,1.5,A,yes,2023-01-15\n"+
			"25,2.0,B,no,2023-02-20\n"+
			"30,2.5,A,yes,2023-03-25\n")
	tbl, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tbl.Rows() != 3 || len(tbl.Columns) != 5 {
		t.Fatalf("shape = %dx%d, want 3x5", tbl.Rows(), len(tbl.Columns))
	}
	want := []Type{TypeInt, TypeFloat, TypeString, TypeBool, TypeTime}
	for i, w := range want {
		if got := tbl.Columns[i].Type; got != w {
			t.Errorf("column %q inferred %s, want %s", tbl.Columns[i].Name, got, w)
		}
	}
	if v, ok := tbl.Columns[0].Float(1); !ok || v != 25 {
		t.Errorf("age[1] = %v (%t), want 25", v, ok)
	}
}

func TestLoadCSVEmptyCellsAreMissing(t *testing.T) {
	path := writeFixture(t, "gaps.csv", "age,city\n20,A\n,B\n30,\n")
	tbl, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if !tbl.Columns[0].Missing(1) {
		t.Error("empty numeric cell should be missing")
	}
	if !tbl.Columns[1].Missing(2) {
		t.Error("empty string cell should be missing")
	}
	if tbl.Columns[0].Type != TypeInt {
		t.Errorf("age type = %s, want int despite the gap", tbl.Columns[0].Type)
	}
}

func TestLoadCSVNaNTokenIsMissing(t *testing.T) {
	path := writeFixture(t, "nan.csv", "age\n20\n25\n30\nNaN\n")
	tbl, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	c := &tbl.Columns[0]
	if !c.Missing(3) {
		t.Error("NaN cell should count as missing")
	}
	if _, ok := c.Float(3); ok {
		t.Error("Float must not expose a NaN cell")
	}
}

func TestLoadCSVMajorityVote(t *testing.T) {
	// One stray word in an otherwise numeric column: the column stays
	// numeric and the stray cell becomes missing.
	path := writeFixture(t, "stray.csv", "x\n1\n2\noops\n4\n")
	tbl, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	c := &tbl.Columns[0]
	if c.Type != TypeInt {
		t.Fatalf("type = %s, want int", c.Type)
	}
	if !c.Missing(2) {
		t.Error("unparseable cell should be missing")
	}
}

func TestLoadCSVShortRowsPadded(t *testing.T) {
	path := writeFixture(t, "ragged.csv", "a,b,c\n1,2,3\n4,5\n")
	tbl, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if err := tbl.Validate(); err != nil {
		t.Fatalf("padded table should validate: %v", err)
	}
	if !tbl.Columns[2].Missing(1) {
		t.Error("padded cell should be missing")
	}
}

func TestLoadTSVDelimiterSniffed(t *testing.T) {
	path := writeFixture(t, "data.tsv", "a\tb\n1\tx\n2\ty\n")
	tbl, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[1].Name != "b" {
		t.Fatalf("columns = %d, want tab-split into 2", len(tbl.Columns))
	}
}

func TestLoadCSVExplicitDelimiter(t *testing.T) {
	path := writeFixture(t, "semi.csv", "a;b\n1;2\n")
	opt := DefaultOptions()
	opt.Delimiter = ';'
	tbl, err := LoadCSV(path, opt)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(tbl.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(tbl.Columns))
	}
}

func TestLoadCSVMaxRows(t *testing.T) {
	path := writeFixture(t, "big.csv", "x\n1\n2\n3\n4\n5\n")
	opt := DefaultOptions()
	opt.MaxRows = 3
	tbl, err := LoadCSV(path, opt)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tbl.Rows() != 3 {
		t.Errorf("rows = %d, want capped at 3", tbl.Rows())
	}
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	path := writeFixture(t, "empty.csv", "a,b\n")
	tbl, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tbl.Rows() != 0 || len(tbl.Columns) != 2 {
		t.Errorf("shape = %dx%d, want 0x2", tbl.Rows(), len(tbl.Columns))
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions()); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseNumericLocales(t *testing.T) {
	cases := []struct {
		in   string
		opt  Options
		want float64
		ok   bool
	}{
		{"42", Options{}, 42, true},
		{"-3.5", Options{}, -3.5, true},
		{"1,234.5", Options{}, 1234.5, true},
		{"1.234,5", Options{}, 1234.5, true},
		{"3,5", Options{}, 3.5, true},
		{"1 234,5", Options{DecimalSeparator: ',', ThousandsSeparator: ' '}, 1234.5, true},
		{"Inf", Options{}, 0, false},
		{"abc", Options{}, 0, false},
		{"", Options{}, 0, false},
	}
	for _, c := range cases {
		got, ok := parseNumeric(c.in, c.opt)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("parseNumeric(%q) = %v, %t; want %v, %t", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestValidateUnequalColumns(t *testing.T) {
	tbl := &Table{Name: "bad", Columns: []Column{
		{Name: "a", Type: TypeInt, Cells: []any{1.0, 2.0}},
		{Name: "b", Type: TypeString, Cells: []any{"x"}},
	}}
	err := tbl.Validate()
	if !errors.Is(err, ErrColumnLength) {
		t.Fatalf("Validate = %v, want ErrColumnLength", err)
	}
	if _, err := New("bad", tbl.Columns); !errors.Is(err, ErrColumnLength) {
		t.Fatalf("New = %v, want ErrColumnLength", err)
	}
}

func TestRowKeyMissingSentinel(t *testing.T) {
	tbl := &Table{Columns: []Column{
		{Name: "a", Type: TypeFloat, Cells: []any{nil, nil, 1.0}},
		{Name: "b", Type: TypeString, Cells: []any{"x", "x", "x"}},
	}}
	if tbl.RowKey(0) != tbl.RowKey(1) {
		t.Error("rows with matching missing cells should share a key")
	}
	if tbl.RowKey(0) == tbl.RowKey(2) {
		t.Error("distinct rows must not collide")
	}
}
