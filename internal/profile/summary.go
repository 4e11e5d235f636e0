package profile

import "github.com/KaramelBytes/datasight-cli/internal/dataset"

// ColumnMissing pairs a column name with its missing-value count.
type ColumnMissing struct {
	Name    string
	Missing int
}

// Summary captures whole-table metadata.
type Summary struct {
	Rows          int
	Cols          int
	DuplicateRows int
	MissingTotal  int
	MissingByCol  []ColumnMissing
}

// Summarize computes table shape, the count of fully duplicate rows, and the
// per-column missing overview. Missing counts come from the already-computed
// profiles rather than a second pass over the table.
func Summarize(t *dataset.Table, profiles []ColumnProfile) Summary {
	s := Summary{Rows: t.Rows(), Cols: len(t.Columns)}
	for _, p := range profiles {
		s.MissingTotal += p.Missing
		s.MissingByCol = append(s.MissingByCol, ColumnMissing{Name: p.Name, Missing: p.Missing})
	}
	seen := make(map[string]struct{}, s.Rows)
	for i := 0; i < s.Rows; i++ {
		key := t.RowKey(i)
		if _, dup := seen[key]; dup {
			s.DuplicateRows++
			continue
		}
		seen[key] = struct{}{}
	}
	return s
}
