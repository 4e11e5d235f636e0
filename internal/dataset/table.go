package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Type is the declared element type of a column.
type Type int

const (
	TypeUnknown Type = iota
	TypeFloat
	TypeInt
	TypeBool
	TypeString
	TypeTime
)

func (t Type) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeTime:
		return "time"
	default:
		return "unknown"
	}
}

// Column is an ordered sequence of cells sharing one declared element type.
// A nil cell marks a missing value. Numeric cells are stored as float64,
// booleans as bool, text as string, timestamps as time.Time.
type Column struct {
	Name  string
	Type  Type
	Cells []any
}

// Len returns the number of cells (row count) in the column.
func (c *Column) Len() int { return len(c.Cells) }

// Missing reports whether the cell at i is absent. A numeric NaN counts as
// missing, matching the usual tabular convention.
func (c *Column) Missing(i int) bool {
	v := c.Cells[i]
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return true
	}
	return false
}

// Float returns the numeric value at i, if present.
func (c *Column) Float(i int) (float64, bool) {
	f, ok := c.Cells[i].(float64)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Label returns a display label for the cell at i, if present. Booleans
// render as "true"/"false".
func (c *Column) Label(i int) (string, bool) {
	switch v := c.Cells[i].(type) {
	case string:
		return v, true
	case bool:
		if v {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

// Table is an in-memory tabular dataset: ordered named columns of equal
// length. The profiling pipeline treats it as read-only.
type Table struct {
	Name    string
	Columns []Column
}

// ErrColumnLength indicates columns of unequal length in a supplied table.
// The table is malformed and no report can be produced from it.
var ErrColumnLength = errors.New("dataset: columns have unequal lengths")

// New builds a table after validating that all columns share one length.
func New(name string, cols []Column) (*Table, error) {
	t := &Table{Name: name, Columns: cols}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Rows returns the table's row count.
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Validate checks the equal-length invariant.
func (t *Table) Validate() error {
	if len(t.Columns) == 0 {
		return nil
	}
	n := t.Columns[0].Len()
	for i := range t.Columns {
		if got := t.Columns[i].Len(); got != n {
			return fmt.Errorf("%w: column %q has %d rows, expected %d", ErrColumnLength, t.Columns[i].Name, got, n)
		}
	}
	return nil
}

// RowKey renders row i as a canonical string used for duplicate detection.
// Missing cells normalize to a shared sentinel so that two rows missing the
// same cell compare equal.
func (t *Table) RowKey(i int) string {
	var b strings.Builder
	for j := range t.Columns {
		if j > 0 {
			b.WriteByte(0x1f)
		}
		c := &t.Columns[j]
		if c.Missing(i) {
			b.WriteString("\x00")
			continue
		}
		switch v := c.Cells[i].(type) {
		case float64:
			fmt.Fprintf(&b, "%g", v)
		case string:
			b.WriteString(v)
		case bool:
			fmt.Fprintf(&b, "%t", v)
		case time.Time:
			b.WriteString(v.Format(time.RFC3339Nano))
		default:
			fmt.Fprintf(&b, "%v", v)
		}
	}
	return b.String()
}
