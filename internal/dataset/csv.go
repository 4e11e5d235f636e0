package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Options controls how raw files are turned into a typed Table.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, strips common separators (',' '.' space)
}

// DefaultOptions returns reasonable defaults for dataset loading.
func DefaultOptions() Options {
	return Options{MaxRows: 100000}
}

// LoadCSV reads a CSV/TSV file into a typed Table. The declared type of each
// column is inferred from the predominant parse among its non-empty cells.
func LoadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{Name: filepath.Base(path)}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	if ncol == 0 {
		return &Table{Name: filepath.Base(path)}, nil
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		if len(records) >= maxRows {
			continue
		}
		if len(rec) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		records = append(records, rec[:ncol])
	}

	return buildTable(filepath.Base(path), header, records, opt), nil
}

// buildTable infers one declared type per column and materializes typed
// cells. Non-empty cells that fail the column's declared parse become
// missing rather than aborting the load.
func buildTable(name string, header []string, records [][]string, opt Options) *Table {
	ncol := len(header)
	type counts struct {
		num, integral, boolean, dt, txt int
	}
	cnt := make([]counts, ncol)
	for _, rec := range records {
		for j := 0; j < ncol; j++ {
			v := strings.TrimSpace(rec[j])
			if v == "" {
				continue
			}
			if x, ok := parseNumeric(v, opt); ok {
				cnt[j].num++
				if x == math.Trunc(x) && !strings.ContainsAny(v, ".,eE") {
					cnt[j].integral++
				}
				continue
			}
			if _, ok := parseBoolMaybe(v); ok {
				cnt[j].boolean++
				continue
			}
			if _, ok := parseTimeMaybe(v); ok {
				cnt[j].dt++
				continue
			}
			cnt[j].txt++
		}
	}

	cols := make([]Column, ncol)
	for j := 0; j < ncol; j++ {
		c := cnt[j]
		typ := TypeString
		switch {
		case c.num > 0 && c.num >= c.boolean && c.num >= c.dt && c.num >= c.txt:
			if c.integral == c.num {
				typ = TypeInt
			} else {
				typ = TypeFloat
			}
		case c.boolean > 0 && c.boolean >= c.dt && c.boolean >= c.txt:
			typ = TypeBool
		case c.dt > 0 && c.dt >= c.txt:
			typ = TypeTime
		}
		cells := make([]any, len(records))
		for i, rec := range records {
			v := strings.TrimSpace(rec[j])
			if v == "" {
				continue
			}
			switch typ {
			case TypeFloat, TypeInt:
				if x, ok := parseNumeric(v, opt); ok {
					cells[i] = x
				}
			case TypeBool:
				if b, ok := parseBoolMaybe(v); ok {
					cells[i] = b
				}
			case TypeTime:
				if t, ok := parseTimeMaybe(v); ok {
					cells[i] = t
				}
			default:
				cells[i] = v
			}
		}
		cols[j] = Column{Name: strings.TrimSpace(header[j]), Type: typ, Cells: cells}
	}
	return &Table{Name: name, Columns: cols}
}

func sniffDelimiter(path string) rune {
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".tsv") {
		return '\t'
	}
	return ','
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseBoolMaybe(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes":
		return true, true
	case "false", "no":
		return false, true
	default:
		return false, false
	}
}

// parseNumeric parses a numeric token handling locale separators. When the
// decimal separator is not configured it auto-detects per value.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, " ", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		if cpos >= 0 && dpos >= 0 {
			if cpos > dpos {
				dec = ','
				thou = '.'
			} else {
				dec = '.'
				thou = ','
			}
		} else if cpos >= 0 {
			dec = ','
		} else {
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
