package profile

import (
	"math"

	"github.com/KaramelBytes/datasight-cli/internal/dataset"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric
// columns: Values[i][j] is the coefficient between Columns[i] and
// Columns[j], clamped to [-1, 1], with a unit diagonal.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// Correlate computes the pairwise Pearson correlation over the table's
// numeric columns using pairwise-complete observations: each pair is
// computed over the rows where both columns are non-missing, not a single
// global row filter. It returns nil when fewer than two numeric columns
// exist; that is a valid terminal state, not an error.
func Correlate(t *dataset.Table, classes []Class) *CorrMatrix {
	var numIdx []int
	for i := range t.Columns {
		if classes[i] == ClassNumeric {
			numIdx = append(numIdx, i)
		}
	}
	if len(numIdx) < 2 {
		return nil
	}

	type pairAcc struct {
		n     float64
		sumX  float64
		sumY  float64
		sumXX float64
		sumYY float64
		sumXY float64
	}
	k := len(numIdx)
	acc := make([]pairAcc, k*k)

	rows := t.Rows()
	rowVals := make([]float64, k)
	rowOK := make([]bool, k)
	for r := 0; r < rows; r++ {
		for a, ci := range numIdx {
			rowVals[a], rowOK[a] = t.Columns[ci].Float(r)
		}
		for a := 0; a < k; a++ {
			if !rowOK[a] {
				continue
			}
			for b := a + 1; b < k; b++ {
				if !rowOK[b] {
					continue
				}
				x, y := rowVals[a], rowVals[b]
				pa := &acc[a*k+b]
				pa.n++
				pa.sumX += x
				pa.sumY += y
				pa.sumXX += x * x
				pa.sumYY += y * y
				pa.sumXY += x * y
			}
		}
	}

	m := &CorrMatrix{Columns: make([]string, k), Values: make([][]float64, k)}
	for a, ci := range numIdx {
		m.Columns[a] = t.Columns[ci].Name
		m.Values[a] = make([]float64, k)
		m.Values[a][a] = 1
	}
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			pa := &acc[a*k+b]
			var r float64
			if pa.n >= 2 {
				denom := math.Sqrt((pa.n*pa.sumXX - pa.sumX*pa.sumX) * (pa.n*pa.sumYY - pa.sumY*pa.sumY))
				if denom != 0 {
					r = (pa.n*pa.sumXY - pa.sumX*pa.sumY) / denom
				}
			}
			if r > 1 {
				r = 1
			} else if r < -1 {
				r = -1
			}
			if math.IsNaN(r) || math.IsInf(r, 0) {
				r = 0
			}
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}
