package sparse

import (
	"sort"

	"github.com/kiteco/rating-model/kite-golib/errors"
)

// Entry is one nonzero coordinate of a row vector.
type Entry struct {
	Col int
	Val float64
}

// Vector is a sparse row vector. Entries are sorted by column and hold at
// most one value per column.
type Vector struct {
	Entries []Entry
}

// NewVector builds a Vector from a coordinate map, dropping zeros.
func NewVector(coords map[int]float64) Vector {
	var entries []Entry
	for col, val := range coords {
		if val == 0 {
			continue
		}
		entries = append(entries, Entry{Col: col, Val: val})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Col < entries[j].Col
	})
	return Vector{Entries: entries}
}

// Dot computes the inner product of two sparse vectors.
func Dot(a, b Vector) float64 {
	var dot float64
	var i, j int
	for i < len(a.Entries) && j < len(b.Entries) {
		switch {
		case a.Entries[i].Col < b.Entries[j].Col:
			i++
		case a.Entries[i].Col > b.Entries[j].Col:
			j++
		default:
			dot += a.Entries[i].Val * b.Entries[j].Val
			i++
			j++
		}
	}
	return dot
}

// DotDense computes the inner product of the vector with a dense vector.
// Entries with columns outside the dense vector are an error.
func (v Vector) DotDense(w []float64) (float64, error) {
	var dot float64
	for _, e := range v.Entries {
		if e.Col >= len(w) {
			return 0, errors.Errorf("column %d out of range for dense vector of length %d", e.Col, len(w))
		}
		dot += e.Val * w[e.Col]
	}
	return dot, nil
}

// Matrix is a row major sparse matrix with a fixed number of columns.
type Matrix struct {
	Cols int
	Rows []Vector
}

// Dims returns the number of rows and columns.
func (m Matrix) Dims() (int, int) {
	return len(m.Rows), m.Cols
}

// ColumnMeans returns the mean of each column. Absent entries count as zero.
func (m Matrix) ColumnMeans() []float64 {
	means := make([]float64, m.Cols)
	if len(m.Rows) == 0 {
		return means
	}
	for _, row := range m.Rows {
		for _, e := range row.Entries {
			means[e.Col] += e.Val
		}
	}
	for col := range means {
		means[col] /= float64(len(m.Rows))
	}
	return means
}

// MulVec computes the matrix vector product m * w.
func (m Matrix) MulVec(w []float64) ([]float64, error) {
	if len(w) != m.Cols {
		return nil, errors.Errorf("vector length %d does not match %d columns", len(w), m.Cols)
	}
	out := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		dot, err := row.DotDense(w)
		if err != nil {
			return nil, err
		}
		out[i] = dot
	}
	return out, nil
}

// MulTransVec computes the transposed matrix vector product mᵀ * a.
func (m Matrix) MulTransVec(a []float64) ([]float64, error) {
	if len(a) != len(m.Rows) {
		return nil, errors.Errorf("vector length %d does not match %d rows", len(a), len(m.Rows))
	}
	out := make([]float64, m.Cols)
	for i, row := range m.Rows {
		for _, e := range row.Entries {
			out[e.Col] += a[i] * e.Val
		}
	}
	return out, nil
}

// HStack concatenates blocks side by side. All blocks must have the same
// number of rows.
func HStack(blocks ...Matrix) (Matrix, error) {
	if len(blocks) == 0 {
		return Matrix{}, errors.Errorf("no blocks to stack")
	}
	rows := len(blocks[0].Rows)
	var cols int
	for _, block := range blocks {
		if len(block.Rows) != rows {
			return Matrix{}, errors.Errorf("block has %d rows, expected %d", len(block.Rows), rows)
		}
		cols += block.Cols
	}

	stacked := Matrix{
		Cols: cols,
		Rows: make([]Vector, rows),
	}
	var offset int
	for _, block := range blocks {
		for i, row := range block.Rows {
			for _, e := range row.Entries {
				stacked.Rows[i].Entries = append(stacked.Rows[i].Entries, Entry{
					Col: e.Col + offset,
					Val: e.Val,
				})
			}
		}
		offset += block.Cols
	}
	return stacked, nil
}
