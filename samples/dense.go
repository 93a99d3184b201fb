// SPDX-License-Identifier: MIT

package samples

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dense is a feature matrix with one row per sample.
//
// gonum refuses to allocate zero-sized matrices, so an empty Dense keeps
// only its column count and a nil matrix.
type Dense struct {
	m    *mat.Dense
	cols int
}

// NewDense wraps m without copying it. A nil m yields an empty set with
// zero columns.
func NewDense(m *mat.Dense) *Dense {
	if m == nil {
		return &Dense{}
	}
	_, c := m.Dims()

	return &Dense{m: m, cols: c}
}

// EmptyDense returns a zero-row set with the given width.
func EmptyDense(cols int) *Dense {
	return &Dense{cols: cols}
}

// FromRows copies rows into a new Dense. All rows must have equal, non-zero
// length; otherwise ErrColumnMismatch is returned.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return &Dense{}, nil
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		if len(r) != cols {
			return nil, ErrColumnMismatch
		}
		data = append(data, r...)
	}
	if cols == 0 {
		return nil, errors.Wrapf(ErrColumnMismatch, "samples: %d rows without columns", len(rows))
	}

	return &Dense{m: mat.NewDense(len(rows), cols, data), cols: cols}, nil
}

// Len implements Set.
func (d *Dense) Len() int {
	if d.m == nil {
		return 0
	}
	r, _ := d.m.Dims()

	return r
}

// Cols returns the number of feature columns.
func (d *Dense) Cols() int { return d.cols }

// Matrix exposes the underlying matrix; nil for an empty set.
func (d *Dense) Matrix() *mat.Dense { return d.m }

// Row returns a view of row i. The returned slice aliases the matrix.
func (d *Dense) Row(i int) []float64 {
	return d.m.RawRowView(i)
}

// Subset implements Set. Rows are copied, so the result never aliases d.
func (d *Dense) Subset(rows []int) Set {
	if len(rows) == 0 || d.cols == 0 {
		return &Dense{cols: d.cols}
	}
	out := mat.NewDense(len(rows), d.cols, nil)
	for i, r := range rows {
		out.SetRow(i, d.m.RawRowView(r))
	}

	return &Dense{m: out, cols: d.cols}
}
