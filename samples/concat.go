// SPDX-License-Identifier: MIT

package samples

import (
	"gonum.org/v1/gonum/mat"
)

// Concat stacks sets vertically, in argument order. All sets must be of the
// same kind; Dense sets must share their width (empty Dense sets of width 0
// are accepted anywhere). Concat of zero sets returns nil, nil.
func Concat(sets ...Set) (Set, error) {
	if len(sets) == 0 {
		return nil, nil
	}

	switch sets[0].(type) {
	case *Dense:
		return concatDense(sets)
	case *Raw:
		return concatRaw(sets)
	default:
		return nil, ErrMixedSets
	}
}

func concatDense(sets []Set) (Set, error) {
	// 1) Validate kinds and resolve the common width.
	cols, rows := 0, 0
	for _, s := range sets {
		d, ok := s.(*Dense)
		if !ok {
			return nil, ErrMixedSets
		}
		if d.Len() == 0 && d.cols == 0 {
			continue
		}
		if cols == 0 {
			cols = d.cols
		} else if d.cols != cols {
			return nil, ErrColumnMismatch
		}
		rows += d.Len()
	}
	if rows == 0 {
		return &Dense{cols: cols}, nil
	}

	// 2) Copy row blocks into a single matrix.
	out := mat.NewDense(rows, cols, nil)
	at := 0
	for _, s := range sets {
		d := s.(*Dense)
		for i := 0; i < d.Len(); i++ {
			out.SetRow(at, d.m.RawRowView(i))
			at++
		}
	}

	return &Dense{m: out, cols: cols}, nil
}

func concatRaw(sets []Set) (Set, error) {
	var items []interface{}
	for _, s := range sets {
		r, ok := s.(*Raw)
		if !ok {
			return nil, ErrMixedSets
		}
		items = append(items, r.items...)
	}

	return &Raw{items: items}, nil
}
