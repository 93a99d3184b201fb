// SPDX-License-Identifier: MIT

package samples

import "errors"

// Sentinel errors for sample containers.
var (
	// ErrMixedSets indicates that Dense and Raw sets were combined.
	ErrMixedSets = errors.New("samples: cannot combine dense and raw sets")

	// ErrColumnMismatch indicates Dense sets of different widths were combined.
	ErrColumnMismatch = errors.New("samples: column count mismatch")

	// ErrRowOutOfRange indicates a row index outside the container.
	ErrRowOutOfRange = errors.New("samples: row index out of range")
)

// Set is a row-addressable collection of samples.
//
// Subset returns a new Set holding the requested rows in the requested
// order; indices may repeat, in which case the row is duplicated. Subset
// panics on an out-of-range index, the same way slice indexing does; use
// CheckRows beforehand when indices come from untrusted input.
type Set interface {
	// Len returns the number of rows (samples) held by the set.
	Len() int

	// Subset extracts rows into a fresh Set.
	Subset(rows []int) Set
}

// CheckRows reports ErrRowOutOfRange if any index is not a valid row of s.
func CheckRows(s Set, rows []int) error {
	n := s.Len()
	for _, r := range rows {
		if r < 0 || r >= n {
			return ErrRowOutOfRange
		}
	}

	return nil
}

// Sequence returns the row indices 0..n-1.
func Sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
