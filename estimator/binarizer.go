// SPDX-License-Identifier: MIT

package estimator

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MultiLabelBinarizer converts label sets to indicator rows over a fixed
// class list and back.
type MultiLabelBinarizer struct {
	classes []string
	index   map[string]int
}

// NewMultiLabelBinarizer uses classes, in the given order, as indicator
// columns. Duplicates are dropped.
func NewMultiLabelBinarizer(classes ...string) *MultiLabelBinarizer {
	b := &MultiLabelBinarizer{index: make(map[string]int, len(classes))}
	for _, c := range classes {
		if _, ok := b.index[c]; ok {
			continue
		}
		b.index[c] = len(b.classes)
		b.classes = append(b.classes, c)
	}

	return b
}

// FitMultiLabelBinarizer builds a binarizer over the sorted union of sets.
func FitMultiLabelBinarizer(sets [][]string) *MultiLabelBinarizer {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	sort.Strings(all)

	return NewMultiLabelBinarizer(all...)
}

// Classes returns the indicator column labels.
func (b *MultiLabelBinarizer) Classes() []string { return b.classes }

// Index returns the column of label.
func (b *MultiLabelBinarizer) Index(label string) (int, bool) {
	i, ok := b.index[label]

	return i, ok
}

// Transform encodes sets as a len(sets) × len(Classes()) indicator matrix.
// It returns nil for zero rows or zero classes.
func (b *MultiLabelBinarizer) Transform(sets [][]string) (*mat.Dense, error) {
	if len(sets) == 0 || len(b.classes) == 0 {
		for _, s := range sets {
			if len(s) > 0 {
				return nil, errors.Wrapf(ErrUnknownLabel, "estimator: %q", s[0])
			}
		}

		return nil, nil
	}

	Y := mat.NewDense(len(sets), len(b.classes), nil)
	for i, s := range sets {
		for _, label := range s {
			j, ok := b.index[label]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownLabel, "estimator: %q", label)
			}
			Y.Set(i, j, 1)
		}
	}

	return Y, nil
}

// InverseTransform decodes the non-zero columns of each row of Y.
func (b *MultiLabelBinarizer) InverseTransform(Y *mat.Dense) ([][]string, error) {
	if Y == nil {
		return nil, nil
	}
	r, c := Y.Dims()
	if c != len(b.classes) {
		return nil, errors.Wrapf(ErrLengthMismatch, "estimator: indicator has %d columns, binarizer %d", c, len(b.classes))
	}

	out := make([][]string, r)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if Y.At(i, j) != 0 {
				out[i] = append(out[i], b.classes[j])
			}
		}
	}

	return out, nil
}
