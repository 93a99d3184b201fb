// SPDX-License-Identifier: MIT

package estimator

import (
	"github.com/katalvlaran/hiclass/samples"
)

// Constant predicts Value with probability 1 for every input.
// It is the fallback for nodes where only one target survives the rollup.
type Constant struct {
	Value  string
	fitted bool
}

// NewConstant returns a Constant predicting value.
func NewConstant(value string) *Constant {
	return &Constant{Value: value}
}

// Fit implements Classifier. Inputs are only checked for shape.
func (c *Constant) Fit(X samples.Set, y []string, sampleWeight []float64) error {
	if err := checkFitInput(X, len(y), sampleWeight); err != nil {
		return err
	}
	c.fitted = true

	return nil
}

// PredictProba implements Classifier.
func (c *Constant) PredictProba(samples.Set) ([]float64, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}

	return []float64{1}, nil
}

// Classes implements Classifier.
func (c *Constant) Classes() []string { return []string{c.Value} }

// Clone implements Classifier.
func (c *Constant) Clone() Classifier { return &Constant{Value: c.Value} }
