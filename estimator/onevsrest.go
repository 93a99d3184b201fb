// SPDX-License-Identifier: MIT

package estimator

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hiclass/samples"
)

// Binary labels used by OneVsRest and by per-node membership classifiers.
const (
	PositiveLabel = "1"
	NegativeLabel = "0"
)

// OneVsRest trains one binary copy of Base per class (binary relevance).
// A column whose rows are all positive or all negative gets a Constant.
type OneVsRest struct {
	Base Classifier

	classes []string
	models  []Classifier
}

// NewOneVsRest wraps base. base itself is never fitted; clones are.
func NewOneVsRest(base Classifier) *OneVsRest {
	return &OneVsRest{Base: base}
}

// Fit implements Classifier by one-hot encoding y over its sorted labels.
func (o *OneVsRest) Fit(X samples.Set, y []string, sampleWeight []float64) error {
	if err := checkFitInput(X, len(y), sampleWeight); err != nil {
		return err
	}
	classes, index := uniqueSorted(y)
	Y := mat.NewDense(len(y), len(classes), nil)
	for i, label := range y {
		Y.Set(i, index[label], 1)
	}

	return o.FitIndicator(X, Y, classes, sampleWeight)
}

// FitIndicator implements MultiLabelClassifier.
func (o *OneVsRest) FitIndicator(X samples.Set, Y *mat.Dense, classes []string, sampleWeight []float64) error {
	// 1) Shape checks
	if X == nil {
		return ErrNoSamples
	}
	if err := checkFitInput(X, X.Len(), sampleWeight); err != nil {
		return err
	}
	if Y == nil {
		return ErrLengthMismatch
	}
	r, c := Y.Dims()
	if r != X.Len() || c != len(classes) {
		return errors.Wrapf(ErrLengthMismatch, "estimator: indicator %dx%d for %d rows and %d classes", r, c, X.Len(), len(classes))
	}

	// 2) One binary problem per column
	models := make([]Classifier, c)
	y := make([]string, r)
	for j := 0; j < c; j++ {
		positives := 0
		for i := 0; i < r; i++ {
			if Y.At(i, j) != 0 {
				y[i] = PositiveLabel
				positives++
			} else {
				y[i] = NegativeLabel
			}
		}

		var m Classifier
		switch positives {
		case 0:
			m = NewConstant(NegativeLabel)
		case r:
			m = NewConstant(PositiveLabel)
		default:
			m = o.Base.Clone()
		}
		if err := m.Fit(X, y, sampleWeight); err != nil {
			return errors.Wrapf(err, "estimator: OneVsRest column %q", classes[j])
		}
		models[j] = m
	}

	o.classes = append([]string(nil), classes...)
	o.models = models

	return nil
}

// PredictProba implements Classifier; entry j is P(classes[j] | x).
func (o *OneVsRest) PredictProba(x samples.Set) ([]float64, error) {
	if o.models == nil {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(o.models))
	for j, m := range o.models {
		p, err := m.PredictProba(x)
		if err != nil {
			return nil, err
		}
		out[j] = positiveScore(m.Classes(), p)
	}

	return out, nil
}

// DecisionFunction implements DecisionFunctioner; entry j is the margin of
// classes[j] against the rest. Columns without a decision function (the
// constant ones) score +Inf when always positive and -Inf otherwise.
func (o *OneVsRest) DecisionFunction(x samples.Set) ([]float64, error) {
	if o.models == nil {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(o.models))
	for j, m := range o.models {
		df, ok := m.(DecisionFunctioner)
		if !ok {
			p, err := m.PredictProba(x)
			if err != nil {
				return nil, err
			}
			out[j] = math.Inf(-1)
			if positiveScore(m.Classes(), p) >= 0.5 {
				out[j] = math.Inf(1)
			}
			continue
		}
		z, err := df.DecisionFunction(x)
		if err != nil {
			return nil, err
		}
		out[j] = BinaryMargin(m.Classes(), z)
	}

	return out, nil
}

// Classes implements Classifier.
func (o *OneVsRest) Classes() []string { return o.classes }

// Clone implements Classifier.
func (o *OneVsRest) Clone() Classifier { return &OneVsRest{Base: o.Base.Clone()} }

// BinaryMargin turns the decision scores of a binary classifier into the
// margin of PositiveLabel over NegativeLabel. With only one of the two
// labels present it returns that label's score, negated for NegativeLabel.
func BinaryMargin(classes []string, z []float64) float64 {
	pos, neg := -1, -1
	for i, c := range classes {
		if i >= len(z) {
			break
		}
		switch c {
		case PositiveLabel:
			pos = i
		case NegativeLabel:
			neg = i
		}
	}
	switch {
	case pos >= 0 && neg >= 0:
		return z[pos] - z[neg]
	case pos >= 0:
		return z[pos]
	case neg >= 0:
		return -z[neg]
	}

	return 0
}

// positiveScore returns the score attached to PositiveLabel, 0 if absent.
func positiveScore(classes []string, scores []float64) float64 {
	for i, c := range classes {
		if c == PositiveLabel {
			return scores[i]
		}
	}

	return 0
}
