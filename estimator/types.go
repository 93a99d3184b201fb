// SPDX-License-Identifier: MIT

package estimator

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hiclass/samples"
)

// Sentinel errors for estimators.
var (
	// ErrNotFitted is returned by prediction methods before Fit succeeded.
	ErrNotFitted = errors.New("estimator: not fitted")

	// ErrUnsupportedSamples indicates a samples.Set kind the estimator cannot consume.
	ErrUnsupportedSamples = errors.New("estimator: unsupported sample container")

	// ErrLengthMismatch indicates X, y and sampleWeight disagree in length.
	ErrLengthMismatch = errors.New("estimator: length mismatch")

	// ErrNoSamples indicates Fit was called without any rows.
	ErrNoSamples = errors.New("estimator: no samples")

	// ErrUnknownLabel indicates a label the binarizer was not fitted with.
	ErrUnknownLabel = errors.New("estimator: unknown label")
)

// Classifier is a local classifier trained at one node of a hierarchy.
type Classifier interface {
	// Fit trains on X with one target label per row. sampleWeight may be nil.
	Fit(X samples.Set, y []string, sampleWeight []float64) error

	// PredictProba scores the single row held by x, one value per Classes() entry.
	PredictProba(x samples.Set) ([]float64, error)

	// Classes lists the labels seen during Fit, in score order.
	Classes() []string

	// Clone returns an unfitted copy carrying the same hyper-parameters.
	Clone() Classifier
}

// DecisionFunctioner is implemented by classifiers exposing margin scores.
type DecisionFunctioner interface {
	// DecisionFunction scores the single row held by x, one value per class.
	DecisionFunction(x samples.Set) ([]float64, error)
}

// MultiLabelClassifier trains from an indicator matrix whose columns follow
// classes. PredictProba values are independent per class.
type MultiLabelClassifier interface {
	Classifier

	// FitIndicator trains on X against Y (rows × len(classes), values 0/1).
	FitIndicator(X samples.Set, Y *mat.Dense, classes []string, sampleWeight []float64) error
}

// checkFitInput validates the shape agreement shared by every estimator.
func checkFitInput(X samples.Set, n int, sampleWeight []float64) error {
	if X == nil || X.Len() == 0 {
		return ErrNoSamples
	}
	if X.Len() != n {
		return ErrLengthMismatch
	}
	if sampleWeight != nil && len(sampleWeight) != n {
		return ErrLengthMismatch
	}

	return nil
}
