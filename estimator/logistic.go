// SPDX-License-Identifier: MIT

package estimator

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/hiclass/samples"
)

// Default hyper-parameters of LogisticRegression.
const (
	DefaultC       = 1.0
	DefaultMaxIter = 1000
	DefaultTol     = 1e-6
)

// LogisticRegression is a multinomial (softmax) logistic regression with an
// L2 penalty on the weights; intercepts are not penalised.
//
// The objective is C·Σ sᵢ·CE(xᵢ, yᵢ) + ½‖W‖², minimised with L-BFGS.
// Only *samples.Dense inputs are accepted.
type LogisticRegression struct {
	// C is the inverse regularisation strength; must be > 0.
	C float64
	// MaxIter bounds the number of L-BFGS major iterations.
	MaxIter int
	// Tol is the gradient-norm convergence threshold.
	Tol float64

	classes []string
	coef    *mat.Dense // k × (d+1), last column holds the intercepts
}

// NewLogisticRegression returns an estimator with default hyper-parameters.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{C: DefaultC, MaxIter: DefaultMaxIter, Tol: DefaultTol}
}

// Fit implements Classifier.
func (lr *LogisticRegression) Fit(X samples.Set, y []string, sampleWeight []float64) error {
	// 1) Shape and container checks
	if err := checkFitInput(X, len(y), sampleWeight); err != nil {
		return err
	}
	d, ok := X.(*samples.Dense)
	if !ok {
		return ErrUnsupportedSamples
	}
	if lr.C <= 0 {
		return errors.Errorf("estimator: LogisticRegression C must be > 0, got %g", lr.C)
	}

	// 2) Encode targets
	classes, index := uniqueSorted(y)
	lr.classes = classes
	lr.coef = nil
	if len(classes) == 1 {
		// nothing to separate; PredictProba degenerates to [1]
		return nil
	}
	targets := make([]int, len(y))
	for i, label := range y {
		targets[i] = index[label]
	}
	weights := unitWeights(sampleWeight, len(y))

	// 3) Minimise the penalised cross-entropy
	k, stride := len(classes), d.Cols()+1
	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			return softmaxLoss(theta, nil, d, targets, weights, k, lr.C)
		},
		Grad: func(grad, theta []float64) {
			softmaxLoss(theta, grad, d, targets, weights, k, lr.C)
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   lr.MaxIter,
		GradientThreshold: lr.Tol,
	}
	res, err := optimize.Minimize(problem, make([]float64, k*stride), settings, &optimize.LBFGS{})
	if res == nil {
		return errors.Wrap(err, "estimator: LogisticRegression.Fit")
	}
	// A line-search stall still leaves the best location found in res.X.
	lr.coef = mat.NewDense(k, stride, res.X)

	return nil
}

// PredictProba implements Classifier.
func (lr *LogisticRegression) PredictProba(x samples.Set) ([]float64, error) {
	z, err := lr.DecisionFunction(x)
	if err != nil {
		return nil, err
	}
	if len(z) == 1 {
		return []float64{1}, nil
	}
	lse := floats.LogSumExp(z)
	for i := range z {
		z[i] = math.Exp(z[i] - lse)
	}

	return z, nil
}

// DecisionFunction implements DecisionFunctioner: raw linear scores per class.
func (lr *LogisticRegression) DecisionFunction(x samples.Set) ([]float64, error) {
	if lr.classes == nil {
		return nil, ErrNotFitted
	}
	d, ok := x.(*samples.Dense)
	if !ok || d.Len() != 1 {
		return nil, ErrUnsupportedSamples
	}
	if lr.coef == nil {
		return []float64{0}, nil
	}
	k, stride := lr.coef.Dims()
	if d.Cols() != stride-1 {
		return nil, errors.Wrapf(samples.ErrColumnMismatch, "estimator: expected %d features, got %d", stride-1, d.Cols())
	}

	row := d.Row(0)
	z := make([]float64, k)
	for j := 0; j < k; j++ {
		w := lr.coef.RawRowView(j)
		z[j] = floats.Dot(w[:stride-1], row) + w[stride-1]
	}

	return z, nil
}

// Classes implements Classifier.
func (lr *LogisticRegression) Classes() []string { return lr.classes }

// Clone implements Classifier.
func (lr *LogisticRegression) Clone() Classifier {
	return &LogisticRegression{C: lr.C, MaxIter: lr.MaxIter, Tol: lr.Tol}
}

// softmaxLoss evaluates the penalised objective at theta and, when grad is
// non-nil, overwrites grad with its gradient.
func softmaxLoss(theta, grad []float64, X *samples.Dense, targets []int, weights []float64, k int, c float64) float64 {
	cols := X.Cols()
	stride := cols + 1
	if grad != nil {
		for i := range grad {
			grad[i] = 0
		}
	}

	z := make([]float64, k)
	loss := 0.0
	for i := 0; i < X.Len(); i++ {
		row := X.Row(i)
		for j := 0; j < k; j++ {
			z[j] = floats.Dot(theta[j*stride:j*stride+cols], row) + theta[j*stride+cols]
		}
		lse := floats.LogSumExp(z)
		loss += c * weights[i] * (lse - z[targets[i]])
		if grad == nil {
			continue
		}
		for j := 0; j < k; j++ {
			p := math.Exp(z[j] - lse)
			if j == targets[i] {
				p--
			}
			coeff := c * weights[i] * p
			floats.AddScaled(grad[j*stride:j*stride+cols], coeff, row)
			grad[j*stride+cols] += coeff
		}
	}

	// L2 penalty, intercepts excluded
	for j := 0; j < k; j++ {
		w := theta[j*stride : j*stride+cols]
		loss += 0.5 * floats.Dot(w, w)
		if grad != nil {
			floats.Add(grad[j*stride:j*stride+cols], w)
		}
	}

	return loss
}
