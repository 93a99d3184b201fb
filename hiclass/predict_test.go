// SPDX-License-Identifier: MIT

package hiclass_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/estimator"
	"github.com/katalvlaran/hiclass/hiclass"
	"github.com/katalvlaran/hiclass/samples"
)

// strayClasses reports a fixed class list whatever it was trained on.
type strayClasses struct{ classes []string }

func (s *strayClasses) Fit(samples.Set, []string, []float64) error { return nil }

func (s *strayClasses) PredictProba(samples.Set) ([]float64, error) {
	out := make([]float64, len(s.classes))
	for i := range out {
		out[i] = 1 / float64(len(out))
	}

	return out, nil
}

func (s *strayClasses) Classes() []string { return s.classes }

func (s *strayClasses) Clone() estimator.Classifier { return &strayClasses{classes: s.classes} }

// margins is a binary classifier with preset decision scores per label and
// uninformative probabilities.
type margins struct {
	z       map[string]float64
	classes []string
}

func (m *margins) Fit(_ samples.Set, y []string, _ []float64) error {
	seen := map[string]bool{}
	m.classes = nil
	for _, l := range y {
		if !seen[l] {
			seen[l] = true
			m.classes = append(m.classes, l)
		}
	}
	sort.Strings(m.classes)

	return nil
}

func (m *margins) PredictProba(samples.Set) ([]float64, error) {
	out := make([]float64, len(m.classes))
	for i := range out {
		out[i] = 0.5
	}

	return out, nil
}

func (m *margins) DecisionFunction(samples.Set) ([]float64, error) {
	out := make([]float64, len(m.classes))
	for i, c := range m.classes {
		out[i] = m.z[c]
	}

	return out, nil
}

func (m *margins) Classes() []string { return m.classes }

func (m *margins) Clone() estimator.Classifier { return &margins{z: m.z} }

func TestPredict_UnknownLocalClass(t *testing.T) {
	obs, logs := observer.New(zapcore.ErrorLevel)
	X, y := oneHot(t, 2, "A1", "A2", "B")
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)),
		hiclass.WithBaseEstimator(hiclass.Fixed(&strayClasses{classes: []string{"Z", "A"}})),
		hiclass.WithLogger(zap.New(obs)))
	require.NoError(t, clf.Fit(X, y, nil))

	_, err := clf.Predict(point(t, 5, 0, 0))
	assert.ErrorIs(t, err, hiclass.ErrUnknownClass)

	entries := logs.FilterMessage("could not find index in classes for local class").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "Z", entries[0].ContextMap()["class"])
}

func TestPredict_MembershipMargins(t *testing.T) {
	// A has the larger positive score but the smaller margin
	z := map[string]map[string]float64{
		"A":  {estimator.NegativeLabel: 5, estimator.PositiveLabel: 6},
		"B":  {estimator.NegativeLabel: 0, estimator.PositiveLabel: 3},
		"A1": {estimator.NegativeLabel: 0, estimator.PositiveLabel: 1},
		"A2": {estimator.NegativeLabel: 0, estimator.PositiveLabel: 2},
	}
	factory := hiclass.Factory(func(node string, _ *core.Graph) (estimator.Classifier, error) {
		return &margins{z: z[node]}, nil
	})
	X, y := oneHot(t, 2, "A1", "A2", "B")
	opts := []hiclass.Option{
		hiclass.WithHierarchy(scenario(t)),
		hiclass.WithAlgorithm(hiclass.LCN),
		hiclass.WithTrainingStrategy(hiclass.LessInclusive),
		hiclass.WithBaseEstimator(factory),
	}

	clf := hiclass.New(append(opts, hiclass.WithDecisionFunction(true))...)
	require.NoError(t, clf.Fit(X, y, nil))
	paths, err := clf.PredictPath(point(t, 0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, []string{root, "B"}, paths[0].Path)
	assert.Equal(t, []float64{1, 3, 0, 0}, paths[0].Proba, "A and B carry their margins")

	// ties on probabilities fall to the first child
	clf = hiclass.New(opts...)
	require.NoError(t, clf.Fit(X, y, nil))
	paths, err = clf.PredictPath(point(t, 0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, []string{root, "A", "A1"}, paths[0].Path)
}

func TestFitMultiLabel_DecisionMargins(t *testing.T) {
	X, _ := oneHot(t, 4, "A1", "A2", "B")
	y := make([][]string, X.Len())
	for i := range y {
		switch {
		case i < 4:
			y[i] = []string{"A1"}
		case i < 8:
			y[i] = []string{"A2"}
		default:
			y[i] = []string{"B"}
		}
	}

	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithDecisionFunction(true))
	require.NoError(t, clf.FitMultiLabel(X, y, nil))
	sets, err := clf.PredictLabelSets(point(t, 0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"B"}}, sets, "only B has a positive margin")

	// margins are not probabilities, any threshold is accepted
	clf = hiclass.New(hiclass.WithHierarchy(scenario(t)),
		hiclass.WithDecisionFunction(true), hiclass.WithMLBPredictionThreshold(-0.5))
	assert.NoError(t, clf.FitMultiLabel(X, y, nil))

	clf = hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithMLBPredictionThreshold(-0.5))
	assert.ErrorIs(t, clf.FitMultiLabel(X, y, nil), hiclass.ErrInvalidParameter)
}

func TestFitIndicator_KeepsCause(t *testing.T) {
	X, _ := oneHot(t, 2, "A1", "A2", "B")
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)),
		hiclass.WithMultiLabel(estimator.NewMultiLabelBinarizer("A", "A1", "A2", "B")))

	err := clf.FitIndicator(X, mat.NewDense(X.Len(), 3, nil), nil)
	assert.ErrorIs(t, err, hiclass.ErrShapeMismatch)
	assert.True(t, errors.Is(err, estimator.ErrLengthMismatch), "binarizer error is preserved: %v", err)
}

func TestLabelSets_MatchesPredictLabelSets(t *testing.T) {
	X, _ := oneHot(t, 2, "A1", "A2", "B")
	y := [][]string{{"A1"}, {"A1", "B"}, {"A2"}, {"A2"}, {"B"}, {"B"}}
	scores := map[string]float64{"A": 0.6, "B": 0.5, "A1": 0.35, "A2": 0.2}
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)),
		hiclass.WithBaseEstimator(recordingFactory(nil, scores)),
		hiclass.WithMLBPredictionThreshold(0.3))
	require.NoError(t, clf.FitMultiLabel(X, y, nil))

	paths, err := clf.PredictPath(X)
	require.NoError(t, err)
	sets, err := clf.PredictLabelSets(X)
	require.NoError(t, err)
	assert.Equal(t, sets, clf.LabelSets(paths))
	assert.Equal(t, []string{"A", "A1", "B"}, sets[0])
}
