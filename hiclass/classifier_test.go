// SPDX-License-Identifier: MIT

package hiclass_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hiclass/builder"
	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/estimator"
	"github.com/katalvlaran/hiclass/hiclass"
	"github.com/katalvlaran/hiclass/progress"
	"github.com/katalvlaran/hiclass/samples"
)

func TestFit_LCPNScenario(t *testing.T) {
	X, y := oneHot(t, 5, "A1", "A2", "B")
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)))
	require.NoError(t, clf.Fit(X, y, nil))

	// classifiers at the parents only
	est := clf.Estimators()
	require.Len(t, est, 2)
	require.Contains(t, est, root)
	require.Contains(t, est, "A")
	assert.Equal(t, []string{"A", "B"}, est[root].Classes())
	assert.Equal(t, []string{"A1", "A2"}, est["A"].Classes())
	for _, leaf := range []string{"A1", "A2", "B"} {
		st, err := clf.Hierarchy().State(leaf)
		require.NoError(t, err)
		assert.Nil(t, st.Classifier, "leaf %s must not get a classifier", leaf)
	}

	// path of an A1 example
	paths, err := clf.PredictPath(point(t, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{root, "A", "A1"}, paths[0].Path)

	// every training row recovers its leaf
	pred, err := clf.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, pred)

	assert.Equal(t, []string{"A", "B", "A1", "A2"}, clf.Classes())
	assert.Equal(t, 4, clf.NClasses())
}

func TestFit_FlatHierarchyFromLabels(t *testing.T) {
	X, y := oneHot(t, 4, "cat", "ant", "bee")
	clf := hiclass.New()
	require.NoError(t, clf.Fit(X, y, nil))

	assert.Equal(t, []string{"ant", "bee", "cat"}, clf.Classes(), "flat classes follow sorted labels")
	pred, err := clf.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, pred)

	P, err := clf.PredictProba(point(t, 5, 0, 0))
	require.NoError(t, err)
	r, c := P.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 3, c)
	assert.Greater(t, P.At(0, 2), 0.5, "cat column")
}

func TestFeatureBuilder_RootHoldsEveryRow(t *testing.T) {
	X, y := oneHot(t, 3, "A1", "A2", "B")
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)))
	require.NoError(t, clf.Fit(X, y, nil))

	st, err := clf.Hierarchy().State(root)
	require.NoError(t, err)
	require.NotNil(t, st.Features)
	assert.Equal(t, X.Len(), len(st.Features.Rows))
	assert.Equal(t, X.Len(), st.Features.X.Len())
	assert.Equal(t, &core.Metafeatures{NSamples: 9, NTargets: 3}, st.Metafeatures)

	a, err := clf.Hierarchy().State("A")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, a.Features.Rows)

	leaf, err := clf.Hierarchy().State("B")
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 8}, leaf.Features.Rows)
}

func TestFeatureBuilder_IntermediateLabelsPropagateUp(t *testing.T) {
	X, y := oneHot(t, 2, "A1", "A2", "B", "A")
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)))
	require.NoError(t, clf.Fit(X, y, nil))

	a, err := clf.Hierarchy().State("A")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, a.Features.Rows, "rows labeled A stay out of A's own cache")

	r, err := clf.Hierarchy().State(root)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, r.Features.Rows, "but reach the root")
}

func TestFit_DAGDuplicatesSharedRows(t *testing.T) {
	// root → {A, B, D}; A → C; B → C
	g, err := builder.BuildHierarchy(root, nil, builder.Edges(
		[2]string{root, "A"}, [2]string{root, "B"}, [2]string{root, "D"},
		[2]string{"A", "C"}, [2]string{"B", "C"}))
	require.NoError(t, err)

	X, err := samples.FromRows([][]float64{{1, 0}, {1, 0}, {0, 1}, {0, 1}})
	require.NoError(t, err)
	y := []string{"C", "C", "D", "D"}
	w := []float64{1, 2, 3, 4}

	log := newFitLog()
	clf := hiclass.New(hiclass.WithHierarchy(g), hiclass.WithBaseEstimator(recordingFactory(log, nil)))
	require.NoError(t, clf.Fit(X, y, w))

	assert.Equal(t, []string{"A", "B", "A", "B", "D", "D"}, log.y[root], "C rows train both A and B")
	assert.Equal(t, []float64{1, 1, 2, 2, 3, 4}, log.w[root], "weights follow duplicated rows")
	assert.Equal(t, 6, log.n[root])

	// A and B only ever see C: constant fallback
	est := clf.Estimators()
	assert.IsType(t, &estimator.Constant{}, est["A"])
	assert.IsType(t, &estimator.Constant{}, est["B"])
	assert.Equal(t, []string{"C"}, est["A"].Classes())
}

func TestPredict_EarlyTerminationThreshold(t *testing.T) {
	X, y := oneHot(t, 2, "A1", "A2", "B")
	scores := map[string]float64{"A": 0.5, "B": 0.3, "A1": 0.5, "A2": 0.4}
	base := hiclass.WithBaseEstimator(recordingFactory(nil, scores))

	stop := hiclass.New(hiclass.WithHierarchy(scenario(t)), base,
		hiclass.WithPredictionDepth(hiclass.NMLNP), hiclass.WithStoppingThreshold(0.99))
	require.NoError(t, stop.Fit(X, y, nil))
	paths, err := stop.PredictPath(point(t, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{root, "A"}, paths[0].Path, "score 0.5 at A is below 0.99")

	pred, err := stop.Predict(point(t, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, pred)

	full := hiclass.New(hiclass.WithHierarchy(scenario(t)), base)
	require.NoError(t, full.Fit(X, y, nil))
	paths, err = full.PredictPath(point(t, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{root, "A", "A1"}, paths[0].Path)
	assert.Equal(t, []float64{0.5, 0.3, 0.5, 0.4}, paths[0].Proba)
}

func TestPredict_StopFunc(t *testing.T) {
	X, y := oneHot(t, 2, "A1", "A2", "B")
	var seen []string
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)),
		hiclass.WithPredictionDepth(hiclass.NMLNP),
		hiclass.WithStoppingFunc(func(node *core.NodeState, prediction string, score float64) bool {
			seen = append(seen, node.ID+">"+prediction)
			require.NotNil(t, node.Metafeatures)

			return node.ID == "A"
		}))
	require.NoError(t, clf.Fit(X, y, nil))

	pred, err := clf.Predict(point(t, 0, 5, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, pred)
	assert.Equal(t, []string{root + ">A", "A>A2"}, seen)
}

func TestPredict_MultiLabelFanOut(t *testing.T) {
	X, _ := oneHot(t, 2, "A1", "A2", "B")
	y := [][]string{{"A1"}, {"A1", "B"}, {"A2"}, {"A2"}, {"B"}, {"B"}}
	scores := map[string]float64{"A": 0.4, "B": 0.1, "A1": 0.35, "A2": 0.2}

	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)),
		hiclass.WithBaseEstimator(recordingFactory(nil, scores)),
		hiclass.WithMLBPredictionThreshold(0.3))
	require.NoError(t, clf.FitMultiLabel(X, y, nil))

	paths, err := clf.PredictPath(point(t, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{root, "A", "A1"}, paths[0].Path, "only A (0.4) clears 0.3; B (0.1) does not")
	assert.Equal(t, []float64{0.4, 0.1, 0.35, 0.2}, paths[0].Proba)

	sets, err := clf.PredictLabelSets(point(t, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "A1"}}, sets)

	_, err = clf.Predict(point(t, 5, 0, 0))
	assert.ErrorIs(t, err, hiclass.ErrInvalidParameter)
}

func TestFitMultiLabel_OneVsRestDefault(t *testing.T) {
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
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithMLBPredictionThreshold(0.5))
	require.NoError(t, clf.FitMultiLabel(X, y, nil))
	assert.IsType(t, &estimator.OneVsRest{}, clf.Estimators()[root])

	sets, err := clf.PredictLabelSets(point(t, 0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"B"}}, sets)
}

func TestFitIndicator(t *testing.T) {
	X, _ := oneHot(t, 2, "A1", "A2", "B")
	mlb := estimator.NewMultiLabelBinarizer("A", "B", "A1", "A2")
	Y, err := mlb.Transform([][]string{{"A1"}, {"A1"}, {"A2"}, {"A2"}, {"B"}, {"B"}})
	require.NoError(t, err)

	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithMultiLabel(mlb),
		hiclass.WithBaseEstimator(recordingFactory(nil, map[string]float64{"A": 0.9, "A2": 0.8})))
	require.NoError(t, clf.FitIndicator(X, Y, nil))
	assert.Equal(t, mlb.Classes(), clf.Classes())

	sets, err := clf.PredictLabelSets(point(t, 0, 5, 0))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "A2"}}, sets)

	// binarizer without every class of the hierarchy
	short := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithMultiLabel(estimator.NewMultiLabelBinarizer("A1", "A2", "B")))
	err = short.FitMultiLabel(X, [][]string{{"A1"}, {"A1"}, {"A2"}, {"A2"}, {"B"}, {"B"}}, nil)
	assert.ErrorIs(t, err, hiclass.ErrInvalidParameter)

	err = hiclass.New().FitIndicator(X, Y, nil)
	assert.ErrorIs(t, err, hiclass.ErrInvalidParameter, "FitIndicator needs a binarizer")
}

func TestFit_LCNSiblings(t *testing.T) {
	g, err := builder.BuildHierarchy(root, nil, builder.Adjacency(map[string][]string{
		root: {"A", "B"},
		"A":  {"A1", "A2"},
		"B":  {"B1", "B2"},
	}))
	require.NoError(t, err)
	X, y := oneHot(t, 4, "A1", "A2", "B1", "B2")

	clf := hiclass.New(hiclass.WithHierarchy(g),
		hiclass.WithAlgorithm(hiclass.LCN), hiclass.WithTrainingStrategy(hiclass.Siblings))
	require.NoError(t, clf.Fit(X, y, nil))

	est := clf.Estimators()
	assert.NotContains(t, est, root, "the root has no membership classifier")
	for _, id := range []string{"A", "B", "A1", "A2", "B1", "B2"} {
		require.Contains(t, est, id)
		assert.ElementsMatch(t, []string{estimator.NegativeLabel, estimator.PositiveLabel}, est[id].Classes())
	}

	pred, err := clf.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, pred)

	paths, err := clf.PredictPath(point(t, 0, 0, 5, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{root, "B", "B1"}, paths[0].Path)
}

func TestFit_LCNWithoutStrategyStopsAtLeaves(t *testing.T) {
	X, y := oneHot(t, 4, "A1", "A2", "B")
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)),
		hiclass.WithAlgorithm(hiclass.LCN), hiclass.WithTrainingStrategy(hiclass.NoStrategy))
	require.NoError(t, clf.Fit(X, y, nil))

	est := clf.Estimators()
	assert.Len(t, est, 5, "every node gets a classifier")
	assert.IsType(t, &estimator.Constant{}, est["A1"])

	paths, err := clf.PredictPath(point(t, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{root, "A", "A1"}, paths[0].Path)
}

func TestFit_RawMode(t *testing.T) {
	items := []interface{}{"whiskers", "purr", "bark", "fetch", "bloom"}
	y := []string{"A1", "A1", "A2", "A2", "B"}
	X := samples.NewRaw(items...)

	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)),
		hiclass.WithFeatureExtraction(hiclass.Raw),
		hiclass.WithBaseEstimator(hiclass.Fixed(&memo{})))
	require.NoError(t, clf.Fit(X, y, nil))

	pred, err := clf.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, pred)

	st, err := clf.Hierarchy().State("A")
	require.NoError(t, err)
	assert.Nil(t, st.Features, "raw mode builds no feature caches")
	assert.Equal(t, &core.Metafeatures{NSamples: 4, NTargets: 2}, st.Metafeatures)

	// the default estimator cannot read raw examples
	err = hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithFeatureExtraction(hiclass.Raw)).Fit(X, y, nil)
	assert.ErrorIs(t, err, estimator.ErrUnsupportedSamples)
}

func TestPredict_DecisionFunction(t *testing.T) {
	X, y := oneHot(t, 5, "A1", "A2", "B")
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithDecisionFunction(true))
	require.NoError(t, clf.Fit(X, y, nil))

	pred, err := clf.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, pred)
}

func TestPredict_NoClassifierAtRoot(t *testing.T) {
	X, err := samples.FromRows([][]float64{{1}, {2}})
	require.NoError(t, err)
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)))
	require.NoError(t, clf.Fit(X, []string{root, root}, nil))
	assert.Empty(t, clf.Estimators())

	paths, err := clf.PredictPath(point(t, 1))
	require.NoError(t, err)
	assert.Empty(t, paths[0].Path)
	assert.Equal(t, make([]float64, 4), paths[0].Proba)

	pred, err := clf.Predict(point(t, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{""}, pred)
}

func TestFit_EstimatorSources(t *testing.T) {
	X, y := oneHot(t, 3, "A1", "A2", "B")

	rootOnly := hiclass.PerNode{root: estimator.NewLogisticRegression()}
	err := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithBaseEstimator(rootOnly)).Fit(X, y, nil)
	assert.ErrorIs(t, err, hiclass.ErrInvalidParameter, "A has no entry and there is no default")

	withDefault := hiclass.PerNode{
		"A":                estimator.NewLogisticRegression(),
		hiclass.DefaultKey: &fixedScores{scores: map[string]float64{"A": 1}},
	}
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithBaseEstimator(withDefault))
	require.NoError(t, clf.Fit(X, y, nil))
	assert.IsType(t, &fixedScores{}, clf.Estimators()[root])
	assert.IsType(t, &estimator.LogisticRegression{}, clf.Estimators()["A"])

	lr := estimator.NewLogisticRegression()
	clf = hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithBaseEstimator(hiclass.Fixed(lr)))
	require.NoError(t, clf.Fit(X, y, nil))
	assert.NotSame(t, lr, clf.Estimators()[root], "fixed estimators are cloned")
	assert.Nil(t, lr.Classes(), "the template stays unfitted")
}

func TestFit_Progress(t *testing.T) {
	X, y := oneHot(t, 2, "A1", "A2", "B")
	var rec progress.Recorder
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithProgress(&rec))
	require.NoError(t, clf.Fit(X, y, nil))

	for _, desc := range []string{"Building features", "Training base classifiers"} {
		p, ok := rec.Phase(desc)
		require.True(t, ok, desc)
		assert.Equal(t, 5, p.Total, desc)
		assert.Equal(t, 5, p.Done, desc)
		assert.True(t, p.Closed, desc)
	}
}

func TestFit_Errors(t *testing.T) {
	X, y := oneHot(t, 2, "A1", "A2", "B")
	g := scenario(t)

	_, err := hiclass.New().Predict(X)
	assert.ErrorIs(t, err, hiclass.ErrNotFitted)

	err = hiclass.New(hiclass.WithHierarchy(g)).Fit(X, y[:3], nil)
	assert.ErrorIs(t, err, hiclass.ErrShapeMismatch)

	err = hiclass.New(hiclass.WithHierarchy(g)).Fit(X, y, []float64{1})
	assert.ErrorIs(t, err, hiclass.ErrShapeMismatch)

	err = hiclass.New(hiclass.WithHierarchy(g)).Fit(samples.EmptyDense(3), nil, nil)
	assert.ErrorIs(t, err, hiclass.ErrShapeMismatch)

	bad := append([]string(nil), y...)
	bad[0] = "Z"
	err = hiclass.New(hiclass.WithHierarchy(g)).Fit(X, bad, nil)
	assert.ErrorIs(t, err, hiclass.ErrUnknownClass)

	err = hiclass.New(hiclass.WithHierarchy(g), hiclass.WithMultiLabel(estimator.NewMultiLabelBinarizer())).Fit(X, y, nil)
	assert.ErrorIs(t, err, hiclass.ErrInvalidParameter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = hiclass.New(hiclass.WithHierarchy(g), hiclass.WithContext(ctx)).Fit(X, y, nil)
	assert.ErrorIs(t, err, context.Canceled)

	clf := hiclass.New(hiclass.WithHierarchy(g))
	require.NoError(t, clf.Fit(X, y, nil))
	_, err = clf.Predict(samples.EmptyDense(3))
	assert.ErrorIs(t, err, hiclass.ErrShapeMismatch)
}

func TestFit_FeatureSelector(t *testing.T) {
	X, y := oneHot(t, 3, "A1", "A2", "B")
	var nodes []string
	keep := func(id string, Xn samples.Set, yn [][]string) (samples.Set, error) {
		nodes = append(nodes, id)
		assert.Equal(t, Xn.Len(), len(yn))

		return Xn, nil
	}
	clf := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithFeatureSelector(keep))
	require.NoError(t, clf.Fit(X, y, nil))
	assert.Equal(t, []string{"A1", "A2", "A", "B", root}, nodes, "post-order")

	drop := func(id string, Xn samples.Set, _ [][]string) (samples.Set, error) {
		return Xn.Subset(nil), nil
	}
	err := hiclass.New(hiclass.WithHierarchy(scenario(t)), hiclass.WithFeatureSelector(drop)).Fit(X, y, nil)
	assert.ErrorIs(t, err, hiclass.ErrShapeMismatch)
}

func TestFit_DoesNotMutateSuppliedHierarchy(t *testing.T) {
	X, y := oneHot(t, 2, "A1", "A2", "B")
	g := scenario(t)
	require.NoError(t, hiclass.New(hiclass.WithHierarchy(g)).Fit(X, y, nil))

	st, err := g.State(root)
	require.NoError(t, err)
	assert.Nil(t, st.Features)
	assert.Nil(t, st.Classifier)
}
