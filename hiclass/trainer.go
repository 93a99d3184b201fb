// SPDX-License-Identifier: MIT

package hiclass

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/dfs"
	"github.com/katalvlaran/hiclass/estimator"
	"github.com/katalvlaran/hiclass/progress"
	"github.com/katalvlaran/hiclass/samples"
)

// trainer fits the local classifier of every node, parents first.
type trainer struct {
	graph      *core.Graph
	root       string
	opts       *Options
	X          samples.Set
	labels     [][]string
	weights    []float64
	multiLabel bool
	rollup     rollupStrategy
	closure    *dfs.Closure
	logger     *zap.Logger
	progress   progress.Handle

	estimators map[string]estimator.Classifier
}

// universe is the pool of candidate rows of a node: X row i is training row rows[i].
type universe struct {
	rows []int
	X    samples.Set
}

// trainingSet is a node's materialized problem. pos indexes the universe
// and may repeat a position when a row trains several targets.
type trainingSet struct {
	pos     []int
	y       []string   // single-label targets, aligned with pos
	sets    [][]string // multi-label targets, aligned with pos
	targets []string   // distinct targets in first-seen order
}

func (t *trainer) run(ctx context.Context, sink progress.Sink) error {
	t.progress = sink.Start(t.graph.NodeCount(), "Training base classifiers")
	_, err := dfs.Walk(t.graph, t.root, dfs.WithContext(ctx), dfs.WithOnVisit(t.train))
	if cerr := t.progress.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "hiclass: progress")
	}

	return err
}

// train decides whether id needs a classifier and fits it.
func (t *trainer) train(id string) error {
	st, err := t.graph.State(id)
	if err != nil {
		return err
	}
	if st.Classifier != nil {
		return nil
	}
	t.progress.Update(1)

	// 1) Nodes that never decide
	member := t.opts.Algorithm == LCN && t.opts.TrainingStrategy.membership()
	switch {
	case t.opts.Algorithm == LCPN && t.graph.IsLeaf(id):
		t.logger.Debug("skipping leaf node", zap.String("node", id), zap.String("algorithm", string(LCPN)))

		return nil
	case member && id == t.root:
		t.logger.Debug("skipping root node", zap.String("node", id), zap.String("training_strategy", string(t.opts.TrainingStrategy)))

		return nil
	}

	// 2) Candidate rows and their rolled-up targets
	u := t.universe(id, member)
	var set trainingSet
	switch {
	case member:
		set = t.membershipSet(id, u)
	case t.multiLabel:
		set = t.multiLabelSet(id, u)
	default:
		set = t.singleLabelSet(id, u)
	}
	if st.Metafeatures == nil {
		st.Metafeatures = &core.Metafeatures{NSamples: len(set.pos), NTargets: len(set.targets)}
	}

	// 3) Decision table
	if len(set.pos) == 0 {
		t.logger.Warn("not enough training data available to train, classification in branch will terminate at node",
			zap.String("node", id))

		return nil
	}
	Xn := u.X.Subset(set.pos)
	wn := t.subsetWeights(u, set.pos)
	t.logger.Debug("training local classifier",
		zap.String("node", id), zap.Int("rows", len(set.pos)), zap.Int("targets", len(set.targets)))

	var clf estimator.Classifier
	switch {
	case len(set.targets) == 1:
		t.logger.Debug("only a single target available, will trivially predict it",
			zap.String("node", id), zap.String("target", set.targets[0]))
		clf = estimator.NewConstant(set.targets[0])
		err = clf.Fit(Xn, repeat(set.targets[0], len(set.pos)), wn)
	case t.multiLabel && !member:
		var mlc estimator.MultiLabelClassifier
		if mlc, err = resolveMultiLabel(t.opts.BaseEstimator, id, t.graph); err != nil {
			return err
		}
		err = mlc.FitIndicator(Xn, indicator(set.sets, set.targets), set.targets, wn)
		clf = mlc
	default:
		if clf, err = resolveEstimator(t.opts.BaseEstimator, id, t.graph); err != nil {
			return err
		}
		err = clf.Fit(Xn, set.y, wn)
	}
	if err != nil {
		return errors.Wrapf(err, "hiclass: training node %q", id)
	}

	st.Classifier = clf
	t.estimators[id] = clf

	return nil
}

// universe returns the node's cache in preprocessed mode, the root cache for
// membership classifiers, and every training row in raw mode.
func (t *trainer) universe(id string, member bool) universe {
	if t.opts.FeatureExtraction == Raw {
		return universe{rows: samples.Sequence(t.X.Len()), X: t.X}
	}
	if member {
		id = t.root
	}
	st, _ := t.graph.State(id)
	if st == nil || st.Features == nil {
		return universe{X: t.X.Subset(nil)}
	}

	return universe{rows: st.Features.Rows, X: st.Features.X}
}

func (t *trainer) singleLabelSet(id string, u universe) trainingSet {
	targets := make([][]string, len(u.rows))
	for i, r := range u.rows {
		targets[i] = t.rollup.targets(id, t.labels[r])
	}
	pos, y := flattenPairs(targets)

	return trainingSet{pos: pos, y: y, targets: distinct(y)}
}

func (t *trainer) multiLabelSet(id string, u universe) trainingSet {
	var set trainingSet
	var all []string
	for i, r := range u.rows {
		ts := t.rollup.targets(id, t.labels[r])
		if len(ts) == 0 {
			continue // nothing left to train after the rollup
		}
		set.pos = append(set.pos, i)
		set.sets = append(set.sets, ts)
		all = append(all, ts...)
	}
	set.targets = distinct(all)

	return set
}

func (t *trainer) membershipSet(id string, u universe) trainingSet {
	rule := newMemberRule(t.graph, t.closure, id, t.opts.TrainingStrategy)
	var set trainingSet
	for i, r := range u.rows {
		switch rule.classify(t.labels[r]) {
		case positive:
			set.pos = append(set.pos, i)
			set.y = append(set.y, estimator.PositiveLabel)
		case negative:
			set.pos = append(set.pos, i)
			set.y = append(set.y, estimator.NegativeLabel)
		}
	}
	set.targets = distinct(set.y)

	return set
}

func (t *trainer) subsetWeights(u universe, pos []int) []float64 {
	if t.weights == nil {
		return nil
	}
	w := make([]float64, len(pos))
	for i, p := range pos {
		w[i] = t.weights[u.rows[p]]
	}

	return w
}

// indicator encodes target sets over classes as a 0/1 matrix.
func indicator(sets [][]string, classes []string) *mat.Dense {
	col := make(map[string]int, len(classes))
	for j, c := range classes {
		col[c] = j
	}
	Y := mat.NewDense(len(sets), len(classes), nil)
	for i, s := range sets {
		for _, l := range s {
			Y.Set(i, col[l], 1)
		}
	}

	return Y
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	return out
}

func repeat(v string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = v
	}

	return out
}
