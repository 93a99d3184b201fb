// SPDX-License-Identifier: MIT

package hiclass

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hiclass/builder"
	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/dfs"
	"github.com/katalvlaran/hiclass/estimator"
	"github.com/katalvlaran/hiclass/samples"
)

// Classifier is a hierarchical classifier. The zero value is not usable;
// create one with New.
type Classifier struct {
	opts Options

	// fitted state, replaced as a whole by a successful fit
	graph      *core.Graph
	root       string
	classes    []string
	classIndex map[string]int
	multiLabel bool
	estimators map[string]estimator.Classifier
	scorer     scorer
	fitted     bool
}

// New returns an unfitted Classifier configured by opts.
func New(opts ...Option) *Classifier {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Classifier{opts: o}
}

// Fit trains the classifier on X with one class label per row.
// sampleWeight may be nil.
func (c *Classifier) Fit(X samples.Set, y []string, sampleWeight []float64) error {
	if c.opts.MLB != nil || c.opts.MLBPredictionThreshold != 0 {
		return errors.Wrap(ErrInvalidParameter, "hiclass: multi-label options set, use FitMultiLabel")
	}
	labels := make([][]string, len(y))
	for i, l := range y {
		labels[i] = []string{l}
	}

	return c.fit(X, labels, sampleWeight, false)
}

// FitMultiLabel trains the classifier on X with a label set per row.
// Without WithMultiLabel the binarizer covers every class of the hierarchy.
func (c *Classifier) FitMultiLabel(X samples.Set, y [][]string, sampleWeight []float64) error {
	return c.fit(X, y, sampleWeight, true)
}

// FitIndicator trains from an indicator matrix whose columns follow the
// binarizer set with WithMultiLabel.
func (c *Classifier) FitIndicator(X samples.Set, Y *mat.Dense, sampleWeight []float64) error {
	if c.opts.MLB == nil {
		return errors.Wrap(ErrInvalidParameter, "hiclass: FitIndicator requires WithMultiLabel")
	}
	sets, err := c.opts.MLB.InverseTransform(Y)
	if err != nil {
		return fmt.Errorf("hiclass: decoding indicator: %w: %w", ErrShapeMismatch, err)
	}

	return c.fit(X, sets, sampleWeight, true)
}

func (c *Classifier) fit(X samples.Set, labels [][]string, sampleWeight []float64, multiLabel bool) error {
	o := &c.opts
	log := o.Logger

	// 1) Parameters, before any work
	if err := validateOptions(o); err != nil {
		return err
	}

	// 2) Shapes
	switch {
	case X == nil || X.Len() == 0:
		return errors.Wrap(ErrShapeMismatch, "hiclass: no training samples")
	case X.Len() != len(labels):
		return errors.Wrapf(ErrShapeMismatch, "hiclass: %d samples, %d targets", X.Len(), len(labels))
	case sampleWeight != nil && len(sampleWeight) != len(labels):
		return errors.Wrapf(ErrShapeMismatch, "hiclass: %d targets, %d sample weights", len(labels), len(sampleWeight))
	}

	// 3) Hierarchy
	g, err := c.hierarchy(labels)
	if err != nil {
		return err
	}
	if err = ValidateHierarchy(g, o.Root); err != nil {
		return err
	}
	for i, ls := range labels {
		for _, l := range ls {
			if !g.HasNode(l) {
				return errors.Wrapf(ErrUnknownClass, "hiclass: label %q of row %d not in hierarchy", l, i)
			}
		}
	}

	// 4) Class space
	var classes []string
	for _, id := range g.Nodes() {
		if id != o.Root {
			classes = append(classes, id)
		}
	}
	index := make(map[string]int, len(classes))
	if multiLabel {
		mlb := o.MLB
		if mlb == nil {
			mlb = estimator.NewMultiLabelBinarizer(classes...)
		}
		for _, id := range classes {
			j, ok := mlb.Index(id)
			if !ok {
				return errors.Wrapf(ErrInvalidParameter, "hiclass: binarizer lacks class %q", id)
			}
			index[id] = j
		}
		classes = append([]string(nil), mlb.Classes()...)
	} else {
		for j, id := range classes {
			index[id] = j
		}
	}

	closure := dfs.NewClosure(g)
	rollup, err := newRollup(g, o.Root, closure)
	if err != nil {
		return err
	}
	log.Debug("fitting hierarchy",
		zap.Int("nodes", g.NodeCount()), zap.Bool("tree", g.IsTree()), zap.Int("rows", X.Len()),
		zap.Bool("multi_label", multiLabel))

	// 5) Feature caches
	if o.FeatureExtraction == Preprocessed {
		fb := newFeatureBuilder(g, X, labels, o.FeatureSelector, log)
		if err = fb.run(o.Ctx, o.Root, o.Progress); err != nil {
			return errors.Wrap(err, "hiclass: building features")
		}
	}

	// 6) Local classifiers
	t := &trainer{
		graph:      g,
		root:       o.Root,
		opts:       o,
		X:          X,
		labels:     labels,
		weights:    sampleWeight,
		multiLabel: multiLabel,
		rollup:     rollup,
		closure:    closure,
		logger:     log,
		estimators: make(map[string]estimator.Classifier),
	}
	if err = t.run(o.Ctx, o.Progress); err != nil {
		return errors.Wrap(err, "hiclass: training local classifiers")
	}

	// 7) Commit
	c.graph = g
	c.root = o.Root
	c.classes = classes
	c.classIndex = index
	c.multiLabel = multiLabel
	c.estimators = t.estimators
	if o.Algorithm == LCN && o.TrainingStrategy.membership() {
		c.scorer = memberScorer{graph: g, useDecision: o.UseDecisionFunction}
	} else {
		c.scorer = parentScorer{graph: g, useDecision: o.UseDecisionFunction}
	}
	c.fitted = true

	return nil
}

// hierarchy clones the configured hierarchy or builds a flat one over the
// observed labels.
func (c *Classifier) hierarchy(labels [][]string) (*core.Graph, error) {
	if c.opts.Hierarchy != nil {
		return c.opts.Hierarchy.Clone(), nil
	}
	seen := map[string]struct{}{}
	var flat []string
	for _, ls := range labels {
		for _, l := range ls {
			if _, ok := seen[l]; ok || l == c.opts.Root {
				continue
			}
			seen[l] = struct{}{}
			flat = append(flat, l)
		}
	}
	sort.Strings(flat)
	g, err := builder.BuildHierarchy(c.opts.Root, nil, builder.Flat(flat...))
	if err != nil {
		return nil, fmt.Errorf("hiclass: flat hierarchy: %w: %w", ErrInvalidHierarchy, err)
	}

	return g, nil
}

// PredictPath walks every row of X and returns its path and probability vector.
// Rows without an available prediction get an empty path and a zero vector.
func (c *Classifier) PredictPath(X samples.Set) ([]PredictionPath, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}
	if X == nil || X.Len() == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "hiclass: no samples to predict")
	}
	out := make([]PredictionPath, X.Len())
	for i := range out {
		x := X.Subset([]int{i})
		walk := c.walkSingle
		if c.multiLabel {
			walk = c.walkMulti
		}
		path, proba, ok, err := walk(x, c.root)
		if err != nil {
			return nil, errors.Wrapf(err, "hiclass: row %d", i)
		}
		if !ok {
			proba = make([]float64, len(c.classes))
		}
		out[i] = PredictionPath{Path: path, Proba: proba}
	}

	return out, nil
}

// Predict returns the terminal class of each row, "" when none is available.
// It is only defined for single-label fits.
func (c *Classifier) Predict(X samples.Set) ([]string, error) {
	if c.fitted && c.multiLabel {
		return nil, errors.Wrap(ErrInvalidParameter, "hiclass: multi-label fit, use PredictLabelSets")
	}
	paths, err := c.PredictPath(X)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.Terminal()
	}

	return out, nil
}

// PredictLabelSets returns the classes reached by each row: every node of
// the walk except the root in multi-label fits, the terminal class otherwise.
func (c *Classifier) PredictLabelSets(X samples.Set) ([][]string, error) {
	paths, err := c.PredictPath(X)
	if err != nil {
		return nil, err
	}

	return c.LabelSets(paths), nil
}

// LabelSets converts walks returned by PredictPath into the label sets
// PredictLabelSets would report for them.
func (c *Classifier) LabelSets(paths []PredictionPath) [][]string {
	out := make([][]string, len(paths))
	for i, p := range paths {
		switch {
		case len(p.Path) == 0:
		case c.multiLabel:
			var set []string
			for _, id := range p.Path {
				if id != c.root && !contains(set, id) {
					set = append(set, id)
				}
			}
			out[i] = set
		default:
			out[i] = []string{p.Terminal()}
		}
	}

	return out
}

// PredictProba returns a len(X) × NClasses() matrix of walk scores.
func (c *Classifier) PredictProba(X samples.Set) (*mat.Dense, error) {
	paths, err := c.PredictPath(X)
	if err != nil {
		return nil, err
	}
	m := mat.NewDense(len(paths), len(c.classes), nil)
	for i, p := range paths {
		m.SetRow(i, p.Proba)
	}

	return m, nil
}

// Classes returns the flattened class list indexing probability vectors.
func (c *Classifier) Classes() []string { return append([]string(nil), c.classes...) }

// NClasses returns len(Classes()).
func (c *Classifier) NClasses() int { return len(c.classes) }

// Estimators returns the fitted local classifiers keyed by node.
func (c *Classifier) Estimators() map[string]estimator.Classifier {
	out := make(map[string]estimator.Classifier, len(c.estimators))
	for k, v := range c.estimators {
		out[k] = v
	}

	return out
}

// Hierarchy returns the fitted hierarchy, nil before Fit. It must not be mutated.
func (c *Classifier) Hierarchy() *core.Graph { return c.graph }

// Options returns the configuration.
func (c *Classifier) Options() Options { return c.opts }
