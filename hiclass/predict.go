// SPDX-License-Identifier: MIT

package hiclass

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/estimator"
	"github.com/katalvlaran/hiclass/samples"
)

// scorer yields the local class space of a node and the scores of one
// example over it. ok is false when the node cannot decide.
type scorer interface {
	score(node string, x samples.Set) (classes []string, scores []float64, ok bool, err error)
}

// parentScorer reads the classifier stored at the node itself (lcpn, and
// lcn without a membership strategy).
type parentScorer struct {
	graph       *core.Graph
	useDecision bool
}

func (s parentScorer) score(node string, x samples.Set) ([]string, []float64, bool, error) {
	st, err := s.graph.State(node)
	if err != nil || st.Classifier == nil {
		return nil, nil, false, err
	}
	scores, err := scoreWith(st.Classifier, x, s.useDecision)
	if err != nil {
		return nil, nil, false, errors.Wrapf(err, "hiclass: scoring at %q", node)
	}
	classes := st.Classifier.Classes()
	if len(scores) != len(classes) {
		return nil, nil, false, errors.Wrapf(ErrShapeMismatch,
			"hiclass: classifier at %q returned %d scores for %d classes", node, len(scores), len(classes))
	}

	return classes, scores, len(classes) > 0, nil
}

// memberScorer reads the membership classifiers of the node's children:
// each child with a classifier contributes its positive-class probability,
// or its positive-over-negative margin when decision scores are used.
type memberScorer struct {
	graph       *core.Graph
	useDecision bool
}

func (s memberScorer) score(node string, x samples.Set) ([]string, []float64, bool, error) {
	children, err := s.graph.Children(node)
	if err != nil {
		return nil, nil, false, err
	}
	var classes []string
	var scores []float64
	for _, c := range children {
		st, _ := s.graph.State(c)
		if st == nil || st.Classifier == nil {
			continue
		}
		raw, err := scoreWith(st.Classifier, x, s.useDecision)
		if err != nil {
			return nil, nil, false, errors.Wrapf(err, "hiclass: scoring membership of %q", c)
		}
		score := positiveScore(st.Classifier.Classes(), raw)
		if _, ok := st.Classifier.(estimator.DecisionFunctioner); ok && s.useDecision {
			score = estimator.BinaryMargin(st.Classifier.Classes(), raw)
		}
		classes = append(classes, c)
		scores = append(scores, score)
	}

	return classes, scores, len(classes) > 0, nil
}

func scoreWith(clf estimator.Classifier, x samples.Set, useDecision bool) ([]float64, error) {
	if useDecision {
		if df, ok := clf.(estimator.DecisionFunctioner); ok {
			return df.DecisionFunction(x)
		}
	}

	return clf.PredictProba(x)
}

// positiveScore returns the score of estimator.PositiveLabel, 0 if absent.
func positiveScore(classes []string, scores []float64) float64 {
	for i, c := range classes {
		if c == estimator.PositiveLabel && i < len(scores) {
			return scores[i]
		}
	}

	return 0
}

// walkSingle descends from start into the arg-max child until a leaf, a
// node that cannot decide, or early termination.
func (c *Classifier) walkSingle(x samples.Set, start string) ([]string, []float64, bool, error) {
	classes, scores, ok, err := c.scorer.score(start, x)
	if err != nil || !ok {
		return nil, nil, false, err
	}

	path := []string{start}
	proba := make([]float64, len(c.classes))
	for cur := start; ; {
		best := floats.MaxIdx(scores)
		prediction, score := classes[best], scores[best]
		if err = c.scatter(proba, path, classes, scores); err != nil {
			return nil, nil, false, err
		}

		if c.shouldStop(cur, prediction, score) {
			break
		}
		if !c.graph.HasEdge(cur, prediction) {
			// e.g. a constant classifier at a leaf predicting the leaf itself
			break
		}
		path = append(path, prediction)
		cur = prediction

		if classes, scores, ok, err = c.scorer.score(cur, x); err != nil {
			return nil, nil, false, err
		}
		if !ok {
			break
		}
	}

	return path, proba, true, nil
}

// walkMulti explores every child of start scoring above the threshold and
// sums the probability vectors of the sub-walks into its own.
func (c *Classifier) walkMulti(x samples.Set, start string) ([]string, []float64, bool, error) {
	classes, scores, ok, err := c.scorer.score(start, x)
	if err != nil || !ok {
		return nil, nil, false, err
	}

	path := []string{start}
	proba := make([]float64, len(c.classes))
	if err = c.scatter(proba, path, classes, scores); err != nil {
		return nil, nil, false, err
	}
	for i, class := range classes {
		if scores[i] <= c.opts.MLBPredictionThreshold || !c.graph.HasEdge(start, class) {
			continue
		}
		sub, subProba, ok, err := c.walkMulti(x, class)
		if err != nil {
			return nil, nil, false, err
		}
		if !ok {
			path = append(path, class)

			continue
		}
		floats.Add(proba, subProba)
		path = append(path, sub...)
	}

	return path, proba, true, nil
}

// scatter writes local scores into the global vector.
func (c *Classifier) scatter(proba []float64, path, classes []string, scores []float64) error {
	for i, class := range classes {
		idx, ok := c.classIndex[class]
		if !ok {
			c.opts.Logger.Error("could not find index in classes for local class",
				zap.String("class", class), zap.Strings("path", path))

			return errors.Wrapf(ErrUnknownClass, "hiclass: local class %q at path %v", class, path)
		}
		proba[idx] = scores[i]
	}

	return nil
}

// shouldStop evaluates the early-termination predicate at node.
func (c *Classifier) shouldStop(node, prediction string, score float64) bool {
	if c.opts.PredictionDepth != NMLNP || c.opts.StoppingCriteria == nil {
		return false
	}
	st, _ := c.graph.State(node)
	if !c.opts.StoppingCriteria.stop(st, node == c.root, prediction, score) {
		return false
	}
	c.opts.Logger.Debug("early termination",
		zap.String("node", node), zap.String("prediction", prediction), zap.Float64("score", score))

	return true
}
