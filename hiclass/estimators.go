// SPDX-License-Identifier: MIT

package hiclass

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/estimator"
)

// EstimatorSource resolves the untrained local classifier of a node.
// Implementations are Fixed, PerNode and Factory.
type EstimatorSource interface {
	estimatorFor(nodeID string, g *core.Graph) (estimator.Classifier, error)
}

type fixed struct{ c estimator.Classifier }

// Fixed uses a clone of c at every node.
func Fixed(c estimator.Classifier) EstimatorSource { return fixed{c: c} }

func (f fixed) estimatorFor(string, *core.Graph) (estimator.Classifier, error) {
	return f.c, nil
}

// PerNode maps node identifiers to estimators. Nodes without an entry use
// the DefaultKey entry.
type PerNode map[string]estimator.Classifier

func (m PerNode) estimatorFor(nodeID string, _ *core.Graph) (estimator.Classifier, error) {
	if c, ok := m[nodeID]; ok {
		return c, nil
	}
	if c, ok := m[DefaultKey]; ok {
		return c, nil
	}

	return nil, errors.Wrapf(ErrInvalidParameter, "hiclass: no estimator for node %q and no %q entry", nodeID, DefaultKey)
}

// Factory builds the estimator of a node from its identifier and the hierarchy.
type Factory func(nodeID string, g *core.Graph) (estimator.Classifier, error)

func (f Factory) estimatorFor(nodeID string, g *core.Graph) (estimator.Classifier, error) {
	return f(nodeID, g)
}

// resolveEstimator returns a fresh, unfitted estimator for nodeID.
func resolveEstimator(src EstimatorSource, nodeID string, g *core.Graph) (estimator.Classifier, error) {
	if src == nil {
		return estimator.NewLogisticRegression(), nil
	}
	c, err := src.estimatorFor(nodeID, g)
	if err != nil {
		return nil, errors.Wrapf(err, "hiclass: estimator for node %q", nodeID)
	}
	if c == nil {
		return nil, errors.Wrapf(ErrInvalidParameter, "hiclass: nil estimator for node %q", nodeID)
	}

	return c.Clone(), nil
}

// resolveMultiLabel returns a multi-label estimator for nodeID, wrapping the
// resolved estimator in OneVsRest unless it already is one.
func resolveMultiLabel(src EstimatorSource, nodeID string, g *core.Graph) (estimator.MultiLabelClassifier, error) {
	c, err := resolveEstimator(src, nodeID, g)
	if err != nil {
		return nil, err
	}
	if m, ok := c.(estimator.MultiLabelClassifier); ok {
		return m, nil
	}

	return estimator.NewOneVsRest(c), nil
}
