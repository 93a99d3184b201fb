// SPDX-License-Identifier: MIT

package hiclass

import (
	"errors"

	"github.com/katalvlaran/hiclass/core"
)

// DefaultRoot is the root identifier used when none is configured.
const DefaultRoot = "<ROOT>"

// DefaultKey is the PerNode entry used for nodes without their own estimator.
const DefaultKey = "<DEFAULT>"

// Sentinel errors.
var (
	// ErrInvalidParameter indicates an invalid or inconsistent configuration.
	ErrInvalidParameter = errors.New("hiclass: invalid parameter")

	// ErrNotFitted is returned by prediction methods before a successful fit.
	ErrNotFitted = errors.New("hiclass: not fitted")

	// ErrUnknownClass indicates a class identifier absent from the class space.
	ErrUnknownClass = errors.New("hiclass: unknown class")

	// ErrShapeMismatch indicates X, y and sample weights disagree in length.
	ErrShapeMismatch = errors.New("hiclass: shape mismatch")

	// ErrInvalidHierarchy indicates a hierarchy that is not rooted at the
	// configured root, not fully reachable from it, or cyclic.
	ErrInvalidHierarchy = errors.New("hiclass: invalid hierarchy")
)

// Algorithm selects how local classifiers are laid over the hierarchy.
type Algorithm string

// Algorithms.
const (
	LCPN Algorithm = "lcpn" // one classifier per parent node
	LCN  Algorithm = "lcn"  // one classifier per node
)

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool { return a == LCPN || a == LCN }

// PredictionDepth controls whether prediction must reach a leaf.
type PredictionDepth string

// Prediction depths.
const (
	MLNP  PredictionDepth = "mlnp"  // mandatory leaf-node prediction
	NMLNP PredictionDepth = "nmlnp" // non-mandatory leaf-node prediction
)

// Valid reports whether d is a known prediction depth.
func (d PredictionDepth) Valid() bool { return d == MLNP || d == NMLNP }

// TrainingStrategy selects the positive and negative rows of per-node
// classifiers under LCN. The zero value means unset.
type TrainingStrategy string

// Training strategies.
const (
	Exclusive         TrainingStrategy = "exclusive"
	LessExclusive     TrainingStrategy = "less_exclusive"
	Inclusive         TrainingStrategy = "inclusive"
	LessInclusive     TrainingStrategy = "less_inclusive"
	Siblings          TrainingStrategy = "siblings"
	ExclusiveSiblings TrainingStrategy = "exclusive_siblings"
	NoStrategy        TrainingStrategy = "none"
)

// Valid reports whether s is unset or a known strategy.
func (s TrainingStrategy) Valid() bool {
	switch s {
	case "", Exclusive, LessExclusive, Inclusive, LessInclusive, Siblings, ExclusiveSiblings, NoStrategy:
		return true
	}

	return false
}

// membership reports whether s trains binary membership classifiers.
func (s TrainingStrategy) membership() bool {
	return s != "" && s != NoStrategy
}

// FeatureExtraction selects how training rows reach local classifiers.
type FeatureExtraction string

// Feature extraction modes.
const (
	// Preprocessed rolls rows up through per-node feature caches.
	Preprocessed FeatureExtraction = "preprocessed"
	// Raw hands every training row to every local classifier.
	Raw FeatureExtraction = "raw"
)

// Valid reports whether f is a known mode.
func (f FeatureExtraction) Valid() bool { return f == Preprocessed || f == Raw }

// StoppingCriteria decides early termination under NMLNP.
// Implementations are Threshold and StopFunc.
type StoppingCriteria interface {
	stop(node *core.NodeState, isRoot bool, prediction string, score float64) bool
}

// Threshold stops the walk at a node whose arg-max score is below it.
// The root is never a terminal prediction.
type Threshold float64

func (t Threshold) stop(_ *core.NodeState, isRoot bool, _ string, score float64) bool {
	return score < float64(t) && !isRoot
}

// StopFunc receives the current node's state, the predicted child and its
// score; returning true stops the walk at the current node.
type StopFunc func(node *core.NodeState, prediction string, score float64) bool

func (f StopFunc) stop(node *core.NodeState, _ bool, prediction string, score float64) bool {
	return f(node, prediction, score)
}

// PredictionPath is the outcome of one prediction walk.
type PredictionPath struct {
	// Path lists the visited nodes from the root. Empty when no prediction
	// was available.
	Path []string
	// Proba is indexed like Classifier.Classes().
	Proba []float64
}

// Terminal returns the last node of the path, or "" when empty.
func (p PredictionPath) Terminal() string {
	if len(p.Path) == 0 {
		return ""
	}

	return p.Path[len(p.Path)-1]
}
