// SPDX-License-Identifier: MIT

package hiclass

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/estimator"
	"github.com/katalvlaran/hiclass/progress"
	"github.com/katalvlaran/hiclass/samples"
)

// FeatureSelector transforms the feature rows cached at a node. It must
// return a set with the same number of rows, in the same order, living in
// the feature space seen at prediction time.
type FeatureSelector func(nodeID string, X samples.Set, y [][]string) (samples.Set, error)

// Option configures a Classifier.
// Invalid values are recorded and surfaced as ErrInvalidParameter by Fit.
type Option func(*Options)

// Options holds the configuration of a Classifier.
type Options struct {
	Algorithm              Algorithm
	PredictionDepth        PredictionDepth
	TrainingStrategy       TrainingStrategy
	StoppingCriteria       StoppingCriteria
	FeatureExtraction      FeatureExtraction
	MLB                    *estimator.MultiLabelBinarizer
	MLBPredictionThreshold float64
	UseDecisionFunction    bool
	Root                   string

	// Hierarchy is cloned at Fit. Nil means a flat hierarchy over the
	// observed labels.
	Hierarchy *core.Graph

	// BaseEstimator resolves local classifiers. Nil means logistic regression.
	BaseEstimator EstimatorSource

	FeatureSelector FeatureSelector
	Progress        progress.Sink
	Logger          *zap.Logger
	Ctx             context.Context

	err error
}

// DefaultOptions returns the configuration used by New without options:
// lcpn, mlnp, preprocessed features, DefaultRoot, no progress, no logs.
func DefaultOptions() Options {
	return Options{
		Algorithm:         LCPN,
		PredictionDepth:   MLNP,
		FeatureExtraction: Preprocessed,
		Root:              DefaultRoot,
		Progress:          progress.Nop,
		Logger:            zap.NewNop(),
		Ctx:               context.Background(),
	}
}

// WithAlgorithm sets the local classifier layout.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) { o.Algorithm = a }
}

// WithPredictionDepth sets whether prediction must reach a leaf.
func WithPredictionDepth(d PredictionDepth) Option {
	return func(o *Options) { o.PredictionDepth = d }
}

// WithTrainingStrategy sets the LCN training strategy.
func WithTrainingStrategy(s TrainingStrategy) Option {
	return func(o *Options) { o.TrainingStrategy = s }
}

// WithStoppingThreshold stops NMLNP walks below the given score.
func WithStoppingThreshold(t float64) Option {
	return func(o *Options) { o.StoppingCriteria = Threshold(t) }
}

// WithStoppingFunc delegates NMLNP early termination to fn.
func WithStoppingFunc(fn StopFunc) Option {
	return func(o *Options) {
		if fn == nil {
			o.err = errors.Wrap(ErrInvalidParameter, "hiclass: nil stopping func")

			return
		}
		o.StoppingCriteria = fn
	}
}

// WithFeatureExtraction sets the feature extraction mode.
func WithFeatureExtraction(f FeatureExtraction) Option {
	return func(o *Options) { o.FeatureExtraction = f }
}

// WithMultiLabel sets the binarizer whose classes index multi-label probability vectors.
func WithMultiLabel(mlb *estimator.MultiLabelBinarizer) Option {
	return func(o *Options) { o.MLB = mlb }
}

// WithMLBPredictionThreshold sets the score a child must exceed to be
// explored in multi-label prediction.
func WithMLBPredictionThreshold(t float64) Option {
	return func(o *Options) { o.MLBPredictionThreshold = t }
}

// WithDecisionFunction prefers margin scores over probabilities when the
// local classifier offers them.
func WithDecisionFunction(use bool) Option {
	return func(o *Options) { o.UseDecisionFunction = use }
}

// WithRoot sets the root identifier.
func WithRoot(root string) Option {
	return func(o *Options) { o.Root = root }
}

// WithHierarchy sets the class hierarchy.
func WithHierarchy(g *core.Graph) Option {
	return func(o *Options) { o.Hierarchy = g }
}

// WithBaseEstimator sets the local classifier source.
func WithBaseEstimator(src EstimatorSource) Option {
	return func(o *Options) { o.BaseEstimator = src }
}

// WithFeatureSelector installs a per-node feature selection hook.
func WithFeatureSelector(fn FeatureSelector) Option {
	return func(o *Options) { o.FeatureSelector = fn }
}

// WithProgress sets the progress sink. Nil keeps progress.Nop.
func WithProgress(s progress.Sink) Option {
	return func(o *Options) {
		if s != nil {
			o.Progress = s
		}
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithContext sets the context checked between nodes during Fit.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}
