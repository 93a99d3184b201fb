// SPDX-License-Identifier: MIT

package hiclass

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/hiclass/bfs"
	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/dfs"
)

// validateOptions rejects invalid parameter combinations before any fitting.
func validateOptions(o *Options) error {
	if o.err != nil {
		return o.err
	}

	switch {
	case !o.Algorithm.Valid():
		return errors.Wrapf(ErrInvalidParameter, "hiclass: algorithm %q", o.Algorithm)
	case !o.PredictionDepth.Valid():
		return errors.Wrapf(ErrInvalidParameter, "hiclass: prediction_depth %q", o.PredictionDepth)
	case !o.TrainingStrategy.Valid():
		return errors.Wrapf(ErrInvalidParameter, "hiclass: training_strategy %q", o.TrainingStrategy)
	case !o.FeatureExtraction.Valid():
		return errors.Wrapf(ErrInvalidParameter, "hiclass: feature_extraction %q", o.FeatureExtraction)
	case o.Root == "":
		return errors.Wrap(ErrInvalidParameter, "hiclass: empty root")
	}

	if o.TrainingStrategy != "" && o.Algorithm != LCN {
		return errors.Wrapf(ErrInvalidParameter,
			"hiclass: training_strategy %q requires algorithm %q, got %q", o.TrainingStrategy, LCN, o.Algorithm)
	}
	if o.StoppingCriteria != nil && o.PredictionDepth != NMLNP {
		return errors.Wrapf(ErrInvalidParameter,
			"hiclass: stopping_criteria requires prediction_depth %q, got %q", NMLNP, o.PredictionDepth)
	}
	// decision margins are unbounded, probabilities are not
	if !o.UseDecisionFunction && (o.MLBPredictionThreshold < 0 || o.MLBPredictionThreshold >= 1) {
		return errors.Wrapf(ErrInvalidParameter,
			"hiclass: mlb_prediction_threshold %v outside [0, 1)", o.MLBPredictionThreshold)
	}

	return nil
}

// ValidateHierarchy checks that g is rooted at root (in-degree zero), has
// no directed cycle, has at least one class besides the root, and that
// every node is reachable from the root.
func ValidateHierarchy(g *core.Graph, root string) error {
	if g == nil {
		return errors.Wrap(ErrInvalidHierarchy, "hiclass: nil hierarchy")
	}
	in, err := g.InDegree(root)
	if err != nil {
		return errors.Wrapf(ErrInvalidHierarchy, "hiclass: root %q not in hierarchy", root)
	}
	if in != 0 {
		return errors.Wrapf(ErrInvalidHierarchy, "hiclass: root %q has %d parents", root, in)
	}
	if g.NodeCount() < 2 {
		return errors.Wrap(ErrInvalidHierarchy, "hiclass: hierarchy has no classes")
	}
	if has, cycle := dfs.DetectCycle(g); has {
		return errors.Wrapf(ErrInvalidHierarchy, "hiclass: cycle %v", cycle)
	}

	res, err := bfs.BFS(g, root)
	if err != nil {
		return errors.Wrap(err, "hiclass: reachability")
	}
	if len(res.Order) != g.NodeCount() {
		for _, id := range g.Nodes() {
			if !res.Reached(id) {
				return errors.Wrapf(ErrInvalidHierarchy, "hiclass: node %q unreachable from root %q", id, root)
			}
		}
	}

	return nil
}
