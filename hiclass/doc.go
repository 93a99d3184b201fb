// SPDX-License-Identifier: MIT

// Package hiclass implements hierarchical classification: examples are
// classified against a class taxonomy (a rooted tree or DAG of class
// identifiers) by a lattice of local classifiers combined through a walk
// from the root down to a predicted class.
//
// Fitting runs two passes over the hierarchy:
//
//  1. Feature building (preprocessed mode only), post-order: every node
//     caches the training rows rolled up through it.
//  2. Local training, pre-order: every node that needs a decision gets a
//     local classifier fitted on its rolled-up targets.
//
// Algorithms:
//
//	lcpn  one multiclass classifier per parent node, over its children
//	lcn   one classifier per node; binary membership whose positive and
//	      negative sets follow the chosen TrainingStrategy
//
// Prediction walks from the root. In single-label mode it descends into
// the arg-max child until a leaf, a node without a classifier, or the
// early-termination predicate (PredictionDepth nmlnp) stops it. In
// multi-label mode every child scoring above the threshold is explored and
// the probability vectors of the sub-walks are summed.
//
//	clf := hiclass.New(
//		hiclass.WithHierarchy(g),
//		hiclass.WithPredictionDepth(hiclass.NMLNP),
//		hiclass.WithStoppingThreshold(0.8),
//	)
//	if err := clf.Fit(X, y, nil); err != nil { ... }
//	labels, err := clf.Predict(Xtest)
//
// A fitted Classifier is read-only; its prediction methods are safe for
// concurrent use.
package hiclass
