// SPDX-License-Identifier: MIT

// Package hiclass is the module root of a hierarchical classification
// engine: one local classifier per node of a class hierarchy, trained on
// the samples of its subtree and chained top-down at prediction time.
//
// The module is organized in small packages:
//
//	core/       thread-safe directed hierarchy graph with per-node state
//	bfs/        breadth-first traversal, depths and parent links
//	dfs/        depth-first walks, cycle detection, topological order, closure
//	builder/    hierarchy constructors (flat, edges, adjacency, balanced)
//	samples/    sample containers (dense matrices, raw items)
//	estimator/  local classifiers (logistic regression, one-vs-rest, constant)
//	progress/   progress reporting sinks
//	hiclass/    the hierarchical classifier itself
//	cmd/        the hiclass command line tool
//
// Quick ASCII example:
//
//	        <ROOT>
//	        /    \
//	   animal    plant
//	   /    \
//	 cat    dog
//
// Each internal node gets a classifier choosing among its children; a
// prediction follows the most probable child from <ROOT> down to a leaf,
// or stops early when its score falls below a threshold.
package hiclass
