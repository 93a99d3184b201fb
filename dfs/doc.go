// SPDX-License-Identifier: MIT

// Package dfs implements depth-first traversal of a core.Graph class
// hierarchy, together with the DAG utilities built on it: cycle detection,
// topological ordering and memoized descendant/ancestor closures.
//
// Key features:
//   - Walk(g, startID, opts...): single-source traversal following parent → child edges
//   - Hooks: OnVisit (pre-order) & OnExit (post-order) with error aborts
//   - Each node is visited once even when reachable through several parents (DAG)
//   - Cancellation via context.Context
//
// The hooks are the two orders a hierarchical classifier needs: feature
// rollup runs post-order (children are complete before their parent) and
// per-node training runs pre-order.
//
// Complexity:
//
//   - Time:   O(V + E) for traversal, plus overhead of hooks.
//   - Memory: O(V) for recursion stack and metadata maps.
//
// Errors:
//
//   - ErrGraphNil               if g is nil.
//   - ErrStartVertexNotFound    if startID is missing.
//   - ErrCycleDetected          from DetectCycle / TopologicalSort.
//   - context.Canceled          if ctx is done.
//   - any error returned by OnVisit or OnExit.
package dfs
