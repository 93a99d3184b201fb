// SPDX-License-Identifier: MIT

// Package bfs implements breadth-first search over a core.Graph class
// hierarchy, following parent → child edges.
//
// The result records visit order, depth (number of edges from the start)
// and the BFS-tree parent of every reached node. PathTo rebuilds the
// shortest root path of a node, which in a tree is its unique ancestry.
//
// Options:
//
//   - WithContext(ctx)   cancellation.
//   - WithOnVisit(fn)    hook on visit; an error aborts the search.
//   - WithMaxDepth(d)    stop expanding past depth d (d < 0 is ErrOptionViolation).
//
// Complexity: O(V + E) time, O(V) memory.
package bfs
