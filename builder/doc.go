// SPDX-License-Identifier: MIT

// Package builder assembles class hierarchies deterministically.
//
// BuildHierarchy(root, bopts, cons...) creates a core.Graph holding the root
// node, resolves the builder configuration and applies each Constructor in
// order. Constructors only add nodes and edges; the same inputs always give
// the same insertion order, and so the same flattened class list.
//
// Constructors:
//
//	Flat(labels...)               root → label for every label
//	Edges(pairs...)               explicit parent → child pairs
//	Adjacency(map[parent][]child) parents in sorted order, children as given
//	Balanced(depth, branching)    full tree; IDs from the configured IDFn
//
// Errors:
//
//	ErrEmptyRoot        – root identifier is empty
//	ErrTooFewNodes      – Balanced depth or branching below 1
//	ErrConstructFailed  – nil constructor or rejected edge
package builder
