// SPDX-License-Identifier: MIT

// Package core defines the class Hierarchy graph: a rooted directed graph of
// class identifiers together with the per-node state written while a
// hierarchical classifier is fitted.
//
// The Graph is an arena of node records indexed by identifier. Each record
// owns a NodeState (feature cache, fitted classifier, metafeatures) and the
// topology is kept apart in ordered parent/child lists, so traversal code
// never needs to look inside the node payload to find its way.
//
// Determinism:
//
//   - Nodes() returns identifiers in insertion order; the flattened class
//     list of a fitted model is Nodes() minus the root.
//   - Children() and Parents() return identifiers in edge insertion order.
//
// Concurrency:
//
//   - Topology is guarded by a sync.RWMutex. NodeState values handed out by
//     State() are not locked: they are written by the single fitting pass
//     and are read-only afterwards.
//
// Core Methods:
//
//	AddNode(id string) error                  // O(1), idempotent
//	AddEdge(parent, child string) error       // O(1) amortized, idempotent
//	HasNode(id) / HasEdge(parent, child)      // O(1) / O(d)
//	Nodes() []string                          // O(V)
//	Children(id) / Parents(id) ([]string, error)
//	InDegree(id) / OutDegree(id) (int, error)
//	IsLeaf(id) bool
//	IsTree() bool                             // O(V)
//	Roots() []string                          // nodes of in-degree zero
//	State(id) (*NodeState, error)
//	Clone() *Graph                            // topology only, fresh states
//
// Errors:
//
//	ErrEmptyNodeID   – zero-length node ID
//	ErrNodeNotFound  – missing node
//	ErrSelfLoop      – edge from a node to itself
package core
