// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"sync"

	"github.com/katalvlaran/hiclass/estimator"
	"github.com/katalvlaran/hiclass/samples"
)

// Sentinel errors for hierarchy operations.
var (
	// ErrEmptyNodeID indicates that the provided node ID is empty.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("core: self-loop not allowed")
)

// Metafeatures summarises the training data available at a node.
type Metafeatures struct {
	// NSamples is the number of training rows rolled up into the node.
	NSamples int
	// NTargets is the number of distinct labels among those rows.
	NTargets int
}

// FeatureCache is the training subset rolled up through a node.
//
// Rows holds the original training-row indices, ascending and unique, and
// X holds the corresponding feature rows in the same order.
type FeatureCache struct {
	Rows []int
	X    samples.Set
}

// NodeState is the attribute bag of one hierarchy node. Every field is
// written at most once during fitting; nil means "not computed".
type NodeState struct {
	// ID is the identifier of the owning node.
	ID string

	// Features is set by the feature-building pass (preprocessed mode).
	Features *FeatureCache

	// Classifier is set by the training pass when the node gets one.
	Classifier estimator.Classifier

	// Metafeatures is set alongside Features, or by the trainer in raw mode.
	Metafeatures *Metafeatures
}

// node is one arena record.
type node struct {
	state    *NodeState
	children []string
	parents  []string
}

// Graph is a directed class hierarchy. Edges point from parent to child.
type Graph struct {
	mu    sync.RWMutex
	order []string         // insertion order of node IDs
	nodes map[string]*node // node ID → record
	edges int
}

// NewGraph returns an empty hierarchy.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}
