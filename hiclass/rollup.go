// SPDX-License-Identifier: MIT

package hiclass

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/hiclass/bfs"
	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/dfs"
)

// rollupStrategy maps the labels of one training row to the targets that
// row trains against at node. At a leaf the labels come back unchanged; at
// an internal node the targets are the children whose subtree holds one of
// the labels. An empty result means the row cannot train node.
type rollupStrategy interface {
	targets(node string, labels []string) []string
}

// newRollup picks the tree strategy for trees and the DAG strategy otherwise.
func newRollup(g *core.Graph, root string, c *dfs.Closure) (rollupStrategy, error) {
	if !g.IsTree() {
		return dagRollup{graph: g, closure: c}, nil
	}
	res, err := bfs.BFS(g, root)
	if err != nil {
		return nil, errors.Wrap(err, "hiclass: rollup ancestry")
	}

	return treeRollup{graph: g, ancestry: res}, nil
}

// treeRollup follows the unique root path of each label down from node.
type treeRollup struct {
	graph    *core.Graph
	ancestry *bfs.Result
}

func (r treeRollup) targets(node string, labels []string) []string {
	if r.graph.IsLeaf(node) {
		return append([]string(nil), labels...)
	}
	var out []string
	for _, l := range labels {
		if c, ok := r.childOnPath(node, l); ok && !contains(out, c) {
			out = append(out, c)
		}
	}

	return out
}

// childOnPath returns the child of node on the root path of label.
func (r treeRollup) childOnPath(node, label string) (string, bool) {
	path, err := r.ancestry.PathTo(label)
	if err != nil {
		return "", false
	}
	for i := 0; i < len(path)-1; i++ {
		if path[i] == node {
			return path[i+1], true
		}
	}

	return "", false
}

// dagRollup emits every child whose subtree holds a label, so a row under
// a shared descendant trains all the subtrees containing it.
type dagRollup struct {
	graph   *core.Graph
	closure *dfs.Closure
}

func (r dagRollup) targets(node string, labels []string) []string {
	children, _ := r.graph.Children(node)
	if len(children) == 0 {
		return append([]string(nil), labels...)
	}
	var out []string
	for _, c := range children {
		for _, l := range labels {
			if l == c || r.closure.IsDescendant(c, l) {
				out = append(out, c)

				break
			}
		}
	}

	return out
}

// flattenPairs expands per-row targets into aligned (row position, target)
// pairs, one per target. Rows without targets are dropped; rows with
// several targets are repeated.
func flattenPairs(targets [][]string) ([]int, []string) {
	var pos []int
	var y []string
	for i, ts := range targets {
		for _, t := range ts {
			pos = append(pos, i)
			y = append(y, t)
		}
	}

	return pos, y
}

// membership is the role of a training row in a node's binary problem.
type membership int

const (
	excluded membership = iota
	negative
	positive
)

// memberRule classifies rows for the LCN membership classifier of node.
type memberRule struct {
	strategy    TrainingStrategy
	node        string
	closure     *dfs.Closure
	subtree     map[string]struct{} // node and its descendants
	siblings    map[string]struct{} // other children of node's parents
	sibSubtrees map[string]struct{} // siblings and their descendants
}

func newMemberRule(g *core.Graph, c *dfs.Closure, node string, s TrainingStrategy) memberRule {
	r := memberRule{
		strategy:    s,
		node:        node,
		closure:     c,
		subtree:     setOf(node),
		siblings:    map[string]struct{}{},
		sibSubtrees: map[string]struct{}{},
	}
	for _, d := range c.Descendants(node) {
		r.subtree[d] = struct{}{}
	}
	parents, _ := g.Parents(node)
	for _, p := range parents {
		children, _ := g.Children(p)
		for _, sib := range children {
			if sib == node {
				continue
			}
			r.siblings[sib] = struct{}{}
			r.sibSubtrees[sib] = struct{}{}
			for _, d := range c.Descendants(sib) {
				r.sibSubtrees[d] = struct{}{}
			}
		}
	}

	return r
}

// classify returns the role of a row carrying labels.
func (r memberRule) classify(labels []string) membership {
	self := false
	for _, l := range labels {
		if l == r.node {
			self = true

			break
		}
	}
	inSubtree := intersects(labels, r.subtree)

	switch r.strategy {
	case Exclusive:
		if self {
			return positive
		}

		return negative
	case LessExclusive:
		if self {
			return positive
		}
		if !inSubtree {
			return negative
		}
	case LessInclusive:
		if inSubtree {
			return positive
		}

		return negative
	case Inclusive:
		if inSubtree {
			return positive
		}
		if !r.holdsAncestor(labels) {
			return negative
		}
	case Siblings:
		if inSubtree {
			return positive
		}
		if intersects(labels, r.sibSubtrees) {
			return negative
		}
	case ExclusiveSiblings:
		if self {
			return positive
		}
		if intersects(labels, r.siblings) {
			return negative
		}
	}

	return excluded
}

// holdsAncestor reports whether one of labels is an ancestor of the node.
func (r memberRule) holdsAncestor(labels []string) bool {
	for _, l := range labels {
		if r.closure.IsAncestor(r.node, l) {
			return true
		}
	}

	return false
}

func setOf(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}

	return m
}

func intersects(labels []string, set map[string]struct{}) bool {
	for _, l := range labels {
		if _, ok := set[l]; ok {
			return true
		}
	}

	return false
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}

	return false
}
