// SPDX-License-Identifier: MIT

package dfs

import (
	"sort"
	"sync"

	"github.com/katalvlaran/hiclass/core"
)

// Closure memoizes descendant and ancestor sets of an acyclic hierarchy.
// A node is never part of its own sets. Safe for concurrent use.
type Closure struct {
	graph *core.Graph

	mu    sync.Mutex
	desc  map[string]map[string]struct{}
	anc   map[string]map[string]struct{}
	order map[string]int // insertion index, used to keep outputs deterministic
}

// NewClosure prepares a closure over g. Sets are computed lazily.
// g must be acyclic; see DetectCycle.
func NewClosure(g *core.Graph) *Closure {
	nodes := g.Nodes()
	order := make(map[string]int, len(nodes))
	for i, id := range nodes {
		order[id] = i
	}

	return &Closure{
		graph: g,
		desc:  make(map[string]map[string]struct{}),
		anc:   make(map[string]map[string]struct{}),
		order: order,
	}
}

// Descendants returns every node reachable from id, in insertion order.
func (c *Closure) Descendants(id string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sorted(c.reach(id, c.desc, c.graph.Children))
}

// Ancestors returns every node from which id is reachable, in insertion order.
func (c *Closure) Ancestors(id string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sorted(c.reach(id, c.anc, c.graph.Parents))
}

// IsDescendant reports whether d is a strict descendant of id.
func (c *Closure) IsDescendant(id, d string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.reach(id, c.desc, c.graph.Children)[d]

	return ok
}

// IsAncestor reports whether a is a strict ancestor of id.
func (c *Closure) IsAncestor(id, a string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.reach(id, c.anc, c.graph.Parents)[a]

	return ok
}

// reach computes the memoized set of id along next. Caller holds mu.
func (c *Closure) reach(
	id string,
	memo map[string]map[string]struct{},
	next func(string) ([]string, error),
) map[string]struct{} {
	if set, ok := memo[id]; ok {
		return set
	}
	set := make(map[string]struct{})
	nbs, _ := next(id)
	for _, n := range nbs {
		set[n] = struct{}{}
		for m := range c.reach(n, memo, next) {
			set[m] = struct{}{}
		}
	}
	memo[id] = set

	return set
}

func (c *Closure) sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return c.order[out[i]] < c.order[out[j]] })

	return out
}
