// SPDX-License-Identifier: MIT

package core

// AddNode inserts a node if missing (idempotent).
// Returns ErrEmptyNodeID if id is empty.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureNode(id)

	return nil
}

// AddEdge links parent → child, creating missing endpoints.
// Repeated edges are a no-op; self-loops return ErrSelfLoop.
// Complexity: O(d) where d is the parent's out-degree.
func (g *Graph) AddEdge(parent, child string) error {
	// 1) Input validation
	if parent == "" || child == "" {
		return ErrEmptyNodeID
	}
	if parent == child {
		return ErrSelfLoop
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2) Ensure endpoints exist, parent first so it precedes the child in Nodes()
	p := g.ensureNode(parent)
	c := g.ensureNode(child)

	// 3) Skip duplicates
	for _, id := range p.children {
		if id == child {
			return nil
		}
	}

	// 4) Record both directions
	p.children = append(p.children, child)
	c.parents = append(c.parents, parent)
	g.edges++

	return nil
}

// HasNode reports whether id is part of the hierarchy.
func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]

	return ok
}

// HasEdge reports whether parent → child exists.
func (g *Graph) HasEdge(parent, child string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.nodes[parent]
	if !ok {
		return false
	}
	for _, id := range p.children {
		if id == child {
			return true
		}
	}

	return false
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]string(nil), g.order...)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.order)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// Children returns the successors of id in edge insertion order.
func (g *Graph) Children(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, ErrNodeNotFound
	}

	return append([]string(nil), n.children...), nil
}

// Parents returns the predecessors of id in edge insertion order.
func (g *Graph) Parents(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, ErrNodeNotFound
	}

	return append([]string(nil), n.parents...), nil
}

// InDegree returns the number of parents of id.
func (g *Graph) InDegree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return 0, ErrNodeNotFound
	}

	return len(n.parents), nil
}

// OutDegree returns the number of children of id.
func (g *Graph) OutDegree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return 0, ErrNodeNotFound
	}

	return len(n.children), nil
}

// IsLeaf reports whether id exists and has no children.
func (g *Graph) IsLeaf(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]

	return ok && len(n.children) == 0
}

// Roots returns the nodes of in-degree zero, in insertion order.
func (g *Graph) Roots() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for _, id := range g.order {
		if len(g.nodes[id].parents) == 0 {
			out = append(out, id)
		}
	}

	return out
}

// IsTree reports whether the graph is a rooted tree: exactly one node of
// in-degree zero, every other node with exactly one parent, and V-1 edges.
// Together with connectivity from the root this rules out cycles.
func (g *Graph) IsTree() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if len(g.order) == 0 || g.edges != len(g.order)-1 {
		return false
	}
	roots := 0
	for _, id := range g.order {
		switch len(g.nodes[id].parents) {
		case 0:
			roots++
		case 1:
		default:
			return false
		}
	}

	return roots == 1
}

// State returns the attribute bag of id.
func (g *Graph) State(id string) (*NodeState, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, ErrNodeNotFound
	}

	return n.state, nil
}

// Clone copies the topology into a new Graph with empty node states.
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := &Graph{
		order: append([]string(nil), g.order...),
		nodes: make(map[string]*node, len(g.nodes)),
		edges: g.edges,
	}
	for id, n := range g.nodes {
		out.nodes[id] = &node{
			state:    &NodeState{ID: id},
			children: append([]string(nil), n.children...),
			parents:  append([]string(nil), n.parents...),
		}
	}

	return out
}

// ensureNode returns the record of id, creating it if needed. Caller holds mu.
func (g *Graph) ensureNode(id string) *node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &node{state: &NodeState{ID: id}}
	g.nodes[id] = n
	g.order = append(g.order, id)

	return n
}
