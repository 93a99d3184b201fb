// SPDX-License-Identifier: MIT

package dfs

import (
	"context"

	"github.com/katalvlaran/hiclass/core"
)

// topoSorter encapsulates state for a topological sort traversal.
type topoSorter struct {
	graph *core.Graph
	ctx   context.Context
	state map[string]int
	order []string
}

// TopologicalSort returns all nodes of g ordered so that every parent
// precedes each of its children. The order is deterministic for a given
// insertion sequence.
// Returns ErrCycleDetected if g has a directed cycle.
func TopologicalSort(ctx context.Context, g *core.Graph) ([]string, error) {
	// 1. Validate input
	if g == nil {
		return nil, ErrGraphNil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// 2. Initialize sorter state
	nodes := g.Nodes()
	s := &topoSorter{
		graph: g,
		ctx:   ctx,
		state: make(map[string]int, len(nodes)),
		order: make([]string, 0, len(nodes)),
	}

	// 3. Visit every White node; roots come first in insertion order
	for _, v := range nodes {
		if s.state[v] == White {
			if err := s.visit(v); err != nil {
				return nil, err
			}
		}
	}

	// 4. Reverse post-order
	for i, j := 0, len(s.order)-1; i < j; i, j = i+1, j-1 {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	}

	return s.order, nil
}

func (s *topoSorter) visit(id string) error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}

	s.state[id] = Gray
	children, _ := s.graph.Children(id)
	// children pushed in reverse so that the first child ends up first after the final reversal
	for i := len(children) - 1; i >= 0; i-- {
		switch s.state[children[i]] {
		case Gray:
			return ErrCycleDetected
		case White:
			if err := s.visit(children[i]); err != nil {
				return err
			}
		}
	}
	s.state[id] = Black
	s.order = append(s.order, id)

	return nil
}
