// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"

	"github.com/katalvlaran/hiclass/core"
)

// dfsWalker encapsulates state during a traversal.
type dfsWalker struct {
	graph *core.Graph // underlying hierarchy
	opts  Options     // traversal options
	res   *Result     // result collector
}

// Walk performs depth-first search on g from startID along parent → child
// edges. Children are explored in edge insertion order.
// On hook error or cancellation the partial Result is returned with a nil Order.
func Walk(g *core.Graph, startID string, opts ...Option) (*Result, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 3. Verify start node
	if !g.HasNode(startID) {
		return nil, ErrStartVertexNotFound
	}

	// 4. Initialize result with capacity hint
	n := g.NodeCount()
	res := &Result{
		Order:   make([]string, 0, n),
		Depth:   make(map[string]int, n),
		Parent:  make(map[string]string, n),
		Visited: make(map[string]bool, n),
	}

	// 5. Traverse
	w := &dfsWalker{graph: g, opts: o, res: res}
	if err := w.traverse(startID, 0); err != nil {
		res.Order = nil

		return res, err
	}

	return res, nil
}

// traverse visits id and recurses into its unvisited children.
func (w *dfsWalker) traverse(id string, depth int) error {
	// 1. Cancellation check
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	// 2. Mark visited and record depth
	w.res.Visited[id] = true
	w.res.Depth[id] = depth

	// 3. Pre-order hook
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			return fmt.Errorf("dfs: OnVisit hook for %q: %w", id, err)
		}
	}

	// 4. Fetch children once
	children, err := w.graph.Children(id)
	if err != nil {
		return fmt.Errorf("dfs: Children(%q): %w", id, err)
	}

	// 5. Recurse on unvisited
	for _, c := range children {
		if w.res.Visited[c] {
			continue
		}
		w.res.Parent[c] = id
		if err = w.traverse(c, depth+1); err != nil {
			return err
		}
	}

	// 6. Post-order hook
	if w.opts.OnExit != nil {
		if err = w.opts.OnExit(id); err != nil {
			return fmt.Errorf("dfs: OnExit hook for %q: %w", id, err)
		}
	}

	// 7. Record finish order
	w.res.Order = append(w.res.Order, id)

	return nil
}
