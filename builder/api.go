// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/hiclass/core"
)

// Constructor applies a deterministic mutation to a hierarchy rooted at root.
type Constructor func(g *core.Graph, root string, cfg config) error

// BuildHierarchy creates a graph holding root, resolves bopts and applies
// all constructors in order. Constructor errors are wrapped with
// "BuildHierarchy: %w".
func BuildHierarchy(root string, bopts []Option, cons ...Constructor) (*core.Graph, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}
	g := core.NewGraph()
	if err := g.AddNode(root); err != nil {
		return nil, fmt.Errorf("BuildHierarchy: %w", err)
	}
	cfg := newConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildHierarchy: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, root, cfg); err != nil {
			return nil, fmt.Errorf("BuildHierarchy: %w", err)
		}
	}

	return g, nil
}

// Flat attaches every label directly to the root.
func Flat(labels ...string) Constructor {
	return func(g *core.Graph, root string, _ config) error {
		for _, l := range labels {
			if err := addEdge(g, root, l); err != nil {
				return err
			}
		}

		return nil
	}
}

// Edges adds explicit parent → child pairs in the given order.
func Edges(pairs ...[2]string) Constructor {
	return func(g *core.Graph, _ string, _ config) error {
		for _, p := range pairs {
			if err := addEdge(g, p[0], p[1]); err != nil {
				return err
			}
		}

		return nil
	}
}

// Adjacency adds parent → children lists. Parents are processed in sorted
// order so that map iteration never affects the result.
func Adjacency(adj map[string][]string) Constructor {
	return func(g *core.Graph, _ string, _ config) error {
		parents := make([]string, 0, len(adj))
		for p := range adj {
			parents = append(parents, p)
		}
		sort.Strings(parents)
		for _, p := range parents {
			for _, c := range adj[p] {
				if err := addEdge(g, p, c); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// Balanced grows a full tree of the given depth below the root, each
// internal node having branching children. Child IDs are
// parent + separator + idFn(i); children of the root use idFn(i) alone.
func Balanced(depth, branching int) Constructor {
	return func(g *core.Graph, root string, cfg config) error {
		if depth < 1 || branching < 1 {
			return fmt.Errorf("Balanced(%d, %d): %w", depth, branching, ErrTooFewNodes)
		}
		level := []string{root}
		for d := 0; d < depth; d++ {
			next := make([]string, 0, len(level)*branching)
			for _, p := range level {
				for i := 0; i < branching; i++ {
					id := cfg.idFn(i)
					if p != root {
						id = p + cfg.separator + id
					}
					if err := addEdge(g, p, id); err != nil {
						return err
					}
					next = append(next, id)
				}
			}
			level = next
		}

		return nil
	}
}

func addEdge(g *core.Graph, parent, child string) error {
	if err := g.AddEdge(parent, child); err != nil {
		return fmt.Errorf("edge %q → %q: %v: %w", parent, child, err, ErrConstructFailed)
	}

	return nil
}
