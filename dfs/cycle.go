// SPDX-License-Identifier: MIT

package dfs

import (
	"github.com/katalvlaran/hiclass/core"
)

// DetectCycle reports the first directed cycle found in g, scanning start
// nodes in insertion order. The returned cycle lists its nodes in edge order
// and closes back on its first element, e.g. [a b c a].
// A nil graph is treated as cycle-free.
func DetectCycle(g *core.Graph) (bool, []string) {
	if g == nil {
		return false, nil
	}

	nodes := g.Nodes()
	state := make(map[string]int, len(nodes))
	path := make([]string, 0, len(nodes))

	for _, v := range nodes {
		if state[v] != White {
			continue
		}
		if cycle := visitCycle(g, v, state, &path); cycle != nil {
			return true, cycle
		}
	}

	return false, nil
}

// visitCycle colours id Gray, explores its children and returns the cycle
// closed by the first Gray → Gray back-edge it meets.
func visitCycle(g *core.Graph, id string, state map[string]int, path *[]string) []string {
	// 1) Mark in-progress and push onto the path
	state[id] = Gray
	*path = append(*path, id)

	// 2) Explore children; nodes of g always resolve so the error is ignored
	children, _ := g.Children(id)
	for _, c := range children {
		switch state[c] {
		case White:
			if cycle := visitCycle(g, c, state, path); cycle != nil {
				return cycle
			}
		case Gray:
			// back-edge: slice the path from c's position
			for i := len(*path) - 1; i >= 0; i-- {
				if (*path)[i] == c {
					cycle := append([]string(nil), (*path)[i:]...)

					return append(cycle, c)
				}
			}
		}
	}

	// 3) Pop and mark complete
	*path = (*path)[:len(*path)-1]
	state[id] = Black

	return nil
}
