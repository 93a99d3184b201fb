// SPDX-License-Identifier: MIT

package hiclass

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/dfs"
	"github.com/katalvlaran/hiclass/progress"
	"github.com/katalvlaran/hiclass/samples"
)

// featureBuilder fills every node's feature cache, children before parents.
type featureBuilder struct {
	graph    *core.Graph
	X        samples.Set
	labels   [][]string       // labels per training row
	byLabel  map[string][]int // label → ascending rows carrying it
	selector FeatureSelector
	logger   *zap.Logger
	progress progress.Handle

	// up holds the rows a node hands to its parents: its cache plus the
	// rows labeled with the node itself.
	up map[string][]int
}

func newFeatureBuilder(g *core.Graph, X samples.Set, labels [][]string, sel FeatureSelector, l *zap.Logger) *featureBuilder {
	byLabel := make(map[string][]int)
	for i, ls := range labels {
		for _, lab := range ls {
			rows := byLabel[lab]
			if n := len(rows); n > 0 && rows[n-1] == i {
				continue // label repeated within one row
			}
			byLabel[lab] = append(rows, i)
		}
	}

	return &featureBuilder{
		graph:    g,
		X:        X,
		labels:   labels,
		byLabel:  byLabel,
		selector: sel,
		logger:   l,
		up:       make(map[string][]int, g.NodeCount()),
	}
}

// run walks the hierarchy from root in post-order.
func (b *featureBuilder) run(ctx context.Context, root string, sink progress.Sink) error {
	b.progress = sink.Start(b.graph.NodeCount(), "Building features")
	_, err := dfs.Walk(b.graph, root, dfs.WithContext(ctx), dfs.WithOnExit(b.build))
	if cerr := b.progress.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "hiclass: progress")
	}

	return err
}

// build computes the cache of id from its children, which are complete.
func (b *featureBuilder) build(id string) error {
	st, err := b.graph.State(id)
	if err != nil {
		return err
	}
	if st.Features != nil {
		return nil
	}
	b.logger.Debug("building features", zap.String("node", id))
	b.progress.Update(1)

	// 1) Rows: own labels at a leaf, union of children otherwise
	var rows []int
	children, _ := b.graph.Children(id)
	if len(children) == 0 {
		rows = b.byLabel[id]
	} else {
		lists := make([][]int, 0, len(children))
		for _, c := range children {
			lists = append(lists, b.up[c])
		}
		rows = unionRows(lists...)
	}

	// 2) Feature rows, through the selection hook
	X := b.X.Subset(rows)
	if b.selector != nil {
		sel, err := b.selector(id, X, b.labelsOf(rows))
		if err != nil {
			return errors.Wrapf(err, "hiclass: feature selection at %q", id)
		}
		if sel == nil || sel.Len() != len(rows) {
			return errors.Wrapf(ErrShapeMismatch, "hiclass: feature selection at %q changed the row count", id)
		}
		X = sel
	}
	st.Features = &core.FeatureCache{Rows: rows, X: X}
	st.Metafeatures = &core.Metafeatures{NSamples: len(rows), NTargets: b.countTargets(rows)}

	// 3) Rows tagged with this intermediate node travel upward only
	if len(children) > 0 {
		b.up[id] = unionRows(rows, b.byLabel[id])
	} else {
		b.up[id] = rows
	}

	return nil
}

func (b *featureBuilder) labelsOf(rows []int) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = b.labels[r]
	}

	return out
}

func (b *featureBuilder) countTargets(rows []int) int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for _, l := range b.labels[r] {
			seen[l] = struct{}{}
		}
	}

	return len(seen)
}

// unionRows merges ascending row lists into one ascending list without duplicates.
func unionRows(lists ...[]int) []int {
	var out []int
	for _, l := range lists {
		out = append(out, l...)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Ints(out)
	w := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[w-1] {
			out[w] = out[i]
			w++
		}
	}

	return out[:w]
}
