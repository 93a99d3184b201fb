// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hiclass/bfs"
	"github.com/katalvlaran/hiclass/core"
	"github.com/katalvlaran/hiclass/dfs"
	"github.com/katalvlaran/hiclass/hiclass"
)

type validateCmdConfig struct {
	configInput string
}

func validateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &validateCmdConfig{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the hierarchy and options of a YAML config",
		Long:  `Parse a YAML config, check that its hierarchy is a rooted DAG and its options are consistent, and print hierarchy statistics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.configInput == "" {
				return fmt.Errorf("required config flag was not set")
			}
			logger, err := rootConfig.logger()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runValidate(config.configInput, logger, os.Stdout)
		},
	}
	cmd.Flags().StringVarP(&(config.configInput), "config", "c", "", "path to a YAML file with classifier options and hierarchy (required)")
	return cmd
}

// hierarchyStats summarises a validated hierarchy.
type hierarchyStats struct {
	Nodes  int
	Edges  int
	Leaves int
	Depth  int
	Tree   bool
	Order  []string // parents before children
}

func runValidate(path string, logger *zap.Logger, out io.Writer) error {
	cfg, err := hiclass.LoadConfig(path)
	if err != nil {
		return err
	}
	if _, err = cfg.Options(); err != nil {
		return err
	}
	g, err := cfg.Graph()
	if err != nil {
		return err
	}
	if g == nil {
		logger.Info("no hierarchy in config, a flat one is built from the labels at fit time")
		fmt.Fprintln(out, "hierarchy: flat")
		return nil
	}

	st, err := statsOf(g, cfg.RootID())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "root: %s\nnodes: %d\nedges: %d\nleaves: %d\ndepth: %d\ntree: %t\norder: %s\n",
		cfg.RootID(), st.Nodes, st.Edges, st.Leaves, st.Depth, st.Tree, strings.Join(st.Order, " "))
	return nil
}

// statsOf validates g and measures it. Depth is the longest shortest path
// from root, in edges.
func statsOf(g *core.Graph, root string) (hierarchyStats, error) {
	if err := hiclass.ValidateHierarchy(g, root); err != nil {
		return hierarchyStats{}, err
	}
	st := hierarchyStats{Nodes: g.NodeCount(), Edges: g.EdgeCount(), Tree: g.IsTree()}
	_, err := bfs.BFS(g, root, bfs.WithOnVisit(func(id string, depth int) error {
		if depth > st.Depth {
			st.Depth = depth
		}
		if g.IsLeaf(id) {
			st.Leaves++
		}
		return nil
	}))
	if err != nil {
		return hierarchyStats{}, err
	}
	if st.Order, err = dfs.TopologicalSort(context.Background(), g); err != nil {
		return hierarchyStats{}, err
	}
	return st, nil
}
