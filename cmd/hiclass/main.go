// SPDX-License-Identifier: MIT

// Command hiclass trains hierarchical classifiers from CSV data and checks
// class hierarchies described in YAML.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hiclass",
		Short:         "hiclass is a tool to train hierarchical classifiers",
		Long:          `A tool to fit local classifiers over a class hierarchy from CSV data and predict root-to-leaf paths`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log at debug level in a human readable format")
	rootCmd.AddCommand(fitCmd(config), validateCmd(config))
	return rootCmd
}

// logger returns a development logger when verbose, a production one
// otherwise.
func (c *rootCmdConfig) logger() (*zap.Logger, error) {
	if c.verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
