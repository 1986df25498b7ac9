package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version is injected by the release build via -ldflags; this is the
	// placeholder for local builds.
	Version = "0.1.0-dev"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "flowc",
	Short:   "Symbolic evaluator and task splitter for a PHY dataflow language",
	Version: Version,
	Long: `flowc exercises the core of a wireless-PHY dataflow compiler: the
symbolic expression evaluator/partial evaluator and the task-graph splitter.

The surface syntax, type checker, and C code generator are external
collaborators not implemented here; flowc instead consumes already-typed
AST fixtures encoded as JSON (see internal/astjson).`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML run-configuration file (default: built-in bounds)")
}
