package main

import (
	"github.com/spf13/cobra"

	"github.com/goplot/goplot/pkg/expr/repl"
)

// newReplCmd creates the "repl" subcommand.
func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive expression shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl.Start(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
