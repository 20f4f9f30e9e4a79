package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "goplot",
	Short: "goplot expression engine CLI",
	Long:  "goplot — evaluate, sample, and explore numeric expressions.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("goplot version %s\n", version))

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newSampleCmd())
	rootCmd.AddCommand(newReplCmd())
}
