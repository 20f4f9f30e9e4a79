package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goplot/goplot/pkg/expr/sampler"
)

// newSampleCmd creates the "sample" subcommand.
func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample <expression>",
		Short: "Sample an expression over a range and print x/y pairs",
		Long: "Sample evaluates the expression at evenly spaced points and prints " +
			"tab-separated x/y pairs. Points that cannot be evaluated print NaN.",
		Args: cobra.ExactArgs(1),
		RunE: runSample,
	}

	cmd.Flags().StringArray("var", nil, "Bind a variable (repeatable, e.g. --var a=2)")
	cmd.Flags().StringArray("define", nil, "Define a function (repeatable, e.g. --define 'f(t)=t**2')")
	cmd.Flags().String("over", "x", "Name of the sweep variable")
	cmd.Flags().Float64("from", -10, "Start of the sampling range")
	cmd.Flags().Float64("to", 10, "End of the sampling range")
	cmd.Flags().Int("points", 101, "Number of sample points (minimum 2)")

	return cmd
}

func runSample(cmd *cobra.Command, args []string) error {
	ctx, err := buildContext(cmd)
	if err != nil {
		return err
	}

	varName, _ := cmd.Flags().GetString("over")
	from, _ := cmd.Flags().GetFloat64("from")
	to, _ := cmd.Flags().GetFloat64("to")
	points, _ := cmd.Flags().GetInt("points")
	if points < 2 {
		return exitError(exitBadInput, "--points must be at least 2, got %d", points)
	}

	s, err := sampler.New(args[0], varName, ctx)
	if err != nil {
		return exitError(exitSyntax, "%v", err)
	}

	out := cmd.OutOrStdout()
	for _, p := range s.SampleRange(from, to, points) {
		fmt.Fprintf(out, "%s\t%s\n",
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64))
	}
	return nil
}
