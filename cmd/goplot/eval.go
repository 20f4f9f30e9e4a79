package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goplot/goplot/pkg/expr/evaluator"
	"github.com/goplot/goplot/pkg/expr/parser"
)

// newEvalCmd creates the "eval" subcommand.
func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression and print the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}

	cmd.Flags().StringArray("var", nil, "Bind a variable (repeatable, e.g. --var x=2.5)")
	cmd.Flags().StringArray("define", nil, "Define a function (repeatable, e.g. --define 'f(t)=t**2')")
	cmd.Flags().Bool("complex", false, "Evaluate in the complex domain")

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	ctx, err := buildContext(cmd)
	if err != nil {
		return err
	}

	root, err := parser.ParseExpr(args[0])
	if err != nil {
		return exitError(exitSyntax, "%v", err)
	}

	useComplex, _ := cmd.Flags().GetBool("complex")
	if useComplex {
		result, err := evaluator.NewComplex(ctx).Evaluate(root)
		if err != nil {
			return exitError(exitEval, "%v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
		return nil
	}

	result, err := evaluator.New(ctx).Evaluate(root)
	if err != nil {
		return exitError(exitEval, "%v", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(result, 'g', -1, 64))
	return nil
}

// buildContext creates an evaluation context from the --var and --define
// flags shared by eval and sample.
func buildContext(cmd *cobra.Command) (*evaluator.Context, error) {
	ctx := evaluator.NewContext()

	bindings, _ := cmd.Flags().GetStringArray("var")
	for _, binding := range bindings {
		name, text, ok := strings.Cut(binding, "=")
		if !ok {
			return nil, exitError(exitBadInput, "invalid --var %q: expected name=value", binding)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, exitError(exitBadInput, "invalid --var %q: %v", binding, err)
		}
		ctx.SetVariable(strings.TrimSpace(name), value)
	}

	defs, _ := cmd.Flags().GetStringArray("define")
	for _, def := range defs {
		name, params, body, err := splitDefinition(def)
		if err != nil {
			return nil, err
		}
		if err := ctx.DefineFunction(name, params, body); err != nil {
			return nil, exitError(exitSyntax, "invalid --define %q: %v", def, err)
		}
	}

	return ctx, nil
}

// splitDefinition parses the name(params)=body definition form.
func splitDefinition(def string) (name string, params []string, body string, err error) {
	head, body, ok := strings.Cut(def, "=")
	if !ok || strings.TrimSpace(body) == "" {
		return "", nil, "", exitError(exitBadInput, "invalid --define %q: expected name(params)=body", def)
	}
	head = strings.TrimSpace(head)
	open := strings.IndexByte(head, '(')
	if open <= 0 || !strings.HasSuffix(head, ")") {
		return "", nil, "", exitError(exitBadInput, "invalid --define %q: expected name(params)=body", def)
	}
	name = strings.TrimSpace(head[:open])
	list := head[open+1 : len(head)-1]
	if strings.TrimSpace(list) != "" {
		for _, param := range strings.Split(list, ",") {
			params = append(params, strings.TrimSpace(param))
		}
	}
	return name, params, strings.TrimSpace(body), nil
}
