// Package repl provides the interactive expression shell with line editing,
// history, and tab completion.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/goplot/goplot/pkg/expr/evaluator"
)

const PROMPT = "goplot> "

// defineRE matches the function definition form: name(param, ...) = body.
// The body must not start with '=' so that f(x) == y stays an expression.
var defineRE = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)\s*\(\s*([a-zA-Z_][a-zA-Z0-9_]*(?:\s*,\s*[a-zA-Z_][a-zA-Z0-9_]*)*)?\s*\)\s*=\s*([^=].*)$`)

// Start runs the REPL until exit or Ctrl+D. All output goes to out.
func Start(out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	ctx := evaluator.NewContext()

	line.SetCompleter(func(input string) []string {
		return completions(ctx, input)
	})

	historyFile := filepath.Join(os.TempDir(), ".goplot_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "goplot %s\n", version)
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit, ':help' for commands")
	fmt.Fprintln(out, "")

	for {
		input, err := line.Prompt(PROMPT)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			return
		}

		line.AppendHistory(trimmed)

		if strings.HasPrefix(trimmed, ":") {
			handleCommand(trimmed, ctx, out)
			continue
		}

		// Function definitions are a REPL form, not an expression.
		if m := defineRE.FindStringSubmatch(trimmed); m != nil {
			name, params, body := m[1], splitParams(m[2]), m[3]
			if err := ctx.DefineFunction(name, params, body); err != nil {
				fmt.Fprintln(out, err.Error())
				continue
			}
			fmt.Fprintf(out, "%s(%s) defined\n", name, strings.Join(params, ", "))
			continue
		}

		value, err := evaluator.EvalString(trimmed, ctx)
		if err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		fmt.Fprintln(out, formatValue(value))
	}
}

func handleCommand(cmd string, ctx *evaluator.Context, out io.Writer) {
	switch cmd {
	case ":help", ":h", ":?":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  :help, :h, :?   Show this help")
		fmt.Fprintln(out, "  :vars           Show variables")
		fmt.Fprintln(out, "  :funcs          Show function names")
		fmt.Fprintln(out, "  :clear          Reset variables to the built-in constants")
		fmt.Fprintln(out, "  exit, quit      Exit")
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Define functions with name(args) = body, e.g. f(t) = t**2 + 1")

	case ":vars":
		names := ctx.VariableNames()
		if len(names) == 0 {
			fmt.Fprintln(out, "(no variables)")
			return
		}
		sort.Strings(names)
		for _, name := range names {
			value, _ := ctx.GetVariable(name)
			fmt.Fprintf(out, "  %s = %s\n", name, formatValue(value))
		}

	case ":funcs":
		names := ctx.FunctionNames()
		names = append(names, ctx.UserFunctionNames()...)
		sort.Strings(names)
		fmt.Fprintln(out, strings.Join(names, " "))

	case ":clear":
		ctx.ClearVariables()
		fmt.Fprintln(out, "Variables cleared")

	default:
		fmt.Fprintf(out, "Unknown command: %s (type :help for commands)\n", cmd)
	}
}

// completions suggests variable and function names matching the word being
// typed.
func completions(ctx *evaluator.Context, input string) []string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}
	if input[len(input)-1] == ' ' || input[len(input)-1] == '\t' {
		return nil
	}

	start := len(input)
	for start > 0 && isWordByte(input[start-1]) {
		start--
	}
	prefix := input[start:]
	if prefix == "" {
		return nil
	}

	candidates := ctx.FunctionNames()
	candidates = append(candidates, ctx.UserFunctionNames()...)
	candidates = append(candidates, ctx.VariableNames()...)
	sort.Strings(candidates)

	var matches []string
	for _, word := range candidates {
		if strings.HasPrefix(word, prefix) {
			matches = append(matches, input[:start]+word)
		}
	}
	return matches
}

func isWordByte(ch byte) bool {
	return ch == '_' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}

func splitParams(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	params := make([]string, len(parts))
	for i, part := range parts {
		params[i] = strings.TrimSpace(part)
	}
	return params
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
