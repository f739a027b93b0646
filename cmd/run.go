package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/pairlisp/environ"
	"github.com/luthersystems/pairlisp/lisp"
	"github.com/luthersystems/pairlisp/parser"
	"github.com/luthersystems/pairlisp/parser/lexer"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
	runParse      bool
	runLoad       []string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE ...",
	Short: "Run lisp code",
	Long: `Run lisp code provided supplied via the command line or a file.  All
sources are evaluated in order in a single environment.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := runReadSources(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if runParse {
			for i := range sources {
				forms, err := parser.ParseProgram(lexer.Tokenize(sources[i].text))
				if err != nil {
					return sourceError(sources[i].name, err)
				}
				for _, form := range forms {
					fmt.Fprintln(out, form)
				}
			}
			return nil
		}

		ev := newEvaluator()
		env := environ.New()
		for _, path := range runLoad {
			if err := ev.Load(path, env); err != nil {
				return sourceError("", err)
			}
		}
		for i := range sources {
			v, err := ev.EvalText(sources[i].text, env)
			if err != nil {
				return sourceError(sources[i].name, err)
			}
			if runPrint {
				fmt.Fprintln(out, v)
			}
		}
		return nil
	},
}

type runSource struct {
	name string
	text string
}

func runReadSources(args []string) ([]runSource, error) {
	sources := make([]runSource, len(args))
	if runExpression {
		for i := range args {
			sources[i] = runSource{name: fmt.Sprintf("expression %d", i+1), text: args[i]}
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources[i] = runSource{name: path, text: string(b)}
	}
	return sources, nil
}

// sourceError prefixes language errors with the name of the source that
// raised them and appends the call stack when one was captured.  An empty
// name adds no prefix.
func sourceError(name string, err error) error {
	var lerr *lisp.Error
	if !errors.As(err, &lerr) {
		return err
	}
	if name != "" {
		err = fmt.Errorf("%s: %w", name, err)
	}
	if lerr.Stack == nil {
		return err
	}
	var trace strings.Builder
	lerr.Stack.DebugPrint(&trace)
	return fmt.Errorf("%w\n%s", err, strings.TrimSuffix(trace.String(), "\n"))
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().BoolVar(&runParse, "parse", false,
		"Print parsed forms without evaluating them")
	runCmd.Flags().StringSliceVar(&runLoad, "load", nil,
		"Load definitions from a file before running (repeatable)")
}
