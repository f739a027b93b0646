package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chzyer/readline"
	"github.com/luthersystems/pairlisp/environ"
	"github.com/luthersystems/pairlisp/eval"
	"github.com/luthersystems/pairlisp/repl"
	"github.com/spf13/cobra"
)

var (
	rootTrace    bool
	rootMaxDepth int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pairlisp",
	Short: "A minimal pair based lisp interpreter",
	Long: `A minimal lisp interpreter.  When standard input is not a terminal the
whole input is evaluated and the value of its last form is printed.
Otherwise an interactive repl is started.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ev := newEvaluator()
		env := environ.New()
		if stdinIsTerminal() {
			return repl.RunRepl(ev, env)
		}
		return evalStream(cmd.OutOrStdout(), cmd.InOrStdin(), ev, env)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Log evaluation of special forms to stderr")
	rootCmd.PersistentFlags().IntVar(&rootMaxDepth, "max-depth", eval.DefaultMaxDepth,
		"Maximum evaluation depth (0 for no limit)")
}

var stdinIsTerminal = func() bool {
	return readline.IsTerminal(int(os.Stdin.Fd()))
}

func newEvaluator() *eval.Evaluator {
	configs := []eval.Config{eval.WithMaxDepth(rootMaxDepth)}
	if rootTrace {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		configs = append(configs, eval.WithLogger(slog.New(handler)))
	}
	return eval.New(configs...)
}

func evalStream(w io.Writer, r io.Reader, ev *eval.Evaluator, env *environ.Environ) error {
	source, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	v, err := ev.EvalText(string(source), env)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, v)
	return nil
}
