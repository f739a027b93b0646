package cmd

import (
	"github.com/luthersystems/pairlisp/environ"
	"github.com/luthersystems/pairlisp/repl"
	"github.com/spf13/cobra"
)

var replHistory string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive lisp session",
	Long: `Start an interactive lisp session.  Input is evaluated once its
parentheses balance.  Ctrl-C discards the current input and Ctrl-D exits.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.RunRepl(newEvaluator(), environ.New(), repl.WithHistoryFile(replHistory))
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replHistory, "history", repl.DefaultHistoryFile(),
		"File used to persist input history (empty to disable)")
}
