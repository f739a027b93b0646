package eval

import "log/slog"

// DefaultMaxDepth is the evaluation depth allowed by an Evaluator created
// without WithMaxDepth.
const DefaultMaxDepth = 10000

// Config is a function that configures an Evaluator.
type Config func(ev *Evaluator)

// WithMaxDepth returns a Config that prevents an Evaluator from nesting
// evaluation of compound forms deeper than n.  Exceeding the limit fails with
// lisp.StackOverflow.  A value of zero or less removes the limit and leaves
// recursion bounded only by the Go runtime.
func WithMaxDepth(n int) Config {
	return func(ev *Evaluator) {
		ev.MaxDepth = n
	}
}

// WithLogger returns a Config that makes an Evaluator emit debug records for
// each special form it evaluates.
func WithLogger(logger *slog.Logger) Config {
	return func(ev *Evaluator) {
		ev.Logger = logger
	}
}
