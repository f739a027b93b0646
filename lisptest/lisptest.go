// Package lisptest runs sequences of lisp expressions and checks their
// printed results.
package lisptest

import (
	"fmt"
	"testing"

	"github.com/luthersystems/pairlisp/environ"
	"github.com/luthersystems/pairlisp/eval"
	"github.com/luthersystems/pairlisp/parser"
)

// Runner is a test runner.
type Runner struct {
	// Prelude is source evaluated before each test sequence.  Its
	// definitions are merged into the root environment of every sequence.
	Prelude string
	// Configs configure the Evaluator of each test sequence.
	Configs []eval.Config
}

// NewEnv returns a root environment holding the definitions made by
// r.Prelude.
func (r *Runner) NewEnv() (*environ.Environ, error) {
	env := environ.New()
	if r.Prelude == "" {
		return env, nil
	}
	scratch := env.Arena().NewRoot()
	defer scratch.Release()
	_, err := eval.New(r.Configs...).EvalText(r.Prelude, scratch)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate prelude: %w", err)
	}
	env.MergeFrom(scratch)
	return env, nil
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially in one environment.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the error message
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated environments.
func RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	(&Runner{}).RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on isolated environments
// created by r.NewEnv.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	for i, test := range tests {
		env, err := r.NewEnv()
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		ev := eval.New(r.Configs...)
		for j, expr := range test.TestSequence {
			v, err := parser.ParseString(expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			var result string
			v, err = ev.Eval(v, env)
			if err != nil {
				result = err.Error()
			} else {
				result = v.String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
		if n := env.Arena().Len(); n != 1 {
			t.Errorf("test %d %q: %d environment frames outlived their calls", i, test.Name, n-1)
		}
		if h := ev.Stack.Height(); h != 0 {
			t.Errorf("test %d %q: call stack not empty: height %d", i, test.Name, h)
		}
	}
}
