package lisp

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	err := Errorf(UndefinedSymbol, "symbol `%s` not defined", "x")
	assert.Equal(t, "undefined-symbol: symbol `x` not defined", err.Error())
	c, ok := GetCondition(err)
	assert.True(t, ok)
	assert.Equal(t, UndefinedSymbol, c)

	wrapped := fmt.Errorf("prog.lisp: %w", err)
	assert.True(t, IsCondition(wrapped, UndefinedSymbol))
	assert.False(t, IsCondition(wrapped, TypeMismatch))

	_, ok = GetCondition(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsCondition(nil, SyntaxError))
}

func TestErrorStack(t *testing.T) {
	s := &CallStack{}
	s.Push("sum", 1)
	s.Push("zero", 1)
	err := Errorf(ArityMismatch, "too few arguments")
	err.Stack = s.Copy()
	assert.Equal(t, "arity-mismatch: too few arguments (in zero)", err.Error())
	s.Pop()
	assert.Equal(t, 2, err.Stack.Height(), "copy is independent of the live stack")
	assert.Equal(t, 1, s.Height())

	var buf bytes.Buffer
	_, werr := err.Stack.DebugPrint(&buf)
	assert.NoError(t, werr)
	assert.Equal(t, "Stack Trace [2 frames -- entrypoint last]:\n"+
		"  height 1: zero [1 args]\n"+
		"  height 0: sum [1 args]\n", buf.String())
}

func TestConditions(t *testing.T) {
	for c := SyntaxError; c < numConditions; c++ {
		assert.NotEqual(t, "unknown-condition", c.String())
		assert.Equal(t, c != SyntaxError, c.Semantic(), c.String())
	}
	assert.Equal(t, "unknown-condition", Condition(0).String())
}

func TestCallStack_empty(t *testing.T) {
	var s *CallStack
	assert.Nil(t, s.Top())
	assert.Equal(t, 0, s.Height())
	assert.Panics(t, func() { (&CallStack{}).Pop() })
}
