package lisp

import (
	"errors"
	"fmt"
	"strings"
)

// Condition classifies an Error.
type Condition uint8

const (
	// SyntaxError is a structural failure found by the parser: a form not
	// starting with an open paren, or running out of tokens before its close
	// paren.
	SyntaxError Condition = iota + 1
	// UndefinedSymbol is a reference to a symbol bound nowhere in the
	// environment chain.
	UndefinedSymbol
	// ArityMismatch is a call with fewer arguments than parameters.
	ArityMismatch
	// NotCallable is an apply target bound to a value that is not shaped
	// like (lambda (param ...) body).
	NotCallable
	// MalformedForm is a special form with a non-symbol in a name position.
	MalformedForm
	// TypeMismatch is a primitive applied to an operand of the wrong type.
	TypeMismatch
	// DivisionByZero is an integer division with a zero divisor.
	DivisionByZero
	// IntegerOverflow is arithmetic leaving the signed 32-bit range.
	IntegerOverflow
	// StackOverflow is evaluation exceeding the configured maximum depth.
	StackOverflow

	numConditions
)

var conditionStrings = [numConditions]string{
	SyntaxError:     "syntax-error",
	UndefinedSymbol: "undefined-symbol",
	ArityMismatch:   "arity-mismatch",
	NotCallable:     "not-callable",
	MalformedForm:   "malformed-form",
	TypeMismatch:    "type-mismatch",
	DivisionByZero:  "division-by-zero",
	IntegerOverflow: "integer-overflow",
	StackOverflow:   "stack-overflow",
}

func (c Condition) String() string {
	if c == 0 || c >= numConditions {
		return "unknown-condition"
	}
	return conditionStrings[c]
}

// Semantic returns true for conditions raised while evaluating a well formed
// tree, as opposed to structural conditions raised while reading source.
func (c Condition) Semantic() bool {
	return c != SyntaxError
}

// Error is the error type returned for all language level failures.
type Error struct {
	Condition Condition
	Msg       string
	// Stack is a copy of the evaluator call stack when the error was raised,
	// or nil if the error was raised outside of any function call.
	Stack *CallStack
}

// Errorf returns an *Error with the given condition and a formatted message.
func Errorf(c Condition, format string, args ...interface{}) *Error {
	return &Error{
		Condition: c,
		Msg:       fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Condition.String())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if top := e.Stack.Top(); top != nil {
		b.WriteString(" (in ")
		b.WriteString(top.Name)
		b.WriteString(")")
	}
	return b.String()
}

// GetCondition returns the condition of the first *Error in err's chain.
// GetCondition returns false if err does not wrap an *Error.
func GetCondition(err error) (Condition, bool) {
	var lerr *Error
	if !errors.As(err, &lerr) {
		return 0, false
	}
	return lerr.Condition, true
}

// IsCondition returns true if err wraps an *Error with condition c.
func IsCondition(err error, c Condition) bool {
	got, ok := GetCondition(err)
	return ok && got == c
}
