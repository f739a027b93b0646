/*
Package eval reduces lisp values to their results.

A compound form is classified by its leftmost atom.  The unary primitives
car, cdr, atom, null, quote and eval take everything to the right of the
operator as their operand.  The binary primitives cons, eq, add (+), sub (-),
mul (*) and div (/) take the rest of the form's head as their left operand
and the rest of the form as their right operand.  The special forms are

	(define name expr)
	(apply name arg ...)
	(cond (test result) ...)

Any other compound form evaluates to nil.

Values bound with define are stored exactly as written and symbol lookup
returns them exactly as stored, so (define sqr (lambda (x) (* x x))) followed
by (apply sqr 3) calls the stored lambda.  A function body runs in a new frame
extending the caller's environment, not the environment it was defined in.
*/
package eval

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/luthersystems/pairlisp/environ"
	"github.com/luthersystems/pairlisp/lisp"
	"github.com/luthersystems/pairlisp/parser"
	"github.com/luthersystems/pairlisp/parser/lexer"
	"github.com/luthersystems/pairlisp/parser/token"
)

// Names of unary primitives that do not evaluate their operand first.
const (
	opQuote = "quote"
	opEval  = "eval"
)

// unaryOps are applied to their evaluated operand.  Neither table is
// modified after initialization.
var unaryOps = map[string]func(lisp.LVal) lisp.LVal{
	"car":  lisp.Car,
	"cdr":  lisp.Cdr,
	"atom": lisp.IsAtomOp,
	"null": lisp.IsNilOp,
}

var binaryOps = map[string]func(v1, v2 lisp.LVal) (lisp.LVal, error){
	"cons": total(lisp.Cons),
	"eq":   total(lisp.Eq),
	"add":  lisp.Add,
	"+":    lisp.Add,
	"sub":  lisp.Sub,
	"-":    lisp.Sub,
	"mul":  lisp.Mul,
	"*":    lisp.Mul,
	"div":  lisp.Div,
	"/":    lisp.Div,
}

func total(fn func(v1, v2 lisp.LVal) lisp.LVal) func(v1, v2 lisp.LVal) (lisp.LVal, error) {
	return func(v1, v2 lisp.LVal) (lisp.LVal, error) {
		return fn(v1, v2), nil
	}
}

// Primitives returns the names of the unary and binary primitives in
// lexical order.
func Primitives() []string {
	names := []string{opQuote, opEval}
	for name := range unaryOps {
		names = append(names, name)
	}
	for name := range binaryOps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluator holds the state of evaluation in one session.  An Evaluator is
// not safe for concurrent use.
type Evaluator struct {
	// Stack holds the functions currently being applied, entrypoint first.
	Stack *lisp.CallStack
	// MaxDepth bounds the nesting of compound form evaluation.  See
	// WithMaxDepth.
	MaxDepth int
	// Logger receives debug records for special forms when not nil.
	Logger *slog.Logger

	depth int
}

// New returns a new Evaluator configured by configs.
func New(configs ...Config) *Evaluator {
	ev := &Evaluator{
		Stack:    &lisp.CallStack{},
		MaxDepth: DefaultMaxDepth,
	}
	for _, config := range configs {
		config(ev)
	}
	return ev
}

// EvalText evaluates src in env with a default Evaluator.
func EvalText(src string, env *environ.Environ) (lisp.LVal, error) {
	return New().EvalText(src, env)
}

// EvalFile evaluates the file at path in env with a default Evaluator.
func EvalFile(path string, env *environ.Environ) (lisp.LVal, error) {
	return New().EvalFile(path, env)
}

// EvalText tokenizes and parses src and evaluates each of its top-level
// forms in env, in order.  The value of the last form is returned.  Text
// without any form is a syntax error.  Lexemes after the last form that
// cannot begin another form are ignored.
func (ev *Evaluator) EvalText(src string, env *environ.Environ) (lisp.LVal, error) {
	return ev.evalLexemes(lexer.Tokenize(src), env)
}

// EvalFile is like EvalText but reads its source from the file at path.
// Syntax errors are annotated with path.
func (ev *Evaluator) EvalFile(path string, env *environ.Environ) (lisp.LVal, error) {
	lexemes, err := lexer.TokenizeFile(path)
	if err != nil {
		return lisp.Nil(), err
	}
	v, err := ev.evalLexemes(lexemes, env)
	if lisp.IsCondition(err, lisp.SyntaxError) {
		return lisp.Nil(), fmt.Errorf("%s: %w", path, err)
	}
	return v, err
}

// Load evaluates the file at path in a scratch frame extending env and then
// copies the definitions made by the file into env.  Definitions are only
// copied if the whole file evaluates without error.
func (ev *Evaluator) Load(path string, env *environ.Environ) error {
	scratch := env.Extend()
	defer scratch.Release()
	_, err := ev.EvalFile(path, scratch)
	if err != nil {
		return err
	}
	env.MergeFrom(scratch)
	return nil
}

func (ev *Evaluator) evalLexemes(lexemes []token.Lexeme, env *environ.Environ) (lisp.LVal, error) {
	forms, err := parser.ParseForms(lexemes)
	if err != nil {
		return lisp.Nil(), err
	}
	v := lisp.Nil()
	for _, form := range forms {
		v, err = ev.Eval(form, env)
		if err != nil {
			return lisp.Nil(), err
		}
	}
	return v, nil
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Evaluation stops at the first error, which is always a *lisp.Error
// possibly wrapped with context.
func (ev *Evaluator) Eval(v lisp.LVal, env *environ.Environ) (lisp.LVal, error) {
	if lisp.IsAtom(v) {
		name, ok := lisp.GetSymbol(v)
		if !ok {
			return v, nil
		}
		val, ok := env.Get(name)
		if !ok {
			return lisp.Nil(), ev.errorf(lisp.UndefinedSymbol, "symbol `%s` not defined", name)
		}
		return val, nil
	}

	ev.depth++
	defer func() { ev.depth-- }()
	if ev.MaxDepth > 0 && ev.depth > ev.MaxDepth {
		return lisp.Nil(), ev.errorf(lisp.StackOverflow, "maximum evaluation depth exceeded: %d", ev.MaxDepth)
	}

	op := lisp.LeftMost(v)
	if name, ok := lisp.GetSymbol(op); ok {
		return ev.evalPrimitive(name, v, env)
	}
	switch {
	case lisp.IsKeyword(op, token.APPLY):
		return ev.evalApply(v, env)
	case lisp.IsKeyword(op, token.DEFINE):
		return ev.evalDefine(v, env)
	case lisp.IsKeyword(op, token.COND):
		return ev.evalCond(v, env)
	}
	return lisp.Nil(), nil
}

func (ev *Evaluator) evalPrimitive(name string, v lisp.LVal, env *environ.Environ) (lisp.LVal, error) {
	switch name {
	case opQuote:
		return lisp.Cdr(v), nil
	case opEval:
		expr, err := ev.Eval(lisp.Cdr(v), env)
		if err != nil {
			return lisp.Nil(), err
		}
		return ev.Eval(expr, env)
	}
	if fn, ok := unaryOps[name]; ok {
		x, err := ev.Eval(lisp.Cdr(v), env)
		if err != nil {
			return lisp.Nil(), err
		}
		return fn(x), nil
	}
	if fn, ok := binaryOps[name]; ok {
		lhs, err := ev.Eval(lisp.Cdr(lisp.Car(v)), env)
		if err != nil {
			return lisp.Nil(), err
		}
		rhs, err := ev.Eval(lisp.Cdr(v), env)
		if err != nil {
			return lisp.Nil(), err
		}
		result, err := fn(lhs, rhs)
		if err != nil {
			return lisp.Nil(), ev.annotate(err)
		}
		return result, nil
	}
	return lisp.Nil(), nil
}

func (ev *Evaluator) evalApply(v lisp.LVal, env *environ.Environ) (lisp.LVal, error) {
	exprs := lisp.Collect(v)
	name, ok := lisp.GetSymbol(exprs[0])
	if !ok {
		return lisp.Nil(), ev.errorf(lisp.MalformedForm, "apply: function name is not a symbol: %v", exprs[0])
	}
	fun, ok := env.Get(name)
	if !ok {
		return lisp.Nil(), ev.errorf(lisp.UndefinedSymbol, "apply: callable symbol `%s` not defined", name)
	}
	params, body, err := ev.lambda(name, fun)
	if err != nil {
		return lisp.Nil(), err
	}
	args := exprs[1:]
	if len(args) < len(params) {
		return lisp.Nil(), ev.errorf(lisp.ArityMismatch, "%s: expected %d arguments but got %d", name, len(params), len(args))
	}

	// Arguments are evaluated in the caller's environment before the callee
	// is pushed so that their errors are not attributed to the callee.
	vals := make([]lisp.LVal, len(params))
	for i := range params {
		vals[i], err = ev.Eval(args[i], env)
		if err != nil {
			return lisp.Nil(), err
		}
	}

	ev.Stack.Push(name, len(params))
	defer ev.Stack.Pop()
	frame := env.Extend()
	defer frame.Release()
	for i := range params {
		frame.Set(params[i], vals[i])
	}
	if ev.Logger != nil {
		ev.Logger.Debug("apply", "function", name, "nargs", len(params), "height", ev.Stack.Height())
	}
	return ev.Eval(body, frame)
}

// lambda destructures a value of the form (lambda (param ...) body).  An
// empty parameter list declares no parameters.
func (ev *Evaluator) lambda(name string, fun lisp.LVal) ([]string, lisp.LVal, error) {
	head, ok := lisp.GetCAR(fun)
	if !ok || !lisp.IsKeyword(lisp.Car(head), token.LAMBDA) {
		return nil, lisp.Nil(), ev.errorf(lisp.NotCallable, "%s: value is not a lambda: %v", name, fun)
	}
	formals := lisp.Cdr(head)
	if lisp.IsNil(formals) {
		return nil, lisp.Cdr(fun), nil
	}
	atoms := lisp.Flatten(formals)
	params := make([]string, len(atoms))
	for i := range atoms {
		params[i], ok = lisp.GetSymbol(atoms[i])
		if !ok {
			return nil, lisp.Nil(), ev.errorf(lisp.MalformedForm, "%s: lambda parameter is not a symbol: %v", name, atoms[i])
		}
	}
	return params, lisp.Cdr(fun), nil
}

func (ev *Evaluator) evalDefine(v lisp.LVal, env *environ.Environ) (lisp.LVal, error) {
	target := lisp.Cdr(lisp.Car(v))
	name, ok := lisp.GetSymbol(target)
	if !ok {
		return lisp.Nil(), ev.errorf(lisp.MalformedForm, "define: name is not a symbol: %v", target)
	}
	env.Set(name, lisp.Cdr(v))
	if ev.Logger != nil {
		ev.Logger.Debug("define", "name", name, "height", ev.Stack.Height())
	}
	return lisp.Nil(), nil
}

func (ev *Evaluator) evalCond(v lisp.LVal, env *environ.Environ) (lisp.LVal, error) {
	for i, clause := range lisp.Collect(v) {
		test, err := ev.Eval(lisp.Car(clause), env)
		if err != nil {
			return lisp.Nil(), err
		}
		if lisp.IsTrue(test) {
			if ev.Logger != nil {
				ev.Logger.Debug("cond", "clause", i, "height", ev.Stack.Height())
			}
			return ev.Eval(lisp.Cdr(clause), env)
		}
	}
	return lisp.Nil(), nil
}

func (ev *Evaluator) errorf(c lisp.Condition, format string, args ...interface{}) error {
	return ev.annotate(lisp.Errorf(c, format, args...))
}

// annotate attaches a copy of the call stack to err if err is a *lisp.Error
// raised inside a function call and not yet annotated.
func (ev *Evaluator) annotate(err error) error {
	var lerr *lisp.Error
	if errors.As(err, &lerr) && lerr.Stack == nil && ev.Stack.Height() > 0 {
		lerr.Stack = ev.Stack.Copy()
	}
	return err
}
