package token

import "strconv"

// Lexeme is a single lexical unit.  Lexemes are comparable with == and two
// lexemes are equal iff they have the same type and the same payload.
type Lexeme struct {
	Type Type
	Int  int32  // value of an INT lexeme
	Text string // case-folded text of a SYMBOL lexeme
}

// Type identifies the kind of a Lexeme.
type Type uint8

// Type constants used by the lexer and parser.  NIL is deliberately the zero
// Type so that the zero Lexeme is the nil literal.
const (
	NIL Type = iota
	INT
	SYMBOL
	PAREN_L
	PAREN_R
	TRUE
	FALSE

	// Keywords naming special forms
	LAMBDA
	APPLY
	DEFINE
	COND

	numTokenTypes
)

var typeStrings = [numTokenTypes]string{
	NIL:     "nil",
	INT:     "int",
	SYMBOL:  "symbol",
	PAREN_L: "(",
	PAREN_R: ")",
	TRUE:    "t",
	FALSE:   "f",
	LAMBDA:  "lambda",
	APPLY:   "apply",
	DEFINE:  "define",
	COND:    "cond",
}

func (typ Type) String() string {
	if typ >= numTokenTypes {
		return "invalid"
	}
	return typeStrings[typ]
}

// IsKeyword returns true if typ names a special form.
func (typ Type) IsKeyword() bool {
	switch typ {
	case LAMBDA, APPLY, DEFINE, COND:
		return true
	}
	return false
}

// reserved maps the fixed (lower case) texts of the language to their types.
// It is never modified after initialization.
var reserved = map[string]Type{
	"(":      PAREN_L,
	")":      PAREN_R,
	"lambda": LAMBDA,
	"apply":  APPLY,
	"define": DEFINE,
	"cond":   COND,
	"t":      TRUE,
	"f":      FALSE,
	"nil":    NIL,
}

// Lookup returns the type of a reserved word or parenthesis.  The text must
// already be case-folded.
func Lookup(text string) (Type, bool) {
	typ, ok := reserved[text]
	return typ, ok
}

// Of returns the Lexeme for a type without payload, such as PAREN_L or COND.
func Of(typ Type) Lexeme {
	return Lexeme{Type: typ}
}

// Int returns an INT lexeme.
func Int(x int32) Lexeme {
	return Lexeme{Type: INT, Int: x}
}

// Symbol returns a SYMBOL lexeme.  The caller is responsible for case folding.
func Symbol(text string) Lexeme {
	return Lexeme{Type: SYMBOL, Text: text}
}

// String returns the source text of lex.
func (lex Lexeme) String() string {
	switch lex.Type {
	case INT:
		return strconv.FormatInt(int64(lex.Int), 10)
	case SYMBOL:
		return lex.Text
	default:
		return lex.Type.String()
	}
}
