package lisp

import (
	"github.com/luthersystems/pairlisp/parser/token"
)

// LType is the shape of an LVal.
type LType uint8

const (
	// LAtom is an indivisible value wrapping exactly one token.Lexeme.
	LAtom LType = iota
	// LPair is a two slot node holding a head (CAR) and a rest (CDR).
	LPair
)

func (t LType) String() string {
	switch t {
	case LAtom:
		return "atom"
	case LPair:
		return "pair"
	default:
		return "invalid"
	}
}

// LVal is a lisp value, the single representation of both source code and
// runtime data.  LVal values are immutable trees.  The zero LVal is a valid
// Nil atom.
type LVal struct {
	atom token.Lexeme
	cons *ConsData
}

// ConsData is the container that backs LPair values.
type ConsData struct {
	CAR LVal
	CDR LVal
}

// Type returns the shape of v.
func (v LVal) Type() LType {
	if v.cons != nil {
		return LPair
	}
	return LAtom
}

// Atom returns an atom wrapping lex.
func Atom(lex token.Lexeme) LVal {
	return LVal{atom: lex}
}

// Nil returns the Nil atom.  Nil is also the empty parenthesized form.
func Nil() LVal {
	return LVal{}
}

// True returns the True atom.
func True() LVal {
	return Atom(token.Of(token.TRUE))
}

// False returns the False atom.
func False() LVal {
	return Atom(token.Of(token.FALSE))
}

// Bool returns True if ok and False otherwise.
func Bool(ok bool) LVal {
	if ok {
		return True()
	}
	return False()
}

// Int returns an integer atom.
func Int(x int32) LVal {
	return Atom(token.Int(x))
}

// Symbol returns a symbol atom.  The name is used as is; symbols produced by
// the lexer are already folded to lower case.
func Symbol(name string) LVal {
	return Atom(token.Symbol(name))
}

// Keyword returns the atom for a special form keyword such as token.APPLY.
func Keyword(typ token.Type) LVal {
	return Atom(token.Of(typ))
}

// Cons returns a new pair from head and rest.
//
//	(cons head rest)
func Cons(head, rest LVal) LVal {
	return LVal{cons: &ConsData{CAR: head, CDR: rest}}
}

// GetLexeme returns the lexeme wrapped by v.  GetLexeme returns false if v is
// a pair.
func GetLexeme(v LVal) (token.Lexeme, bool) {
	if v.cons != nil {
		return token.Lexeme{}, false
	}
	return v.atom, true
}

// GetInt returns the integer value of v.
// GetInt returns false if v is not an integer atom.
func GetInt(v LVal) (int32, bool) {
	lex, ok := GetLexeme(v)
	if !ok || lex.Type != token.INT {
		return 0, false
	}
	return lex.Int, true
}

// GetSymbol returns the text of v.
// GetSymbol returns false if v is not a symbol atom.
func GetSymbol(v LVal) (string, bool) {
	lex, ok := GetLexeme(v)
	if !ok || lex.Type != token.SYMBOL {
		return "", false
	}
	return lex.Text, true
}

// IsKeyword returns true if v is the atom for keyword typ.
func IsKeyword(v LVal, typ token.Type) bool {
	lex, ok := GetLexeme(v)
	return ok && lex.Type == typ
}

// IsAtom returns true if v is an atom.
func IsAtom(v LVal) bool {
	return v.cons == nil
}

// IsPair returns true if v is a pair.
func IsPair(v LVal) bool {
	return v.cons != nil
}

// IsNil returns true iff v is exactly the Nil atom.
func IsNil(v LVal) bool {
	return v.cons == nil && v.atom.Type == token.NIL
}

// IsTrue returns true iff v is exactly the True atom.  No other value is
// truthy.
func IsTrue(v LVal) bool {
	return v.cons == nil && v.atom.Type == token.TRUE
}

// GetCAR returns the head of v.
// GetCAR returns false if v is not a pair.
func GetCAR(v LVal) (LVal, bool) {
	if v.cons == nil {
		return Nil(), false
	}
	return v.cons.CAR, true
}

// GetCDR returns the rest of v.
// GetCDR returns false if v is not a pair.
func GetCDR(v LVal) (LVal, bool) {
	if v.cons == nil {
		return Nil(), false
	}
	return v.cons.CDR, true
}

// Car returns the head of v, or Nil when v is an atom.
func Car(v LVal) LVal {
	head, _ := GetCAR(v)
	return head
}

// Cdr returns the rest of v, or Nil when v is an atom.
func Cdr(v LVal) LVal {
	rest, _ := GetCDR(v)
	return rest
}

// Equal returns true if v1 and v2 are structurally identical trees.
func Equal(v1 LVal, v2 LVal) bool {
	for {
		if v1.cons == nil || v2.cons == nil {
			return v1.cons == nil && v2.cons == nil && v1.atom == v2.atom
		}
		if v1.cons == v2.cons {
			return true
		}
		if !Equal(v1.cons.CAR, v2.cons.CAR) {
			return false
		}
		v1, v2 = v1.cons.CDR, v2.cons.CDR
	}
}

// String returns the source representation of v.
func (v LVal) String() string {
	return FormatString(v)
}
