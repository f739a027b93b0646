/*
Package parser builds lisp values from lexemes.

	form := '(' <item>* ')'
	item := <form> | <int> | <symbol> | nil | t | f | lambda | apply | define | cond

Items of a form are folded from the left with lisp.Append, so (a b c) parses
to (cons (cons a b) c) and () parses to nil.  Only forms are legal at the top
level.
*/
package parser

import (
	"io"

	"github.com/luthersystems/pairlisp/lisp"
	"github.com/luthersystems/pairlisp/parser/lexer"
	"github.com/luthersystems/pairlisp/parser/token"
)

// Parser is a recursive descent parser over a sequence of lexemes.
type Parser struct {
	lexemes []token.Lexeme
	pos     int
}

// New initializes and returns a new Parser that reads from lexemes.
func New(lexemes []token.Lexeme) *Parser {
	return &Parser{lexemes: lexemes}
}

// Parse parses the form at the start of lexemes.  Lexemes following the
// form are ignored.
func Parse(lexemes []token.Lexeme) (lisp.LVal, error) {
	return New(lexemes).ParseForm()
}

// ParseString tokenizes and parses the first form of text.
func ParseString(text string) (lisp.LVal, error) {
	return Parse(lexer.Tokenize(text))
}

// ParseFile tokenizes and parses the first form in the file at path.
func ParseFile(path string) (lisp.LVal, error) {
	lexemes, err := lexer.TokenizeFile(path)
	if err != nil {
		return lisp.Nil(), err
	}
	return Parse(lexemes)
}

// ParseProgram parses consecutive forms until all lexemes are consumed.
func ParseProgram(lexemes []token.Lexeme) ([]lisp.LVal, error) {
	p := New(lexemes)
	var forms []lisp.LVal
	for p.More() {
		v, err := p.ParseForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
	return forms, nil
}

// ParseForms parses consecutive forms from the start of lexemes like
// ParseProgram, but stops without error at the first lexeme following a
// complete form that is not an open paren.  The lexemes from that point on
// are ignored.  At least one form must be present.
func ParseForms(lexemes []token.Lexeme) ([]lisp.LVal, error) {
	p := New(lexemes)
	var forms []lisp.LVal
	for {
		v, err := p.ParseForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
		if !p.More() || p.Peek().Type != token.PAREN_L {
			return forms, nil
		}
	}
}

// ReadProgram tokenizes everything in r and parses it with ParseProgram.
func ReadProgram(r io.Reader) ([]lisp.LVal, error) {
	lexemes, err := lexer.TokenizeReader(r)
	if err != nil {
		return nil, err
	}
	return ParseProgram(lexemes)
}

// More returns true if unread lexemes remain.
func (p *Parser) More() bool {
	return p.pos < len(p.lexemes)
}

// ParseForm parses one parenthesized form.  A syntax error is returned if the
// next lexeme is not an open paren or if lexemes run out before the matching
// close paren.
func (p *Parser) ParseForm() (lisp.LVal, error) {
	if !p.expect(token.PAREN_L) {
		if !p.More() {
			return lisp.Nil(), p.errorf("expected ( but found end of input")
		}
		return lisp.Nil(), p.errorf("expected ( but found %v", p.Peek())
	}
	open := p.pos - 1
	expr := lisp.Nil()
	for {
		if !p.More() {
			return lisp.Nil(), p.errorf("unterminated form opened at lexeme %d", open)
		}
		switch p.Peek().Type {
		case token.PAREN_L:
			sub, err := p.ParseForm()
			if err != nil {
				return lisp.Nil(), err
			}
			expr = lisp.Append(expr, sub)
		case token.PAREN_R:
			p.ReadToken()
			return expr, nil
		default:
			expr = lisp.Append(expr, lisp.Atom(p.ReadToken()))
		}
	}
}

// ReadToken consumes the next lexeme and returns it.
func (p *Parser) ReadToken() token.Lexeme {
	lex := p.lexemes[p.pos]
	p.pos++
	return lex
}

// Peek returns the next lexeme without consuming it.
func (p *Parser) Peek() token.Lexeme {
	return p.lexemes[p.pos]
}

func (p *Parser) expect(typ token.Type) bool {
	if p.More() && p.Peek().Type == typ {
		p.ReadToken()
		return true
	}
	return false
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	return lisp.Errorf(lisp.SyntaxError, format, v...)
}
