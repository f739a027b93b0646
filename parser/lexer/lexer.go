package lexer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/luthersystems/pairlisp/parser/token"
)

// parens pads parentheses so that they split as their own fields.
var parens = strings.NewReplacer("(", " ( ", ")", " ) ")

// Tokenize splits text into lexemes.  Tokenize never fails: malformed input
// is reported by the parser.
//
// Each whitespace separated piece is matched case-insensitively against the
// reserved words first, then parsed as a signed 32-bit integer, and is
// otherwise a symbol with its text folded to lower case.
func Tokenize(text string) []token.Lexeme {
	fields := strings.Fields(parens.Replace(text))
	lexemes := make([]token.Lexeme, 0, len(fields))
	for _, f := range fields {
		lexemes = append(lexemes, classify(f))
	}
	return lexemes
}

func classify(text string) token.Lexeme {
	folded := strings.ToLower(text)
	if typ, ok := token.Lookup(folded); ok {
		return token.Of(typ)
	}
	x, err := strconv.ParseInt(text, 10, 32)
	if err == nil {
		return token.Int(int32(x))
	}
	return token.Symbol(folded)
}

// TokenizeReader reads all of r and tokenizes its contents.
func TokenizeReader(r io.Reader) ([]token.Lexeme, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Tokenize(string(b)), nil
}

// TokenizeFile reads the file at path and tokenizes its contents.
func TokenizeFile(path string) ([]token.Lexeme, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Tokenize(string(b)), nil
}
