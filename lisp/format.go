package lisp

import (
	"io"
	"strings"

	"github.com/luthersystems/pairlisp/internal/lfmt"
)

// Format writes a source-code representation of v to w.  A pair is written
// as one parenthesized sequence holding its leftmost atom followed by the
// elements of its left spine, so that parsing the output yields v again.
// The exception is a pair whose leftmost atom is Nil: the parser folds a
// leading nil away, e.g. (cons nil t) formats as "(nil t)" which parses to t.
func Format(w io.Writer, v LVal) (int, error) {
	if v.cons == nil {
		return io.WriteString(w, v.atom.String())
	}
	cw := lfmt.NewCountingWriter(w)
	cw.WriteString("(")
	for i, elem := range Elements(v) {
		if i > 0 {
			cw.WriteString(" ")
		}
		elem := elem
		cw.DeferCount(func(w io.Writer) (int, error) { return Format(w, elem) })
	}
	cw.WriteString(")")
	return cw.Result()
}

// FormatString returns the text written by Format.
func FormatString(v LVal) string {
	var b strings.Builder
	Format(&b, v)
	return b.String()
}
