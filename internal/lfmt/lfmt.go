// Package lfmt contains writer helpers for formatting lisp values.
package lfmt

import "io"

// WriteOp is a function that looks like w.Write but may involve many calls to
// w.Write and aggregate the result.
type WriteOp func(w io.Writer) (int, error)

// CountingWriter is an io.Writer that tracks the total number of bytes written
// across all calls to its methods.  CountingWriter remembers the first error
// returned by the underlying writer and turns every later write into a noop
// returning that error, so a sequence of writes can be checked once at the
// end with Result.
type CountingWriter struct {
	w   io.Writer
	n   int
	err error
}

var _ io.StringWriter = (*CountingWriter)(nil)

// NewCountingWriter wraps w as a CountingWriter.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

func (w *CountingWriter) count(n int, err error) (int, error) {
	w.n += n
	if err != nil && w.err == nil {
		w.err = err
	}
	return n, err
}

// Write implements io.Writer
func (w *CountingWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.count(w.w.Write(b))
}

// WriteString implements io.StringWriter
func (w *CountingWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.count(io.WriteString(w.w, s))
}

// DeferCount passes the underlying io.Writer to fn and counts the number of
// bytes reported by fn's return value.  DeferCount avoids updating the
// counter on every Write when fn is itself a multi-write operation.
func (w *CountingWriter) DeferCount(fn WriteOp) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.count(fn(w.w))
}

// N returns the total number of bytes written.
func (w *CountingWriter) N() int {
	return w.n
}

// Err returns the first error encountered, if any.
func (w *CountingWriter) Err() error {
	return w.err
}

// Result returns N() and Err() together, the return values of a WriteOp.
func (w *CountingWriter) Result() (int, error) {
	return w.n, w.err
}
