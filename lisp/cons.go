package lisp

// Parenthesized sequences are not nil terminated chains of pairs.  A sequence
// e1 e2 ... en is folded from the left starting with Nil, so that
//
//	(e1 e2 e3) == Cons(Cons(e1, e2), e3)
//
// The helpers in this file walk trees of that left leaning shape.

// Append folds x into the accumulated sequence acc.  Appending to Nil yields
// x itself, so an empty sequence stays Nil and a one element sequence is the
// element.
func Append(acc, x LVal) LVal {
	if IsNil(acc) {
		return x
	}
	return Cons(acc, x)
}

// List folds v into a left leaning tree with Append, producing the same value
// the parser produces for a parenthesized sequence of v.
func List(v ...LVal) LVal {
	acc := Nil()
	for i := range v {
		acc = Append(acc, v[i])
	}
	return acc
}

// LeftMost returns the atom reached by repeatedly taking the head of v.
func LeftMost(v LVal) LVal {
	for v.cons != nil {
		v = v.cons.CAR
	}
	return v
}

// Collect returns the elements that follow the leftmost atom of v, in the
// order they were written.  For a special form (cond c1 c2) Collect returns
// [c1 c2].  Elements are returned whole, they are not descended into.
func Collect(v LVal) []LVal {
	var s []LVal
	for v.cons != nil {
		s = append(s, v.cons.CDR)
		v = v.cons.CAR
	}
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}

// Elements returns LeftMost(v) followed by Collect(v).  For an atom the
// result has a single element.
func Elements(v LVal) []LVal {
	return append([]LVal{LeftMost(v)}, Collect(v)...)
}

// Flatten returns every atom in v, heads before rests.  Flatten turns a
// parameter list (x y z) back into [x y z].
func Flatten(v LVal) []LVal {
	var s []LVal
	return flatten(s, v)
}

func flatten(s []LVal, v LVal) []LVal {
	for v.cons != nil {
		s = flatten(s, v.cons.CAR)
		v = v.cons.CDR
	}
	return append(s, v)
}
