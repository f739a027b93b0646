package lisp

import "math"

// IsAtomOp returns True iff v is an atom.
//
//	(atom v)
func IsAtomOp(v LVal) LVal {
	return Bool(IsAtom(v))
}

// IsNilOp returns True iff v is exactly the Nil atom.
//
//	(null v)
func IsNilOp(v LVal) LVal {
	return Bool(IsNil(v))
}

// Eq returns True iff v1 and v2 are atoms wrapping identical lexemes.  Pairs
// are never eq, even when they are structurally equal.
//
//	(eq v1 v2)
func Eq(v1, v2 LVal) LVal {
	return Bool(v1.cons == nil && v2.cons == nil && v1.atom == v2.atom)
}

// Add returns the sum of two integer atoms.
func Add(v1, v2 LVal) (LVal, error) {
	return arith("add", v1, v2, func(x, y int64) int64 { return x + y })
}

// Sub returns the difference of two integer atoms.
func Sub(v1, v2 LVal) (LVal, error) {
	return arith("sub", v1, v2, func(x, y int64) int64 { return x - y })
}

// Mul returns the product of two integer atoms.
func Mul(v1, v2 LVal) (LVal, error) {
	return arith("mul", v1, v2, func(x, y int64) int64 { return x * y })
}

// Div returns the quotient of two integer atoms, truncated toward zero.
func Div(v1, v2 LVal) (LVal, error) {
	if y, ok := GetInt(v2); ok && y == 0 {
		if _, ok := GetInt(v1); ok {
			return Nil(), Errorf(DivisionByZero, "div: division by zero")
		}
	}
	return arith("div", v1, v2, func(x, y int64) int64 { return x / y })
}

// arith applies fn to the operands widened to 64 bits.  The product of two
// 32-bit integers always fits so any overflow is detected by a range check.
func arith(name string, v1, v2 LVal, fn func(x, y int64) int64) (LVal, error) {
	x, ok := GetInt(v1)
	if !ok {
		return Nil(), Errorf(TypeMismatch, "%s: first operand is not an integer: %v", name, v1)
	}
	y, ok := GetInt(v2)
	if !ok {
		return Nil(), Errorf(TypeMismatch, "%s: second operand is not an integer: %v", name, v2)
	}
	z := fn(int64(x), int64(y))
	if z < math.MinInt32 || z > math.MaxInt32 {
		return Nil(), Errorf(IntegerOverflow, "%s: result overflows a 32-bit integer: %d", name, z)
	}
	return Int(int32(z)), nil
}
