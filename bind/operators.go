package bind

// UnaryOperator enumerates every unary operator the binder recognizes.
type UnaryOperator uint8

const (
	UnaryPlus UnaryOperator = iota
	UnaryMinus
	UnaryLogicalNot
	UnaryBitwiseNot
	UnaryReduceAnd
	UnaryReduceOr
	UnaryReduceXor
	UnaryReduceNand
	UnaryReduceNor
	UnaryReduceXnor
)

// BinaryOperator enumerates every binary operator the binder recognizes.
type BinaryOperator uint8

const (
	BinaryAdd BinaryOperator = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryPow
	BinaryBitwiseAnd
	BinaryBitwiseOr
	BinaryBitwiseXor
	BinaryBitwiseXnor
	BinaryLogicalAnd
	BinaryLogicalOr
	BinaryEquality
	BinaryInequality
	BinaryCaseEquality
	BinaryCaseInequality
	BinaryLessThan
	BinaryLessEqual
	BinaryGreaterThan
	BinaryGreaterEqual
	BinaryLogicalShiftLeft
	BinaryLogicalShiftRight
	BinaryArithShiftLeft
	BinaryArithShiftRight
)

// propagatesContext reports whether op's result type is widened/resigned by
// the propagation pass ("context-determined") and pushed down into its
// operands. Arithmetic and bitwise operators propagate into both operands;
// shifts propagate into the lhs only, their rhs staying self-determined.
// Equality, relational, and logical operators do not propagate: their
// result is always 1-bit and their operands are bound independently.
func propagatesContext(op BinaryOperator) bool {
	switch op {
	case BinaryAdd, BinarySub, BinaryMul, BinaryDiv, BinaryMod, BinaryPow,
		BinaryBitwiseAnd, BinaryBitwiseOr, BinaryBitwiseXor, BinaryBitwiseXnor,
		BinaryLogicalShiftLeft, BinaryLogicalShiftRight, BinaryArithShiftLeft, BinaryArithShiftRight:
		return true
	default:
		return false
	}
}

// isShift reports whether op is one of the four shift operators, which take
// their result type from the lhs alone and always treat the rhs as
// self-determined and unsigned.
func isShift(op BinaryOperator) bool {
	switch op {
	case BinaryLogicalShiftLeft, BinaryLogicalShiftRight, BinaryArithShiftLeft, BinaryArithShiftRight:
		return true
	default:
		return false
	}
}

// isComparison reports whether op always yields a 1-bit self-determined
// logic result regardless of operand width (equality, relational, and
// logical operators all share this shape).
func isComparison(op BinaryOperator) bool {
	switch op {
	case BinaryEquality, BinaryInequality, BinaryCaseEquality, BinaryCaseInequality,
		BinaryLessThan, BinaryLessEqual, BinaryGreaterThan, BinaryGreaterEqual,
		BinaryLogicalAnd, BinaryLogicalOr:
		return true
	default:
		return false
	}
}
