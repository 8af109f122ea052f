package bind

import "slangcore/constant"

// foldUnary attempts to constant-fold a unary operator application during
// the creation pass. It only ever folds eagerly from already-folded
// operands; it never itself recurses into a symbol's initializer (that is
// eval's job for genuinely indirect constants like parameter references
// whose value isn't attached directly to the NamedValueData symbol).
func foldUnary(op UnaryOperator, operand *Expression) *constant.Value {
	if operand == nil || operand.Constant == nil {
		return nil
	}
	v, ok := operand.Constant.Integer()
	if !ok {
		return nil
	}

	var r constant.SVInt
	switch op {
	case UnaryPlus:
		r = v
	case UnaryMinus:
		r = v.Neg()
	case UnaryBitwiseNot:
		r = v.Not()
	case UnaryLogicalNot:
		z := v.Equals(constant.NewInt(v.Width(), v.Signed(), 0))
		if z.HasUnknown() {
			r = constant.AllX(1, false)
		} else if z.AsInt64() == 1 {
			r = constant.NewInt(1, false, 1)
		} else {
			r = constant.NewInt(1, false, 0)
		}
	case UnaryReduceAnd:
		r = v.ReduceAnd()
	case UnaryReduceOr:
		r = v.ReduceOr()
	case UnaryReduceXor:
		r = v.ReduceXor()
	case UnaryReduceNand:
		r = v.ReduceNand()
	case UnaryReduceNor:
		r = v.ReduceNor()
	case UnaryReduceXnor:
		r = v.ReduceXnor()
	default:
		return nil
	}
	out := constant.Integer(r)
	return &out
}

// foldBinary attempts to constant-fold a binary operator application during
// the creation pass, following the same "only fold what's already folded"
// discipline as foldUnary.
func foldBinary(op BinaryOperator, lhs, rhs *Expression) *constant.Value {
	if lhs == nil || rhs == nil || lhs.Constant == nil || rhs.Constant == nil {
		return nil
	}
	a, aok := lhs.Constant.Integer()
	b, bok := rhs.Constant.Integer()
	if !aok || !bok {
		return nil
	}

	var r constant.SVInt
	switch op {
	case BinaryAdd:
		r = a.Add(b)
	case BinarySub:
		r = a.Sub(b)
	case BinaryMul:
		r = a.Mul(b)
	case BinaryDiv:
		r = a.Div(b)
	case BinaryMod:
		r = a.Mod(b)
	case BinaryPow:
		r = a.Pow(b)
	case BinaryBitwiseAnd:
		r = a.And(b)
	case BinaryBitwiseOr:
		r = a.Or(b)
	case BinaryBitwiseXor:
		r = a.Xor(b)
	case BinaryBitwiseXnor:
		r = a.Xnor(b)
	case BinaryEquality:
		r = a.Equals(b)
	case BinaryInequality:
		r = a.NotEquals(b)
	case BinaryCaseEquality:
		r = constant.NewInt(1, false, boolToBit(a.CaseEquals(b)))
	case BinaryCaseInequality:
		r = constant.NewInt(1, false, boolToBit(a.CaseNotEquals(b)))
	case BinaryLessThan:
		r = a.LessThan(b)
	case BinaryLessEqual:
		r = a.LessEqual(b)
	case BinaryGreaterThan:
		r = a.GreaterThan(b)
	case BinaryGreaterEqual:
		r = a.GreaterEqual(b)
	case BinaryLogicalAnd:
		r = logicalCombine(a, b, func(x, y bool) bool { return x && y })
	case BinaryLogicalOr:
		r = logicalCombine(a, b, func(x, y bool) bool { return x || y })
	case BinaryLogicalShiftLeft:
		r = a.Shl(b)
	case BinaryLogicalShiftRight:
		r = a.Shr(b)
	case BinaryArithShiftLeft:
		r = a.Shl(b)
	case BinaryArithShiftRight:
		r = a.Ashr(b)
	default:
		return nil
	}
	out := constant.Integer(r)
	return &out
}

func boolToBit(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func logicalCombine(a, b constant.SVInt, f func(x, y bool) bool) constant.SVInt {
	if a.HasUnknown() || b.HasUnknown() {
		return constant.AllX(1, false)
	}
	zero := constant.NewInt(a.Width(), a.Signed(), 0)
	az := !a.CaseEquals(zero)
	zero2 := constant.NewInt(b.Width(), b.Signed(), 0)
	bz := !b.CaseEquals(zero2)
	return constant.NewInt(1, false, boolToBit(f(az, bz)))
}
