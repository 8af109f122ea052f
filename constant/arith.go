package constant

import "math/big"

// commonWidth picks the result width/signedness for a binary arithmetic op
// absent any further context-propagated width: the max of the two operand
// widths, signed only if both operands are signed. Context-determined
// widening on top of this is the bind package's job (two-pass propagation);
// this is just the self-determined fallback.
func commonWidth(a, b SVInt) (int, bool) {
	w := a.width
	if b.width > w {
		w = b.width
	}
	return w, a.signed && b.signed
}

// taintedResult is the four-state arithmetic rule applied uniformly: any
// binary arithmetic operator where either operand carries an unknown bit
// produces an all-X result at the common width, four-state regardless of
// operand four-state-ness (arithmetic on an X always yields four-state X).
func taintedResult(a, b SVInt) (SVInt, bool) {
	if a.HasUnknown() || b.HasUnknown() {
		w, signed := commonWidth(a, b)
		return AllX(w, signed), true
	}
	return SVInt{}, false
}

func binArith(a, b SVInt, f func(r, x, y *big.Int) *big.Int) SVInt {
	if r, tainted := taintedResult(a, b); tainted {
		return r
	}
	w, signed := commonWidth(a, b)
	x, y := a.signExtendedBig(), b.signExtendedBig()
	r := new(big.Int)
	f(r, x, y)
	return NewBig(w, signed, r)
}

func (a SVInt) Add(b SVInt) SVInt {
	return binArith(a, b, func(r, x, y *big.Int) *big.Int { return r.Add(x, y) })
}

func (a SVInt) Sub(b SVInt) SVInt {
	return binArith(a, b, func(r, x, y *big.Int) *big.Int { return r.Sub(x, y) })
}

func (a SVInt) Mul(b SVInt) SVInt {
	return binArith(a, b, func(r, x, y *big.Int) *big.Int { return r.Mul(x, y) })
}

// Div implements integer division; division by zero yields an all-X result
// of the common width, matching the language's defined behavior for a
// construct that would otherwise be undefined.
func (a SVInt) Div(b SVInt) SVInt {
	if r, tainted := taintedResult(a, b); tainted {
		return r
	}
	w, signed := commonWidth(a, b)
	y := b.signExtendedBig()
	if y.Sign() == 0 {
		return AllX(w, signed)
	}
	x := a.signExtendedBig()
	q := new(big.Int).Quo(x, y)
	return NewBig(w, signed, q)
}

// Mod implements remainder with sign following the dividend, per the
// language's modulus semantics; modulus by zero yields all-X.
func (a SVInt) Mod(b SVInt) SVInt {
	if r, tainted := taintedResult(a, b); tainted {
		return r
	}
	w, signed := commonWidth(a, b)
	y := b.signExtendedBig()
	if y.Sign() == 0 {
		return AllX(w, signed)
	}
	x := a.signExtendedBig()
	r := new(big.Int).Rem(x, y)
	return NewBig(w, signed, r)
}

// Pow implements exponentiation; a negative exponent on an integer base
// that is not 0, 1, or -1 is defined to be all-X.
func (a SVInt) Pow(b SVInt) SVInt {
	if r, tainted := taintedResult(a, b); tainted {
		return r
	}
	w, signed := commonWidth(a, b)
	x, y := a.signExtendedBig(), b.signExtendedBig()
	if y.Sign() < 0 {
		switch x.Int64() {
		case 0, 1, -1:
			// fall through to compute with an adjusted non-negative
			// exponent below.
		default:
			return AllX(w, signed)
		}
		yy := new(big.Int).Neg(y)
		r := new(big.Int).Exp(x, yy, nil)
		return NewBig(w, signed, r)
	}
	r := new(big.Int).Exp(x, y, nil)
	return NewBig(w, signed, r)
}

// Neg implements unary arithmetic negation (two's complement), self-
// determined at the operand's own width.
func (a SVInt) Neg() SVInt {
	if a.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	r := new(big.Int).Neg(a.signExtendedBig())
	return NewBig(a.width, a.signed, r)
}
