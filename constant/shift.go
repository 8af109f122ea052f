package constant

import "math/big"

// Shl is logical left shift; the left operand's width and signedness are
// preserved (shifts take the lhs type), the shift amount is always
// self-determined and treated as unsigned regardless of its own
// signedness.
func (a SVInt) Shl(amount SVInt) SVInt {
	if amount.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	n := amount.val.Uint64()
	if a.HasUnknown() {
		// shifting an unknown-bearing value shifts the unknown mask too.
		v := new(big.Int).Lsh(a.val, uint(n))
		u := new(big.Int).Lsh(a.unknown, uint(n))
		z := new(big.Int).Lsh(a.unknownIsZ, uint(n))
		return SVInt{width: a.width, signed: a.signed, val: maskTo(v, a.width), unknown: maskTo(u, a.width), unknownIsZ: maskTo(z, a.width)}
	}
	v := new(big.Int).Lsh(a.val, uint(n))
	return NewBig(a.width, a.signed, v)
}

// Shr is logical right shift: zero-fills from the top regardless of
// signedness.
func (a SVInt) Shr(amount SVInt) SVInt {
	if amount.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	n := amount.val.Uint64()
	if a.HasUnknown() {
		v := new(big.Int).Rsh(a.val, uint(n))
		u := new(big.Int).Rsh(a.unknown, uint(n))
		z := new(big.Int).Rsh(a.unknownIsZ, uint(n))
		return SVInt{width: a.width, signed: a.signed, val: v, unknown: u, unknownIsZ: z}
	}
	v := new(big.Int).Rsh(a.val, uint(n))
	return NewBig(a.width, a.signed, v)
}

// Ashr is arithmetic right shift: sign-extends from the top when the value
// is signed, otherwise behaves like Shr (an arithmetic shift on an
// unsigned value is defined to be logical).
func (a SVInt) Ashr(amount SVInt) SVInt {
	if !a.signed {
		return a.Shr(amount)
	}
	if amount.HasUnknown() || a.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	n := amount.val.Uint64()
	v := new(big.Int).Rsh(a.signExtendedBig(), uint(n))
	return NewBig(a.width, a.signed, v)
}

func maskTo(v *big.Int, width int) *big.Int {
	return v.And(v, mask(width))
}

// ZeroExtend widens the value to newWidth, padding high bits with 0.
func (a SVInt) ZeroExtend(newWidth int) SVInt {
	if newWidth <= a.width {
		return a
	}
	r := SVInt{width: newWidth, signed: a.signed, val: clone(a.val), unknown: clone(a.unknown), unknownIsZ: clone(a.unknownIsZ)}
	return r
}

// SignExtend widens the value to newWidth, replicating the sign bit (or X
// if the sign bit itself is unknown) into the new high bits.
func (a SVInt) SignExtend(newWidth int) SVInt {
	if newWidth <= a.width {
		return a
	}
	if a.width == 0 {
		return AllX(newWidth, a.signed)
	}
	signBit := a.Bit(a.width - 1)
	r := SVInt{width: newWidth, signed: a.signed, val: clone(a.val), unknown: clone(a.unknown), unknownIsZ: clone(a.unknownIsZ)}
	switch signBit {
	case '1':
		for i := a.width; i < newWidth; i++ {
			r.val.SetBit(r.val, i, 1)
		}
	case 'x', 'z':
		isZ := signBit == 'z'
		for i := a.width; i < newWidth; i++ {
			r.unknown.SetBit(r.unknown, i, 1)
			if isZ {
				r.unknownIsZ.SetBit(r.unknownIsZ, i, 1)
			}
		}
	}
	return r
}

// Extend applies zero-extension for unsigned values and sign-extension for
// signed ones, the rule used when widening an operand to a
// context-determined width.
func (a SVInt) Extend(newWidth int) SVInt {
	if a.signed {
		return a.SignExtend(newWidth)
	}
	return a.ZeroExtend(newWidth)
}

// Truncate narrows the value to newWidth, discarding high bits.
func (a SVInt) Truncate(newWidth int) SVInt {
	if newWidth >= a.width {
		return a
	}
	m := mask(newWidth)
	return SVInt{
		width:      newWidth,
		signed:     a.signed,
		val:        new(big.Int).And(a.val, m),
		unknown:    new(big.Int).And(a.unknown, m),
		unknownIsZ: new(big.Int).And(a.unknownIsZ, m),
	}
}
