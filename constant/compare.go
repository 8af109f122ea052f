package constant

// Equals implements logical equality (==): it returns an unknown 1-bit
// result whenever either operand has any X/Z bit, per the language rule
// that `==` cannot see through don't-care bits. Contrast with CaseEquals.
func (a SVInt) Equals(b SVInt) SVInt {
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(1, false)
	}
	w, _ := commonWidth(a, b)
	eq := true
	for i := 0; i < w; i++ {
		if a.bitOrZero(i) != b.bitOrZero(i) {
			eq = false
			break
		}
	}
	return NewInt(1, false, boolToInt(eq))
}

func (a SVInt) NotEquals(b SVInt) SVInt {
	r := a.Equals(b)
	if r.HasUnknown() {
		return r
	}
	return NewInt(1, false, 1-r.AsInt64())
}

// CaseEquals implements case equality (===): a bit-for-bit comparison,
// including X and Z, that is always fully determined (never returns
// unknown).
func (a SVInt) CaseEquals(b SVInt) bool {
	w, _ := commonWidth(a, b)
	for i := 0; i < w; i++ {
		if a.bitOrZero(i) != b.bitOrZero(i) {
			return false
		}
	}
	return true
}

func (a SVInt) CaseNotEquals(b SVInt) bool {
	return !a.CaseEquals(b)
}

func (a SVInt) bitOrZero(i int) byte {
	if i >= a.width {
		return '0'
	}
	return a.Bit(i)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// relational operands are self-determined; the comparison itself is signed
// only when both sides are signed, otherwise unsigned.
func (a SVInt) relational(b SVInt, match func(cmp int) bool) SVInt {
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(1, false)
	}
	signed := a.signed && b.signed
	x, y := a.val, b.val
	if signed {
		x, y = a.signExtendedBig(), b.signExtendedBig()
	}
	return NewInt(1, false, boolToInt(match(x.Cmp(y))))
}

func (a SVInt) LessThan(b SVInt) SVInt  { return a.relational(b, func(c int) bool { return c < 0 }) }
func (a SVInt) LessEqual(b SVInt) SVInt { return a.relational(b, func(c int) bool { return c <= 0 }) }
func (a SVInt) GreaterThan(b SVInt) SVInt {
	return a.relational(b, func(c int) bool { return c > 0 })
}
func (a SVInt) GreaterEqual(b SVInt) SVInt {
	return a.relational(b, func(c int) bool { return c >= 0 })
}
