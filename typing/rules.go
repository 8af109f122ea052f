package typing

// CanAssign reports whether a value of type src may be assigned (implicitly
// converted) to a variable of type dst. SystemVerilog assignment is
// permissive between the numeric families -- integral-to-integral and
// integral-to-real conversions are always allowed, with truncation/extension
// or rounding happening at evaluation time -- and otherwise requires the
// unwrapped kinds to match exactly.
func CanAssign(dst, src Type) bool {
	d, s := Unwrap(dst), Unwrap(src)
	if IsError(d) || IsError(s) {
		return true // poisoned operand: already diagnosed, don't cascade
	}
	if d.Kind() == s.Kind() {
		return true
	}
	if isNumeric(d) && isNumeric(s) {
		return true
	}
	if d.Kind() == KindClassHandle && s.Kind() == KindNull {
		return true
	}
	return false
}

func isNumeric(t Type) bool {
	switch t.Kind() {
	case KindIntegral, KindReal, KindShortReal, KindEnum:
		return true
	default:
		return false
	}
}

// CommonIntegralType implements the context-determined operand rule for
// binary arithmetic: the result (and every self-determined operand,
// recursively) takes the wider of the two operand widths, is signed only if
// both operands are signed, and is four-state if either operand is.
// Non-integral operands (real, string, ...) are the caller's responsibility
// to handle before reaching here -- this only ever combines two
// IntegralTypes.
func CommonIntegralType(in *Interner, a, b *IntegralType) *IntegralType {
	width := a.Width
	if b.Width > width {
		width = b.Width
	}
	signed := a.Signed && b.Signed
	fourState := a.FourState || b.FourState
	return in.GetIntegral(width, signed, fourState)
}

// AsIntegral downcasts t (after unwrapping aliases) to *IntegralType, the
// safe-downcast idiom used throughout instead of a type switch over every
// Type variant.
func AsIntegral(t Type) (*IntegralType, bool) {
	i, ok := Unwrap(t).(*IntegralType)
	return i, ok
}

// AsReal downcasts t to *RealType.
func AsReal(t Type) (*RealType, bool) {
	r, ok := Unwrap(t).(*RealType)
	return r, ok
}

// AsEnum downcasts t to *EnumType.
func AsEnum(t Type) (*EnumType, bool) {
	e, ok := Unwrap(t).(*EnumType)
	return e, ok
}
