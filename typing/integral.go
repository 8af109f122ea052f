package typing

import "fmt"

// IntegralType is every scalar and packed-integer-array type in the
// language: bit, logic, reg, their signed variants, byte/shortint/int/
// longint/integer/time, and any packed dimension built from them. A scalar
// is simply an IntegralType of width 1; this mirrors how slang itself
// derives ScalarType from the same integral family.
type IntegralType struct {
	Width     int
	Signed    bool
	FourState bool
}

func (i *IntegralType) Kind() Kind { return KindIntegral }

func (i *IntegralType) Repr() string {
	base := "bit"
	if i.FourState {
		base = "logic"
	}
	sign := ""
	if i.Signed {
		sign = " signed"
	}
	if i.Width == 1 {
		return base + sign
	}
	return fmt.Sprintf("%s%s [%d:0]", base, sign, i.Width-1)
}

// MaxWidth bounds the representable integral width, matching the spec's
// "bit width (<= max width)" invariant.
const MaxWidth = 1 << 20

// key is the canonicalization key for integral types: two resolutions
// producing the same (width, signed, four-state) triple must return the
// same pointer.
type integralKey struct {
	width     int
	signed    bool
	fourState bool
}
