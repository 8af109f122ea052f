package constant

import (
	"math"
	"math/big"
)

// ToReal converts a fully-known SVInt to its real-number value; a value
// carrying any unknown bit converts to 0.0, matching the defined behavior
// for a real conversion that cannot represent X/Z.
func (a SVInt) ToReal() float64 {
	if a.HasUnknown() {
		return 0
	}
	bi := a.signExtendedBig()
	f := new(big.Float).SetInt(bi)
	v, _ := f.Float64()
	return v
}

// FromReal rounds a real value to the nearest integer and truncates it to
// width bits, the rule used when a real literal or real-valued expression
// is implicitly converted to an integral context.
func FromReal(width int, signed bool, v float64) SVInt {
	bi, _ := big.NewFloat(math.Round(v)).Int(nil)
	return NewBig(width, signed, bi)
}
