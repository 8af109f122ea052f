// Package constant implements the four-state arbitrary-width integer type
// (SVInt) and the tagged Value union that constant folding and
// expression evaluation produce. It has no dependency on the typing or
// symbols packages: it is the leaf of the dependency graph, exactly as the
// spec's component table (§2) places constant values below types and
// symbols.
package constant

import (
	"fmt"
	"math/big"
)

// SVInt is an arbitrary-precision four-state integer: each bit is 0, 1, X
// (unknown), or Z (high-impedance), plus a signedness flag used by shifts,
// comparisons, and extension.
//
// Representation: val holds the two's-complement bit pattern for bits that
// are known; unknown is a bitmask where a set bit means "this bit is X or
// Z"; unknownIsZ disambiguates which of the two an unknown bit is. Bits
// that are unknown carry don't-care content in val.
type SVInt struct {
	width       int
	signed      bool
	val         *big.Int
	unknown     *big.Int
	unknownIsZ  *big.Int
}

func mask(width int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

func clone(b *big.Int) *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b)
}

// NewInt builds a fully-known SVInt from a signed Go integer at the given
// width and signedness. Values are truncated (masked) to width bits.
func NewInt(width int, signed bool, v int64) SVInt {
	bi := big.NewInt(v)
	if bi.Sign() < 0 {
		bi.Add(bi, new(big.Int).Lsh(big.NewInt(1), uint(width)))
	}
	bi.And(bi, mask(width))
	return SVInt{width: width, signed: signed, val: bi, unknown: new(big.Int), unknownIsZ: new(big.Int)}
}

// NewBig builds a fully-known SVInt from an arbitrary-precision magnitude,
// masked to width bits.
func NewBig(width int, signed bool, v *big.Int) SVInt {
	bi := new(big.Int).And(v, mask(width))
	return SVInt{width: width, signed: signed, val: bi, unknown: new(big.Int), unknownIsZ: new(big.Int)}
}

// AllX returns a width-bit value whose every bit is the unknown state X.
// This is the canonical poisoned result of four-state arithmetic tainting.
func AllX(width int, signed bool) SVInt {
	m := mask(width)
	return SVInt{width: width, signed: signed, val: new(big.Int), unknown: clone(m), unknownIsZ: new(big.Int)}
}

// AllZ returns a width-bit value whose every bit is the high-impedance
// state Z.
func AllZ(width int, signed bool) SVInt {
	m := mask(width)
	return SVInt{width: width, signed: signed, val: new(big.Int), unknown: clone(m), unknownIsZ: clone(m)}
}

// FromBits builds an SVInt from an explicit per-bit description: bits[i] is
// one of '0', '1', 'x', 'X', 'z', 'Z', with bits[0] the least significant
// bit. Missing positions (fewer entries than width) are treated as zero.
func FromBits(width int, signed bool, bits []byte) SVInt {
	r := SVInt{width: width, signed: signed, val: new(big.Int), unknown: new(big.Int), unknownIsZ: new(big.Int)}
	for i, c := range bits {
		if i >= width {
			break
		}
		switch c {
		case '1':
			r.val.SetBit(r.val, i, 1)
		case '0':
			// already zero
		case 'x', 'X':
			r.unknown.SetBit(r.unknown, i, 1)
		case 'z', 'Z':
			r.unknown.SetBit(r.unknown, i, 1)
			r.unknownIsZ.SetBit(r.unknownIsZ, i, 1)
		}
	}
	return r
}

func (s SVInt) Width() int    { return s.width }
func (s SVInt) Signed() bool  { return s.signed }

// HasUnknown reports whether any bit of the value is X or Z. Per the
// four-state arithmetic rule, any binary arithmetic operation taints its
// entire result to all-X when either operand has an unknown bit.
func (s SVInt) HasUnknown() bool {
	return s.unknown != nil && s.unknown.Sign() != 0
}

// Bit returns the tri-state value of a single bit position as one of '0',
// '1', 'x', 'z'.
func (s SVInt) Bit(i int) byte {
	if i < 0 || i >= s.width {
		return 'x'
	}
	if s.unknown.Bit(i) == 1 {
		if s.unknownIsZ.Bit(i) == 1 {
			return 'z'
		}
		return 'x'
	}
	if s.val.Bit(i) == 1 {
		return '1'
	}
	return '0'
}

// signExtendedBig returns the value's magnitude sign-extended to an
// unbounded big.Int, honoring the signed flag, for use in arithmetic. Only
// meaningful when HasUnknown is false.
func (s SVInt) signExtendedBig() *big.Int {
	v := clone(s.val)
	if s.signed && s.width > 0 && v.Bit(s.width-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(s.width)))
	}
	return v
}

// AsInt64 returns the known value as an int64, for callers (e.g. the
// generate-construct elaborator, replication counts) that need a host
// integer and have already verified HasUnknown is false.
func (s SVInt) AsInt64() int64 {
	return s.signExtendedBig().Int64()
}

// Repr renders the value as a sized binary literal, e.g. "4'b10x1", or
// "8'sb11111111" when signed.
func (s SVInt) Repr() string {
	bits := make([]byte, s.width)
	for i := 0; i < s.width; i++ {
		bits[s.width-1-i] = s.Bit(i)
	}
	prefix := "'b"
	if s.signed {
		prefix = "'sb"
	}
	return fmt.Sprintf("%d%s%s", s.width, prefix, bits)
}
