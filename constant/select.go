package constant

import "math/big"

// Concat concatenates operands msb-first (the first argument becomes the
// highest-order bits of the result), the rule for `{a, b, c}`.
func Concat(parts ...SVInt) SVInt {
	total := 0
	for _, p := range parts {
		total += p.width
	}
	out := make([]byte, 0, total)
	// build lsb-first internally, then the constructor below expects
	// bits[0] == lsb, so append from the last part (lowest order) first.
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		for b := 0; b < p.width; b++ {
			out = append(out, p.Bit(b))
		}
	}
	return FromBits(total, false, out)
}

// Replicate builds `{n{x}}`: n copies of x concatenated together. The
// caller is responsible for verifying n is a non-negative constant before
// calling (constant replication counts are enforced during binding).
func Replicate(n int, x SVInt) SVInt {
	if n <= 0 {
		return SVInt{width: 0, val: new(big.Int), unknown: new(big.Int), unknownIsZ: new(big.Int)}
	}
	parts := make([]SVInt, n)
	for i := range parts {
		parts[i] = x
	}
	return Concat(parts...)
}

// PartSelect extracts bits [msb:lsb] (inclusive, msb >= lsb in the
// little-endian bit-index space this type uses internally regardless of
// how the declared range reads in source). Indices outside [0, width) read
// as the unknown state X, per "out-of-range reads yield all-x".
func (a SVInt) PartSelect(msb, lsb int) SVInt {
	if msb < lsb {
		msb, lsb = lsb, msb
	}
	width := msb - lsb + 1
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		idx := lsb + i
		if idx < 0 || idx >= a.width {
			out[i] = 'x'
			continue
		}
		out[i] = a.Bit(idx)
	}
	return FromBits(width, false, out)
}

// BitSelect extracts a single bit as a 1-bit value; out of range reads as X.
func (a SVInt) BitSelect(index int) SVInt {
	return a.PartSelect(index, index)
}
