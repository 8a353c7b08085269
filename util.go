package huffman

import (
	mathbits "math/bits"
)

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

// addSaturating returns a+b, clamped to math.MaxUint64.
func addSaturating(a, b uint64) uint64 {
	sum, carry := mathbits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}
	return sum
}

// mulSaturating returns a*b, clamped to math.MaxUint64.
func mulSaturating(a, b uint64) uint64 {
	hi, lo := mathbits.Mul64(a, b)
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}
