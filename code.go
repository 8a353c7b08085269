package huffman

import (
	"fmt"
	"strconv"
)

// maxBitsPerCode is the longest code that fits in Code.Bits.
const maxBitsPerCode = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  Only the low Size bits are
	// valid, and the most significant of those is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters, such as "0110".
func ParseCode(str string) (Code, error) {
	if len(str) > maxBitsPerCode {
		return Code{}, fmt.Errorf("code %q is longer than %d bits", str, maxBitsPerCode)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("code %q: invalid character %q at index %d", str, str[i], i)
		}
	}
	return hc, nil
}

// Append returns the Code extended by one bit at the end.
func (hc Code) Append(bit uint) Code {
	return Code{Size: hc.Size + 1, Bits: (hc.Bits << 1) | uint64(bit&1)}
}

// Bit returns the i'th bit of the code, counting from the first.
func (hc Code) Bit(i byte) uint {
	return uint(hc.Bits>>(hc.Size-1-i)) & 1
}

// HasPrefix reports whether prefix is a prefix of this Code.  Every code is
// a prefix of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// less orders codes by size, then by value.
func (hc Code) less(other Code) bool {
	if hc.Size != other.Size {
		return hc.Size < other.Size
	}
	return hc.Bits < other.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
