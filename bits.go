package huffman

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/icza/bitio"
)

// Bits is a packed sequence of bits with an exact length.  Bits are stored
// most significant bit first; the unused low bits of the final byte are
// padding and carry no meaning.
type Bits struct {
	data []byte
	n    int
}

// NewBits wraps data as a sequence of n bits.  It fails with
// ErrCorruptStream if data is too short to hold n bits.
func NewBits(data []byte, n int) (Bits, error) {
	if n < 0 || n > 8*len(data) {
		return Bits{}, corruptf("huffman: %d bits do not fit in %d bytes", n, len(data))
	}
	return Bits{data: data[:(n+7)/8], n: n}, nil
}

// Len returns the number of valid bits.
func (b Bits) Len() int {
	return b.n
}

// Bytes returns the packed bits, ceil(Len()/8) bytes long.  The caller must
// not modify the returned slice.
func (b Bits) Bytes() []byte {
	return b.data
}

// At returns the i'th bit.
func (b Bits) At(i int) uint {
	if i < 0 || i >= b.n {
		panic(fmt.Errorf("huffman: bit index %d out of range [0, %d)", i, b.n))
	}
	return uint(b.data[i>>3]>>(7-uint(i&7))) & 1
}

// Truncate returns the first n bits.
func (b Bits) Truncate(n int) Bits {
	if n < 0 || n > b.n {
		panic(fmt.Errorf("huffman: cannot truncate %d bits to %d", b.n, n))
	}
	return Bits{data: b.data[:(n+7)/8], n: n}
}

// String returns the bits as a string of '0' and '1' characters.
func (b Bits) String() string {
	var buf strings.Builder
	buf.Grow(b.n)
	for i := 0; i < b.n; i++ {
		buf.WriteByte('0' + byte(b.At(i)))
	}
	return buf.String()
}

var _ fmt.Stringer = Bits{}

// BitReader reads a Bits value from the first bit to the last.  Reading past
// the end fails with ErrCorruptStream.
type BitReader struct {
	r         *bitio.Reader
	remaining int
}

// NewBitReader returns a BitReader positioned at the first bit of b.
func NewBitReader(b Bits) *BitReader {
	return &BitReader{
		r:         bitio.NewReader(bytes.NewReader(b.data)),
		remaining: b.n,
	}
}

// Remaining returns the number of bits not yet read.
func (br *BitReader) Remaining() int {
	return br.remaining
}

// ReadBit reads a single bit.
func (br *BitReader) ReadBit() (uint, error) {
	if br.remaining < 1 {
		return 0, corruptf("huffman: bit stream ended mid-symbol")
	}
	bit, err := br.r.ReadBool()
	if err != nil {
		return 0, corruptf("huffman: %v", err)
	}
	br.remaining--
	if bit {
		return 1, nil
	}
	return 0, nil
}

// ReadBits reads n bits, 0 <= n <= 64, and returns them with the first bit
// read as the most significant.
func (br *BitReader) ReadBits(n byte) (uint64, error) {
	if n > maxBitsPerCode {
		return 0, fmt.Errorf("huffman: cannot read %d bits at once", n)
	}
	if br.remaining < int(n) {
		return 0, corruptf("huffman: bit stream ended mid-symbol: need %d bits, have %d", n, br.remaining)
	}
	if n == 0 {
		return 0, nil
	}
	bits, err := br.r.ReadBits(n)
	if err != nil {
		return 0, corruptf("huffman: %v", err)
	}
	br.remaining -= int(n)
	return bits, nil
}

// bitWriter packs codes into a Bits value.
type bitWriter struct {
	buf bytes.Buffer
	w   *bitio.Writer
	n   int
}

func newBitWriter() *bitWriter {
	bw := &bitWriter{}
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

func (bw *bitWriter) WriteCode(hc Code) error {
	if err := bw.w.WriteBits(hc.Bits, hc.Size); err != nil {
		return err
	}
	bw.n += int(hc.Size)
	return nil
}

// Finish pads the final byte with zeros and returns the bits written.
func (bw *bitWriter) Finish() (Bits, error) {
	if err := bw.w.Close(); err != nil {
		return Bits{}, err
	}
	return Bits{data: bw.buf.Bytes(), n: bw.n}, nil
}
