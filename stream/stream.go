// Package stream defines the persisted form of a Huffman-coded input: the
// symbol count, the tree shape, the exact bit length, and the packed bits.
//
// Layout:
//
//     "HUFZ"              magic
//     version             1 byte, currently 1
//     kind                1 byte, 0 = bytes, 1 = runes
//     uvarint count       number of symbols
//     uvarint treeLen     then treeLen bytes of huffman.Tree.MarshalBinary
//     uvarint bitLen      then ceil(bitLen/8) bytes of packed bits
//
// An empty input is stored with count, treeLen and bitLen all 0.
//
package stream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	huffman "github.com/chronos-tachyon/huffzip"
)

const (
	magic   = "HUFZ"
	version = 1

	// maxTreeLen bounds the serialized tree: 2^31 leaves of 32 bits each.
	maxTreeLen = 1 << 33

	maxInt = uint64(^uint(0) >> 1)
)

var (
	// ErrBadMagic is returned when the input does not start with "HUFZ".
	ErrBadMagic = errors.New("stream: not a huffzip stream")

	// ErrBadVersion is returned for a format version other than 1.
	ErrBadVersion = errors.New("stream: unsupported version")

	// ErrBadKind is returned for a symbol kind other than bytes or runes.
	ErrBadKind = errors.New("stream: unknown symbol kind")
)

// Kind records how symbols map back to the original input.
type Kind byte

const (
	// KindBytes means one symbol per byte.
	KindBytes Kind = iota

	// KindRunes means one symbol per Unicode code point.
	KindRunes
)

func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindRunes:
		return "runes"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// IsValid reports whether k is a known Kind.
func (k Kind) IsValid() bool {
	return k == KindBytes || k == KindRunes
}

// Frame is a decoded stream header plus its payload.
type Frame struct {
	Kind  Kind
	Count int
	Tree  *huffman.Tree
	Bits  huffman.Bits
}

// Symbols decodes the payload.
func (f *Frame) Symbols() ([]huffman.Symbol, error) {
	if f.Count == 0 {
		if f.Bits.Len() != 0 {
			return nil, corruptf("stream: %d bits for 0 symbols", f.Bits.Len())
		}
		return []huffman.Symbol{}, nil
	}
	return huffman.Decode(f.Bits, f.Tree, f.Count)
}

// Write writes enc to w.  A nil enc writes an empty stream.
func Write(w io.Writer, kind Kind, enc *huffman.Encoded) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %d", ErrBadKind, byte(kind))
	}

	var tree []byte
	var count int
	var bits huffman.Bits
	if enc != nil {
		var err error
		tree, err = enc.Tree.MarshalBinary()
		if err != nil {
			return err
		}
		count = enc.Count
		bits = enc.Bits
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(magic)
	bw.WriteByte(version)
	bw.WriteByte(byte(kind))
	writeUvarint(bw, uint64(count))
	writeUvarint(bw, uint64(len(tree)))
	bw.Write(tree)
	writeUvarint(bw, uint64(bits.Len()))
	bw.Write(bits.Bytes())
	return bw.Flush()
}

// Read reads a stream written by Write.  The payload is not decoded; call
// Frame.Symbols for that.  The stream must be the whole of r: anything after
// the payload is reported as ErrCorruptStream.
func Read(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)

	var header [len(magic) + 2]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrBadMagic
		}
		return nil, err
	}
	if string(header[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	if v := header[len(magic)]; v != version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}
	kind := Kind(header[len(magic)+1])
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrBadKind, byte(kind))
	}

	count, err := readUvarint(br, "symbol count")
	if err != nil {
		return nil, err
	}
	treeLen, err := readUvarint(br, "tree length")
	if err != nil {
		return nil, err
	}
	if treeLen > maxTreeLen {
		return nil, corruptf("stream: tree length %d too large", treeLen)
	}
	treeData, err := readExactly(br, treeLen, "tree")
	if err != nil {
		return nil, err
	}
	bitLen, err := readUvarint(br, "bit length")
	if err != nil {
		return nil, err
	}
	if count > bitLen {
		return nil, corruptf("stream: %d bits cannot hold %d symbols", bitLen, count)
	}
	payload, err := readExactly(br, (bitLen+7)/8, "payload")
	if err != nil {
		return nil, err
	}
	if _, err := br.Peek(1); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, corruptf("stream: trailing data after payload")
	}

	f := &Frame{Kind: kind, Count: int(count)}
	f.Bits, err = huffman.NewBits(payload, int(bitLen))
	if err != nil {
		return nil, err
	}

	if count == 0 {
		if treeLen != 0 {
			return nil, corruptf("stream: empty stream carries a tree")
		}
		return f, nil
	}

	f.Tree = new(huffman.Tree)
	if err := f.Tree.UnmarshalBinary(treeData); err != nil {
		return nil, err
	}
	return f, nil
}

// Compress encodes symbols and writes them to w, returning the encoding it
// wrote.  Unlike huffman.Encode, it accepts an empty input, for which it
// returns a nil encoding.
func Compress(w io.Writer, kind Kind, symbols []huffman.Symbol) (*huffman.Encoded, error) {
	if len(symbols) == 0 {
		return nil, Write(w, kind, nil)
	}
	enc, err := huffman.Encode(symbols)
	if err != nil {
		return nil, err
	}
	if err := Write(w, kind, enc); err != nil {
		return nil, err
	}
	return enc, nil
}

// Decompress reads a stream from r and decodes it, returning the symbols
// along with the frame they came from.
func Decompress(r io.Reader) ([]huffman.Symbol, *Frame, error) {
	f, err := Read(r)
	if err != nil {
		return nil, nil, err
	}
	symbols, err := f.Symbols()
	if err != nil {
		return nil, nil, err
	}
	return symbols, f, nil
}

func writeUvarint(bw *bufio.Writer, x uint64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], x)
	bw.Write(buf[:n])
}

func readUvarint(br *bufio.Reader, what string) (uint64, error) {
	x, err := binary.ReadUvarint(br)
	if err != nil {
		return 0, corruptf("stream: reading %s: %v", what, err)
	}
	if x > maxInt {
		return 0, corruptf("stream: %s %d out of range", what, x)
	}
	return x, nil
}

func readExactly(br *bufio.Reader, n uint64, what string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(br, int64(n)))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) != n {
		return nil, corruptf("stream: %s truncated: want %d bytes, got %d", what, n, len(data))
	}
	return data, nil
}

func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, huffman.ErrCorruptStream)...)
}
