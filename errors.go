package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there are no symbols to build a
	// frequency table or tree from.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrUnknownSymbol is returned when a symbol has no code in the
	// CodeTable being used to encode it.
	ErrUnknownSymbol = errors.New("huffman: unknown symbol")

	// ErrCorruptStream is returned when a bit stream, tree, or code table
	// cannot be decoded: the bits ran out mid-symbol, the symbol count does
	// not match the bits, or the tree/table is structurally invalid.
	ErrCorruptStream = errors.New("huffman: corrupt stream")
)

func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrCorruptStream)...)
}
