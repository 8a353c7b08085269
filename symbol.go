package huffman

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Symbol represents a symbol in an arbitrary alphabet: a byte, a Unicode
// code point, or an index into some other table.  Negative symbols are not
// valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxInt32)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// SymbolsFromBytes returns one Symbol per byte of data.
func SymbolsFromBytes(data []byte) []Symbol {
	out := make([]Symbol, len(data))
	for i, b := range data {
		out[i] = Symbol(b)
	}
	return out
}

// SymbolsFromString returns one Symbol per rune of str.  Invalid UTF-8 is
// decoded as utf8.RuneError, like a range loop would.
func SymbolsFromString(str string) []Symbol {
	out := make([]Symbol, 0, utf8.RuneCountInString(str))
	for _, ch := range str {
		out = append(out, Symbol(ch))
	}
	return out
}

// Bytes converts symbols back into bytes.  It fails with ErrUnknownSymbol if
// any symbol lies outside 0..255.
func Bytes(symbols []Symbol) ([]byte, error) {
	out := make([]byte, len(symbols))
	for i, sym := range symbols {
		if sym < 0 || sym > math.MaxUint8 {
			return nil, fmt.Errorf("symbol %d at index %d is not a byte: %w", sym, i, ErrUnknownSymbol)
		}
		out[i] = byte(sym)
	}
	return out, nil
}

// String converts symbols back into a string, one rune per symbol.
func String(symbols []Symbol) string {
	var buf strings.Builder
	buf.Grow(len(symbols))
	for _, sym := range symbols {
		buf.WriteRune(rune(sym))
	}
	return buf.String()
}
