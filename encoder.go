package huffman

import (
	"fmt"
)

// Encoder packs symbols into Huffman-coded bits using a CodeTable.
//
// An Encoder never modifies its table and is safe for concurrent use.
type Encoder struct {
	codes CodeTable
}

// NewEncoder returns an Encoder for the given code table.
func NewEncoder(ct CodeTable) *Encoder {
	return &Encoder{codes: ct}
}

// Encode concatenates the codes of the given symbols, in order.  The result
// is exactly as long as the sum of the code lengths.
//
// If any symbol has no code in the table, Encode fails with
// ErrUnknownSymbol and returns no bits.
//
func (e *Encoder) Encode(symbols []Symbol) (Bits, error) {
	bw := newBitWriter()
	for index, symbol := range symbols {
		hc, found := e.codes.Lookup(symbol)
		if !found {
			return Bits{}, fmt.Errorf("symbol %d at index %d: %w", symbol, index, ErrUnknownSymbol)
		}
		if err := bw.WriteCode(hc); err != nil {
			return Bits{}, err
		}
	}
	return bw.Finish()
}

// EncodeSymbol returns the code for a single symbol.
func (e *Encoder) EncodeSymbol(symbol Symbol) (Code, error) {
	hc, found := e.codes.Lookup(symbol)
	if !found {
		return Code{}, fmt.Errorf("symbol %d: %w", symbol, ErrUnknownSymbol)
	}
	return hc, nil
}

// CodeTable returns the code table used by this Encoder.
func (e *Encoder) CodeTable() CodeTable {
	return e.codes
}
