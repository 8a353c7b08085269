package huffman

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SymbolReader decodes one symbol at a time from a BitReader.  Both *Tree
// and *Decoder implement it.
type SymbolReader interface {
	ReadSymbol(br *BitReader) (Symbol, error)
}

// Decoder decodes Huffman codes using a prefix table built from a
// CodeTable.  Every prefix of every code has an entry in the table; entries
// for complete codes hold their Symbol, and every entry records the bit
// lengths of the shortest and longest codes that begin with it.
//
// A Decoder is immutable once built and safe for concurrent use.
type Decoder struct {
	table   map[Code]decoderData
	codes   CodeTable
	minSize byte
	maxSize byte
}

// NewDecoder builds a Decoder for the given code table.
//
// The table must be prefix-free: a code that duplicates or begins with
// another code is rejected with ErrCorruptStream.  The table need not be
// complete; bit paths that lead to no code are reported by ReadSymbol.
//
func NewDecoder(ct CodeTable) (*Decoder, error) {
	if ct.Len() == 0 {
		return nil, fmt.Errorf("huffman: code table has no codes: %w", ErrEmptyInput)
	}

	numSymbols := uint32(ct.Len())

	// len(table) is approximately n×log2(n) when filled.
	numTableSlots := numSymbols * log2uint32(numSymbols)

	d := &Decoder{
		table:   make(map[Code]decoderData, numTableSlots),
		codes:   ct,
		minSize: ct.MinSize(),
		maxSize: ct.MaxSize(),
	}

	for _, symbol := range ct.Symbols() {
		hc, _ := ct.Lookup(symbol)
		if err := fillTable(d.table, symbol, hc); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Decode looks up hc in the prefix table.
//
// A complete code yields its symbol, with minSize and maxSize both equal to
// hc.Size.  A proper prefix of one or more codes yields InvalidSymbol along
// with the sizes of the shortest and longest codes it begins, so the caller
// knows to read between minSize-hc.Size and maxSize-hc.Size more bits.  A
// bit string that begins no code yields InvalidSymbol with both sizes 0.
//
func (d *Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// ReadSymbol decodes one symbol from br.  It reads as many bits at once as
// the shortest code that could still match requires.
func (d *Decoder) ReadSymbol(br *BitReader) (Symbol, error) {
	var hc Code
	need := d.minSize
	for {
		bits, err := br.ReadBits(need)
		if err != nil {
			return InvalidSymbol, err
		}
		hc = Code{Size: hc.Size + need, Bits: (hc.Bits << need) | bits}

		symbol, minSize, _ := d.Decode(hc)
		switch {
		case symbol >= 0:
			return symbol, nil
		case minSize == 0:
			return InvalidSymbol, corruptf("huffman: no code begins with %s", hc)
		}
		need = minSize - hc.Size
	}
}

// CodeTable returns the code table this Decoder was built from.
func (d *Decoder) CodeTable() CodeTable {
	return d.codes
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder) MaxSize() byte {
	return d.maxSize
}

// Dump writes every prefix table entry to w, shortest codes first.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	prefixes := maps.Keys(d.table)
	slices.SortFunc(prefixes, Code.less)
	for _, hc := range prefixes {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (d *Decoder) DebugString() string {
	var buf bytes.Buffer
	_, _ = d.Dump(&buf)
	return buf.String()
}

// String returns a short description of the Decoder.
func (d *Decoder) String() string {
	return fmt.Sprintf("(Huffman decoder with %d symbols, with coded lengths of %d .. %d bits)", d.codes.Len(), d.minSize, d.maxSize)
}

var _ fmt.Stringer = (*Decoder)(nil)
var _ SymbolReader = (*Decoder)(nil)

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) error {
	if _, found := table[hc]; found {
		return corruptf("huffman: code %s for symbol %d overlaps another code", hc, symbol)
	}

	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "xxx...a", compute "xxx...A" where A = NOT a.

		sibling := Code{Size: hc.Size, Bits: hc.Bits ^ 1}

		// Merge the dd's from "xxx...a" (dd) and "xxx...A" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[sibling]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "xxx...a" to "xxx...".

		hc = Code{Size: hc.Size - 1, Bits: hc.Bits >> 1}

		// A complete code must not be a prefix of another code.

		ddOld, found := table[hc]
		if found && ddOld.symbol >= 0 {
			return corruptf("huffman: code %s for symbol %d overlaps another code", hc, ddOld.symbol)
		}

		// If table[hc] already equals ddNew, we can stop recursing.

		if found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
	return nil
}
