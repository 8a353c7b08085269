package huffman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CodeTable maps each Symbol to its Huffman code.  A CodeTable derived from
// a Tree is prefix-free by construction.  CodeTable values are immutable.
type CodeTable struct {
	codes   map[Symbol]Code
	minSize byte
	maxSize byte
}

// CodeTable assigns a code to every leaf of the tree: the path from the
// root, with 0 for each left branch and 1 for each right branch.  A tree
// with a single leaf gets the one-bit code "0", since an empty code could
// not be told apart from the next symbol.  An empty tree yields an empty
// table.
func (t *Tree) CodeTable() CodeTable {
	codes := make(map[Symbol]Code, t.NumLeaves())
	if t.isEmpty() {
		return makeCodeTable(codes)
	}
	if n := t.nodes[t.root]; n.isLeaf() {
		codes[n.symbol] = MakeCode(1, 0)
		return makeCodeTable(codes)
	}
	t.walk(func(index int32, hc Code) {
		if n := t.nodes[index]; n.isLeaf() {
			codes[n.symbol] = hc
		}
	})
	return makeCodeTable(codes)
}

// NewCodeTable constructs a CodeTable from an explicit mapping, such as one
// received from another party.  Symbols must be non-negative and codes must
// be 1 to 64 bits long.  NewCodeTable does not check that the codes are
// prefix-free; NewDecoder does.
func NewCodeTable(codes map[Symbol]Code) (CodeTable, error) {
	if len(codes) == 0 {
		return CodeTable{}, fmt.Errorf("huffman: code table has no codes: %w", ErrEmptyInput)
	}
	copied := make(map[Symbol]Code, len(codes))
	for sym, hc := range codes {
		if sym < 0 {
			return CodeTable{}, corruptf("huffman: invalid symbol %d in code table", sym)
		}
		if hc.Size == 0 || hc.Size > maxBitsPerCode {
			return CodeTable{}, corruptf("huffman: invalid code size %d for symbol %d", hc.Size, sym)
		}
		if hc.Size < maxBitsPerCode && hc.Bits>>hc.Size != 0 {
			return CodeTable{}, corruptf("huffman: code for symbol %d has bits set beyond its size %d", sym, hc.Size)
		}
		copied[sym] = hc
	}
	return makeCodeTable(copied), nil
}

func makeCodeTable(codes map[Symbol]Code) CodeTable {
	var minSize, maxSize byte
	first := true
	for _, hc := range codes {
		if first {
			first = false
			minSize = hc.Size
			maxSize = hc.Size
		} else if minSize > hc.Size {
			minSize = hc.Size
		} else if maxSize < hc.Size {
			maxSize = hc.Size
		}
	}
	return CodeTable{codes: codes, minSize: minSize, maxSize: maxSize}
}

// Lookup returns the code for sym.
func (ct CodeTable) Lookup(sym Symbol) (Code, bool) {
	hc, found := ct.codes[sym]
	return hc, found
}

// Len returns the number of symbols in the table.
func (ct CodeTable) Len() int {
	return len(ct.codes)
}

// Symbols returns the symbols in the table in ascending order.
func (ct CodeTable) Symbols() []Symbol {
	keys := maps.Keys(ct.codes)
	slices.Sort(keys)
	return keys
}

// MinSize is the bit length of the shortest code.
func (ct CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct CodeTable) MaxSize() byte {
	return ct.maxSize
}

// EncodedSize returns the number of bits needed to encode an input with the
// given frequencies.  Like FrequencyTable.Total, the result is clamped to
// math.MaxUint64.
func (ct CodeTable) EncodedSize(freqs FrequencyTable) (uint64, error) {
	var total uint64
	for sym, n := range freqs {
		hc, found := ct.codes[sym]
		if !found {
			return 0, fmt.Errorf("symbol %d: %w", sym, ErrUnknownSymbol)
		}
		total = addSaturating(total, mulSaturating(n, uint64(hc.Size)))
	}
	return total, nil
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer.
func (ct CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, sym := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", sym, ct.codes[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// MarshalJSON encodes the table as an object from decimal symbol to code
// string, e.g. {"97":"0","98":"110"}.
func (ct CodeTable) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(ct.codes))
	for sym, hc := range ct.codes {
		str := hc.String()
		out[strconv.FormatInt(int64(sym), 10)] = str[1 : len(str)-1]
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a table written by MarshalJSON.
func (ct *CodeTable) UnmarshalJSON(raw []byte) error {
	var in map[string]string
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	codes := make(map[Symbol]Code, len(in))
	for key, value := range in {
		sym, err := strconv.ParseInt(key, 10, 32)
		if err != nil {
			return fmt.Errorf("huffman: invalid symbol %q: %w", key, err)
		}
		hc, err := ParseCode(value)
		if err != nil {
			return fmt.Errorf("huffman: invalid code for symbol %d: %w", sym, err)
		}
		codes[Symbol(sym)] = hc
	}
	table, err := NewCodeTable(codes)
	if err != nil {
		return err
	}
	*ct = table
	return nil
}

var _ json.Marshaler = CodeTable{}
var _ json.Unmarshaler = (*CodeTable)(nil)
