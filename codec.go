package huffman

// Encoded is the result of Encode: everything a decoder needs, apart from
// the serialization chosen by the caller.
type Encoded struct {
	// Bits holds the packed codes of every input symbol, in order.
	Bits Bits

	// Tree is the Huffman tree the codes were derived from.
	Tree *Tree

	// Table is the code table derived from Tree.
	Table CodeTable

	// Count is the number of symbols encoded.  Bits are not
	// self-terminating, so Count must be stored alongside them.
	Count int
}

// Encode runs the whole pipeline on the given symbols: frequency count,
// tree construction, code assignment and packing.  It fails with
// ErrEmptyInput if there are no symbols.
func Encode(symbols []Symbol) (*Encoded, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyInput
	}

	tree, err := BuildTree(CountFrequencies(symbols))
	if err != nil {
		return nil, err
	}

	table := tree.CodeTable()
	bits, err := NewEncoder(table).Encode(symbols)
	if err != nil {
		return nil, err
	}

	return &Encoded{Bits: bits, Tree: tree, Table: table, Count: len(symbols)}, nil
}

// EncodeBytes is Encode with one symbol per byte.
func EncodeBytes(data []byte) (*Encoded, error) {
	return Encode(SymbolsFromBytes(data))
}

// EncodeString is Encode with one symbol per rune.
func EncodeString(str string) (*Encoded, error) {
	return Encode(SymbolsFromString(str))
}

// Decode decodes exactly count symbols from bits using sr, which is either
// the *Tree or a *Decoder built from the CodeTable that produced the bits.
//
// Decode fails with ErrCorruptStream if the bits run out before count
// symbols are read, if a bit path matches no code, or if bits are left over
// once count symbols are read.
//
func Decode(bits Bits, sr SymbolReader, count int) ([]Symbol, error) {
	if sr == nil {
		return nil, corruptf("huffman: no tree or code table to decode with")
	}
	if count < 0 {
		return nil, corruptf("huffman: negative symbol count %d", count)
	}
	if count == 0 {
		if bits.Len() != 0 {
			return nil, corruptf("huffman: %d bits for 0 symbols", bits.Len())
		}
		return []Symbol{}, nil
	}
	if bits.Len() < count {
		// Every code is at least one bit long.
		return nil, corruptf("huffman: %d bits cannot hold %d symbols", bits.Len(), count)
	}

	br := NewBitReader(bits)
	out := make([]Symbol, count)
	for index := 0; index < count; index++ {
		symbol, err := sr.ReadSymbol(br)
		if err != nil {
			return nil, err
		}
		out[index] = symbol
	}

	if br.Remaining() != 0 {
		return nil, corruptf("huffman: %d bits left over after %d symbols", br.Remaining(), count)
	}
	return out, nil
}
