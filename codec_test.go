package huffman

import (
	"encoding/json"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomSymbols(rng *rand.Rand, n int, alphabet int) []Symbol {
	out := make([]Symbol, n)
	for i := range out {
		// Skew towards low symbols so that code lengths vary.
		out[i] = Symbol(rng.Intn(rng.Intn(alphabet) + 1))
	}
	return out
}

// huffmanCost returns the optimal weighted path length for the given
// weights: the sum of every merged weight.
func huffmanCost(freqs FrequencyTable) uint64 {
	weights := make([]uint64, 0, len(freqs))
	for _, n := range freqs {
		weights = append(weights, n)
	}
	if len(weights) == 1 {
		return weights[0]
	}
	var cost uint64
	for len(weights) > 1 {
		sort.Slice(weights, func(i, j int) bool { return weights[i] < weights[j] })
		merged := weights[0] + weights[1]
		cost += merged
		weights = append(weights[2:], merged)
	}
	return cost
}

func TestEncode_Abracadabra(t *testing.T) {
	enc, err := EncodeString("abracadabra")
	require.NoError(t, err)

	require.Equal(t, 11, enc.Count)
	require.Equal(t, "01101001110011110110100", enc.Bits.String())
	require.Equal(t, []byte{0x69, 0xcf, 0x68}, enc.Bits.Bytes())
	require.Less(t, enc.Bits.Len(), 11*8)

	symbols, err := Decode(enc.Bits, enc.Tree, enc.Count)
	require.NoError(t, err)
	require.Equal(t, "abracadabra", String(symbols))

	d, err := NewDecoder(enc.Table)
	require.NoError(t, err)
	symbols, err = Decode(enc.Bits, d, enc.Count)
	require.NoError(t, err)
	require.Equal(t, "abracadabra", String(symbols))
}

func TestEncode_Empty(t *testing.T) {
	_, err := Encode(nil)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = EncodeString("")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestEncode_SingleSymbol(t *testing.T) {
	enc, err := EncodeString("aaaa")
	require.NoError(t, err)

	require.Equal(t, 1, enc.Table.Len())
	hc, found := enc.Table.Lookup('a')
	require.True(t, found)
	require.Equal(t, MakeCode(1, 0), hc)
	require.Equal(t, "0000", enc.Bits.String())

	symbols, err := Decode(enc.Bits, enc.Tree, enc.Count)
	require.NoError(t, err)
	require.Equal(t, "aaaa", String(symbols))

	d, err := NewDecoder(enc.Table)
	require.NoError(t, err)
	symbols, err = Decode(enc.Bits, d, enc.Count)
	require.NoError(t, err)
	require.Equal(t, "aaaa", String(symbols))
}

func TestDecode_Truncated(t *testing.T) {
	enc, err := EncodeString("abracadabra")
	require.NoError(t, err)

	truncated := enc.Bits.Truncate(enc.Bits.Len() - 1)
	_, err = Decode(truncated, enc.Tree, enc.Count)
	require.ErrorIs(t, err, ErrCorruptStream)

	d, err := NewDecoder(enc.Table)
	require.NoError(t, err)
	_, err = Decode(truncated, d, enc.Count)
	require.ErrorIs(t, err, ErrCorruptStream)
}

func TestDecode_CountMismatch(t *testing.T) {
	enc, err := EncodeString("abracadabra")
	require.NoError(t, err)

	_, err = Decode(enc.Bits, enc.Tree, enc.Count-1)
	require.ErrorIs(t, err, ErrCorruptStream)

	_, err = Decode(enc.Bits, enc.Tree, enc.Count+1)
	require.ErrorIs(t, err, ErrCorruptStream)

	_, err = Decode(enc.Bits, enc.Tree, -1)
	require.ErrorIs(t, err, ErrCorruptStream)

	_, err = Decode(enc.Bits, nil, enc.Count)
	require.ErrorIs(t, err, ErrCorruptStream)

	_, err = Decode(enc.Bits, &Tree{}, 1)
	require.ErrorIs(t, err, ErrCorruptStream)

	_, err = Decode(enc.Bits, (*Tree)(nil), 1)
	require.ErrorIs(t, err, ErrCorruptStream)

	symbols, err := Decode(Bits{}, enc.Tree, 0)
	require.NoError(t, err)
	require.Empty(t, symbols)
}

func TestEncode_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		symbols := randomSymbols(rng, rng.Intn(500)+1, rng.Intn(300)+1)

		enc, err := Encode(symbols)
		require.NoError(t, err)

		// Round trip, through the tree and through the table.
		decoded, err := Decode(enc.Bits, enc.Tree, enc.Count)
		require.NoError(t, err)
		require.Equal(t, symbols, decoded)

		d, err := NewDecoder(enc.Table)
		require.NoError(t, err)
		decoded, err = Decode(enc.Bits, d, enc.Count)
		require.NoError(t, err)
		require.Equal(t, symbols, decoded)

		// Prefix-free.
		list := enc.Table.Symbols()
		for _, a := range list {
			for _, b := range list {
				if a == b {
					continue
				}
				ca, _ := enc.Table.Lookup(a)
				cb, _ := enc.Table.Lookup(b)
				require.False(t, ca.HasPrefix(cb), "%s is a prefix of %s", cb, ca)
			}
		}

		// Optimal, and consistent with the table.
		freqs := CountFrequencies(symbols)
		size, err := enc.Table.EncodedSize(freqs)
		require.NoError(t, err)
		require.Equal(t, uint64(enc.Bits.Len()), size)
		require.Equal(t, huffmanCost(freqs), size)

		// Deterministic.
		again, err := Encode(symbols)
		require.NoError(t, err)
		require.Equal(t, enc.Bits.Bytes(), again.Bits.Bytes())
		rawA, err := json.Marshal(enc.Table)
		require.NoError(t, err)
		rawB, err := json.Marshal(again.Table)
		require.NoError(t, err)
		require.JSONEq(t, string(rawA), string(rawB))

		// Any single-bit truncation is detected.
		_, err = Decode(enc.Bits.Truncate(enc.Bits.Len()-1), enc.Tree, enc.Count)
		require.ErrorIs(t, err, ErrCorruptStream)
	}
}

func TestCodeTable_JSON(t *testing.T) {
	ct := makeAbracadabraTree().CodeTable()

	raw, err := json.Marshal(ct)
	require.NoError(t, err)
	require.JSONEq(t, `{"97":"0","98":"110","99":"1110","100":"1111","114":"10"}`, string(raw))

	var decoded CodeTable
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, ct.Symbols(), decoded.Symbols())
	for _, sym := range ct.Symbols() {
		want, _ := ct.Lookup(sym)
		got, _ := decoded.Lookup(sym)
		require.Equal(t, want, got)
	}

	require.Error(t, json.Unmarshal([]byte(`{"x":"0"}`), &decoded))
	require.Error(t, json.Unmarshal([]byte(`{"97":"02"}`), &decoded))
	require.Error(t, json.Unmarshal([]byte(`{"97":""}`), &decoded))
}
