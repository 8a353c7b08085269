package huffman

import (
	"errors"
	"strings"
	"testing"
)

func TestTree_MarshalBinary(t *testing.T) {
	tree := makeAbracadabraTree()

	raw, err := tree.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	// 4 internal nodes of 1 bit, 5 leaves of 32 bits: 164 bits.
	if len(raw) != 21 {
		t.Errorf("expected 21 bytes, got %d", len(raw))
	}
	if raw[0] != 0x40 {
		t.Errorf("expected first byte 0x40 (internal, leaf, then 'a'), got %#02x", raw[0])
	}

	var decoded Tree
	if err := decoded.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}

	var expect, actual strings.Builder
	_, _ = tree.CodeTable().Dump(&expect)
	_, _ = decoded.CodeTable().Dump(&actual)
	if expect.String() != actual.String() {
		t.Errorf("wrong code table after round trip:\n\texpect: %s\n\tactual: %s", expect.String(), actual.String())
	}
	if decoded.NumLeaves() != 5 || decoded.Depth() != 4 {
		t.Errorf("unexpected tree %s", &decoded)
	}
}

func TestTree_MarshalBinary_SingleSymbol(t *testing.T) {
	tree, _ := BuildTree(FrequencyTable{MaxSymbol: 7})

	raw, err := tree.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	if expect := []byte{0xff, 0xff, 0xff, 0xff}; string(raw) != string(expect) {
		t.Errorf("wrong bytes:\n\texpect: %#v\n\tactual: %#v", expect, raw)
	}

	var decoded Tree
	if err := decoded.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	bits, _ := NewBits([]byte{0x00}, 2)
	symbols, err := Decode(bits, &decoded, 2)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != MaxSymbol || symbols[1] != MaxSymbol {
		t.Errorf("wrong symbols %v", symbols)
	}
}

func TestTree_UnmarshalBinary_Invalid(t *testing.T) {
	raw, _ := makeAbracadabraTree().MarshalBinary()

	type testRow struct {
		name string
		data []byte
	}

	testData := [...]testRow{
		{"empty", nil},
		{"truncated", raw[:len(raw)-1]},
		{"trailing", append(append([]byte(nil), raw...), 0x00)},
		{"padding", append(append([]byte(nil), raw[:len(raw)-1]...), raw[len(raw)-1]|0x01)},
		{"duplicate", []byte{0x40, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, 0x00}},
		{"deep", make([]byte, 9)},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var tree Tree
			err := tree.UnmarshalBinary(row.data)
			if !errors.Is(err, ErrCorruptStream) {
				t.Errorf("expected ErrCorruptStream, got %v", err)
			}
		})
	}
}
