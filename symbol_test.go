package huffman

import (
	"errors"
	"testing"

	"golang.org/x/exp/slices"
)

func TestSymbols(t *testing.T) {
	symbols := SymbolsFromString("héllo, 世界")
	if len(symbols) != 9 {
		t.Fatalf("expected 9 symbols, got %d", len(symbols))
	}
	if actual := String(symbols); actual != "héllo, 世界" {
		t.Errorf("expected round trip, got %q", actual)
	}
	if _, err := Bytes(symbols); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}

	data := []byte{0x00, 0x7f, 0x80, 0xff}
	symbols = SymbolsFromBytes(data)
	if !slices.Equal(symbols, []Symbol{0, 127, 128, 255}) {
		t.Errorf("wrong symbols %v", symbols)
	}
	actual, err := Bytes(symbols)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(actual) != string(data) {
		t.Errorf("expected %#v, got %#v", data, actual)
	}
}
