package huffman

import (
	"testing"
)

func TestCode_String(t *testing.T) {
	type testRow struct {
		hc     Code
		expect string
	}

	testData := [...]testRow{
		{MakeCode(0, 0), `""`},
		{MakeCode(1, 0), `"0"`},
		{MakeCode(1, 1), `"1"`},
		{MakeCode(4, 0x3), `"0011"`},
		{MakeCode(8, 0xa5), `"10100101"`},
	}
	for _, row := range testData {
		if actual := row.hc.String(); actual != row.expect {
			t.Errorf("Code{%d, %#x}: expected %s, got %s", row.hc.Size, row.hc.Bits, row.expect, actual)
		}
	}
}

func TestParseCode(t *testing.T) {
	hc, err := ParseCode("0110")
	if err != nil {
		t.Fatalf("ParseCode failed: %v", err)
	}
	if expect := MakeCode(4, 0x6); hc != expect {
		t.Errorf("expected %s, got %s", expect, hc)
	}
	for i, want := range []uint{0, 1, 1, 0} {
		if got := hc.Bit(byte(i)); got != want {
			t.Errorf("Bit(%d): expected %d, got %d", i, want, got)
		}
	}

	if _, err := ParseCode("01x"); err == nil {
		t.Errorf("expected error for invalid character")
	}
	if _, err := ParseCode(string(make([]byte, 65))); err == nil {
		t.Errorf("expected error for overlong code")
	}
}

func TestCode_HasPrefix(t *testing.T) {
	type testRow struct {
		code   string
		prefix string
		expect bool
	}

	testData := [...]testRow{
		{"0110", "", true},
		{"0110", "0", true},
		{"0110", "011", true},
		{"0110", "0110", true},
		{"0110", "1", false},
		{"0110", "0111", false},
		{"01", "011", false},
	}
	for _, row := range testData {
		hc, _ := ParseCode(row.code)
		prefix, _ := ParseCode(row.prefix)
		if actual := hc.HasPrefix(prefix); actual != row.expect {
			t.Errorf("%q.HasPrefix(%q): expected %v, got %v", row.code, row.prefix, row.expect, actual)
		}
	}
}
