package shell

import "testing"

func TestParsePIDDecimal(t *testing.T) {
	v, err := parsePID("42")
	if err != nil || v != 42 {
		t.Fatalf("parsePID(42) = %d, %v", v, err)
	}
}

func TestParsePIDHexPrefix(t *testing.T) {
	v, err := parsePID("0x2A")
	if err != nil || v != 0x2A {
		t.Fatalf("parsePID(0x2A) = %d, %v", v, err)
	}
}

func TestParsePIDRejectsBadHex(t *testing.T) {
	if _, err := parsePID("0xzz"); err == nil {
		t.Fatal("expected an error for malformed hex")
	}
}

func TestParsePIDRejectsBadDecimal(t *testing.T) {
	if _, err := parsePID("not-a-number"); err == nil {
		t.Fatal("expected an error for malformed decimal input")
	}
}

func TestParsePIDWithoutPrefixIsDecimalNotHex(t *testing.T) {
	// "20" has no 0x prefix: it must parse as decimal 20, not be treated
	// as if the first two characters were a stripped hex prefix.
	v, err := parsePID("20")
	if err != nil || v != 20 {
		t.Fatalf("parsePID(20) = %d, %v, want 20", v, err)
	}
}
