package buf

import "testing"

func TestU64LE(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U64LE(data); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}
	if U64LE([]byte{0xAA}) != 0 {
		t.Fatalf("short reads should return 0")
	}
}

func TestPutU64LE(t *testing.T) {
	b := make([]byte, 8)
	if !PutU64LE(b, 0x0102030405060708) || U64LE(b) != 0x0102030405060708 {
		t.Fatalf("PutU64LE round trip failed: %x", b)
	}
	if PutU64LE(b[:7], 1) {
		t.Fatalf("short writes should fail")
	}
}
