package blob

import "testing"

func TestBitstreamRoundTrip(t *testing.T) {
	b := New()
	w, err := NewWriter(b)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	values := []struct {
		v    uint32
		bits int
	}{
		{0x3F, 6},
		{0, 3},
		{7, 3},
		{0xFFFF, 16},
		{1, 1},
		{0, 1},
		{0xDEADBEEF, 32},
	}
	for _, tc := range values {
		if err := w.WriteBits(tc.v, tc.bits); err != nil {
			t.Fatalf("WriteBits(%d, %d): %v", tc.v, tc.bits, err)
		}
	}

	r := NewReader(b)
	for _, tc := range values {
		got, err := r.ReadBits(tc.bits)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", tc.bits, err)
		}
		want := tc.v
		if tc.bits < 32 {
			want &= (uint32(1) << uint(tc.bits)) - 1
		}
		if got != want {
			t.Errorf("ReadBits(%d) = %#x, want %#x", tc.bits, got, want)
		}
	}
}

func TestBlobReserveZerosGrowth(t *testing.T) {
	b := New()
	if err := b.Append([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Reserve(8); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := b.Truncate(8); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	for i := 3; i < 8; i++ {
		if b.Bytes()[i] != 0 {
			t.Errorf("byte %d = %#x, want 0 (reserved-but-unused must read zero)", i, b.Bytes()[i])
		}
	}
}

func TestBorrowedBlobRejectsMutation(t *testing.T) {
	b := WrapBorrowed([]byte{1, 2, 3})
	if _, err := NewWriter(b); err == nil {
		t.Error("NewWriter on a borrowed blob should fail")
	}
	if err := b.Append([]byte{4}); err == nil {
		t.Error("Append on a borrowed blob should fail")
	}
}
