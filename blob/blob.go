// Package blob implements an owned-or-borrowed byte buffer and a
// big-endian bit-level stream over it (§4.5, C5). It underlies the
// move/annotation codec in package store.
package blob

import (
	"fmt"
)

// Blob is a contiguous byte sequence that is either owned (growable,
// mutable) or borrowed (a read-only view over memory owned elsewhere).
// Ownership is fixed at construction and never changes.
type Blob struct {
	data  []byte
	owned bool
}

// New returns an empty, owned Blob.
func New() *Blob {
	return &Blob{owned: true}
}

// WrapBorrowed returns a read-only Blob viewing data without copying it.
// Append on the result always fails, as does a Reserve beyond the current
// capacity or a Truncate that would grow it.
func WrapBorrowed(data []byte) *Blob {
	return &Blob{data: data, owned: false}
}

// NewOwnedCopy returns an owned Blob holding a copy of data.
func NewOwnedCopy(data []byte) *Blob {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Blob{data: cp, owned: true}
}

// Owned reports whether the blob may be mutated/grown.
func (b *Blob) Owned() bool { return b.owned }

// Len returns the current length.
func (b *Blob) Len() int { return len(b.data) }

// Cap returns the current capacity.
func (b *Blob) Cap() int { return cap(b.data) }

// Bytes returns the blob's current contents. For a borrowed blob this is
// the original backing slice; callers must not retain it past the
// borrowed memory's lifetime.
func (b *Blob) Bytes() []byte { return b.data }

// Set replaces the blob's contents without changing its ownership. If
// copyBytes is true (or the blob is owned), the bytes are copied in;
// otherwise the borrowed blob becomes a view over data.
func (b *Blob) Set(data []byte, copyBytes bool) {
	if copyBytes || b.owned {
		cp := make([]byte, len(data))
		copy(cp, data)
		b.data = cp
		return
	}
	b.data = data
}

// Reserve grows capacity to at least n bytes, zero-filling the newly
// reserved-but-unused region — reserved-but-unused bytes always read as
// zero (§9 open question, resolved explicitly). It is a no-op when
// n <= Cap(). It errors when the blob is not owned.
func (b *Blob) Reserve(n int) error {
	if n <= cap(b.data) {
		return nil
	}
	if !b.owned {
		return fmt.Errorf("blob: cannot reserve on a borrowed blob")
	}
	grown := make([]byte, len(b.data), n)
	copy(grown, b.data)
	b.data = grown
	return nil
}

// Append copies data onto the end of the blob, growing as needed. Errors
// if the blob is not owned.
func (b *Blob) Append(data []byte) error {
	if !b.owned {
		return fmt.Errorf("blob: cannot append to a borrowed blob")
	}
	need := len(b.data) + len(data)
	if err := b.Reserve(need); err != nil {
		return err
	}
	b.data = append(b.data, data...)
	return nil
}

// Truncate sets the length to n, which must not exceed the capacity.
// Growing via Truncate (n > Len(), n <= Cap()) exposes zero bytes, per
// the Reserve contract.
func (b *Blob) Truncate(n int) error {
	if n > cap(b.data) {
		return fmt.Errorf("blob: truncate length %d exceeds capacity %d", n, cap(b.data))
	}
	if !b.owned && n > len(b.data) {
		return fmt.Errorf("blob: cannot grow a borrowed blob")
	}
	old := len(b.data)
	b.data = b.data[:n]
	if n > old {
		for i := old; i < n; i++ {
			b.data[i] = 0
		}
	}
	return nil
}
