package chesscore

// ISAAC64 (Bob Jenkins) deterministic 64-bit PRNG, used to generate the
// Zobrist key table (C3, §4.3) and, at init, the magic-bitboard search
// (C2). Single-threaded: callers that need it from multiple goroutines
// must serialise access or use a private Rand64 per goroutine.
type Rand64 struct {
	mem  [256]uint64
	a, b, c uint64
	results [256]uint64
	pos     int
}

// NewRand64 seeds a stream from a 64-bit value via ISAAC64's standard
// scrambling init routine.
func NewRand64(seed uint64) *Rand64 {
	r := &Rand64{}
	var mm [8]uint64
	for i := range mm {
		mm[i] = 0x9e3779b97f4a7c13 // golden ratio, ISAAC's magic constant
	}
	for i := 0; i < 4; i++ {
		mix(&mm)
	}
	mm[0] += seed
	for i := 0; i < 2; i++ {
		for j := 0; j < 256; j += 8 {
			for k := 0; k < 8; k++ {
				mm[k] += r.mem[j+k]
			}
			mix(&mm)
			for k := 0; k < 8; k++ {
				r.mem[j+k] = mm[k]
			}
		}
	}
	r.pos = 256
	return r
}

func mix(m *[8]uint64) {
	m[0] -= m[4]
	m[5] ^= m[7] >> 9
	m[7] += m[0]
	m[1] -= m[5]
	m[6] ^= m[0] << 9
	m[0] += m[1]
	m[2] -= m[6]
	m[7] ^= m[1] >> 23
	m[1] += m[2]
	m[3] -= m[7]
	m[0] ^= m[2] << 15
	m[2] += m[3]
	m[4] -= m[0]
	m[1] ^= m[3] >> 14
	m[3] += m[4]
	m[5] -= m[1]
	m[2] ^= m[4] << 20
	m[4] += m[5]
	m[6] -= m[2]
	m[3] ^= m[5] >> 17
	m[5] += m[6]
	m[7] -= m[3]
	m[4] ^= m[6] << 14
	m[6] += m[7]
}

func (r *Rand64) generate() {
	r.c++
	r.b += r.c
	for i := 0; i < 256; i++ {
		x := r.mem[i]
		switch i % 4 {
		case 0:
			r.a = ^(r.a ^ (r.a << 21))
		case 1:
			r.a ^= r.a >> 5
		case 2:
			r.a ^= r.a << 12
		case 3:
			r.a ^= r.a >> 33
		}
		r.a += r.mem[(i+128)%256]
		y := r.mem[(x>>3)%256] + r.a + r.b
		r.mem[i] = y
		r.b = r.mem[(y>>11)%256] + x
		r.results[i] = r.b
	}
	r.pos = 0
}

// Uint64 returns the next value in the stream.
func (r *Rand64) Uint64() uint64 {
	if r.pos >= 256 {
		r.generate()
	}
	v := r.results[r.pos]
	r.pos++
	return v
}

// SparseUint64 returns a 64-bit value with relatively few set bits, which
// is what magic-multiplier search wants as candidates.
func (r *Rand64) SparseUint64() uint64 {
	return r.Uint64() & r.Uint64() & r.Uint64()
}
