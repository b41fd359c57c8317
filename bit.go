package chesscore

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// Backend names the bit-primitive implementation chosen at process init,
// mirroring the teacher's bitflip package dispatch between a SIMD
// (avo-generated) routine and a portable SWAR fallback.
type Backend string

const (
	// BackendHardware means the host CPU exposes a native POPCNT/BSWAP
	// instruction and the runtime's intrinsic is used directly.
	BackendHardware Backend = "hardware"
	// BackendSWAR means the portable bit-trick fallback is in use.
	BackendSWAR Backend = "swar"
)

var chosenBackend = detectBackend()

func detectBackend() Backend {
	if cpu.X86.HasPOPCNT {
		return BackendHardware
	}
	return BackendSWAR
}

// ChosenBackend reports which bit-primitive backend this process selected
// at startup (§4.1: "Chosen backend is recorded and queryable").
func ChosenBackend() Backend { return chosenBackend }

// popcount returns the number of set bits in x.
//
// math/bits.OnesCount64 is compiled to the hardware POPCNT instruction by
// the Go compiler whenever the target supports it; swarPopcount64 is the
// portable identity used when the host CPU does not report POPCNT.
func popcount(x uint64) uint32 {
	if chosenBackend == BackendHardware {
		return uint32(bits.OnesCount64(x))
	}
	return swarPopcount64(x)
}

// swarPopcount64 implements the classic SIMD-within-a-register popcount
// identity from §4.1.
func swarPopcount64(x uint64) uint32 {
	const m1 = 0x5555555555555555
	const m2 = 0x3333333333333333
	const m4 = 0x0f0f0f0f0f0f0f0f
	const h01 = 0x0101010101010101
	x -= (x >> 1) & m1
	x = (x & m2) + ((x >> 2) & m2)
	x = (x + (x >> 4)) & m4
	return uint32((x * h01) >> 56)
}

// lsb returns the index (0..63) of the least significant set bit of x.
// Undefined (returns 64) when x is zero.
func lsb(x uint64) uint32 {
	if x == 0 {
		return 64
	}
	return uint32(bits.TrailingZeros64(x))
}

// lsbPop clears the least significant set bit of *x in place and returns
// its index along with the isolated bit that was cleared.
func lsbPop(x *uint64) (index uint32, isolated uint64) {
	v := *x
	isolated = v & -v
	index = lsb(v)
	*x = v &^ isolated
	return
}

func bswap16(x uint16) uint16 { return bits.ReverseBytes16(x) }
func bswap32(x uint32) uint32 { return bits.ReverseBytes32(x) }
func bswap64(x uint64) uint64 { return bits.ReverseBytes64(x) }
