// Command genbit generates an amd64 bit-reversal routine (ReverseBits64)
// with avo, the same way the teacher's own avo generators produced machine
// code for its bitboard package. Nothing in the module uses its output and
// no go:generate directive invokes it; bit.go's bswap helpers use
// math/bits. Run by hand with:
//
//	go run ./internal/codegen/genbit -out bitreverse_amd64.s
package main

import (
	. "github.com/mmcloughlin/avo/build"
	. "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

func main() {
	TEXT("ReverseBits64", NOSPLIT, "func(v uint64) uint64")
	Comment("Reverse bit order via the doubling swap-mask-and-shift ladder")
	v := Load(Param("v"), GP64())
	tmp := GP64()

	// Swap adjacent bits, then pairs, then nibbles, then bytes (BSWAPQ),
	// the standard doubling-width bit-reversal ladder.
	swapMask(v, tmp, 0x5555555555555555, 1)
	swapMask(v, tmp, 0x3333333333333333, 2)
	swapMask(v, tmp, 0x0f0f0f0f0f0f0f0f, 4)
	BSWAPQ(v)

	Store(v, ReturnIndex(0))
	RET()
	Generate()
}

// swapMask swaps groups of `shift` bits in v selected by mask, in place,
// using tmp as scratch.
func swapMask(v, tmp reg.GPVirtual, mask uint64, shift uint64) {
	lo := GP64()
	MOVQ(Imm(mask), lo)
	hi := GP64()
	MOVQ(Imm(^mask), hi)

	a := GP64()
	MOVQ(v, a)
	ANDQ(lo, a)
	SHLQ(Imm(shift), a)

	b := GP64()
	MOVQ(v, b)
	ANDQ(hi, b)
	SHRQ(Imm(shift), b)

	MOVQ(a, tmp)
	ORQ(b, tmp)
	MOVQ(tmp, v)
}
