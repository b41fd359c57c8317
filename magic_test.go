package chesscore

import (
	"math/rand"
	"testing"

	"github.com/rookwing/chesscore/internal/slideref"
)

// TestMagicAttacksAgainstSlideRef cross-checks the magic-bitboard tables
// against slideref's independently-derived kindergarten-bitboard
// formula, for random occupancies on every square.
func TestMagicAttacksAgainstSlideRef(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for sq := 0; sq < 64; sq++ {
		for i := 0; i < 50; i++ {
			occ := bitboard(rng.Uint64())
			gotBishop := bishopAttacks(Square(sq), occ)
			wantBishop := slideref.BishopAttacks(uint64(occ), sq)
			if uint64(gotBishop) != wantBishop {
				t.Fatalf("bishopAttacks(sq=%d, occ=%#x) = %#x, want %#x", sq, occ, gotBishop, wantBishop)
			}
			gotRook := rookAttacks(Square(sq), occ)
			wantRook := slideref.RookAttacks(uint64(occ), sq)
			if uint64(gotRook) != wantRook {
				t.Fatalf("rookAttacks(sq=%d, occ=%#x) = %#x, want %#x", sq, occ, gotRook, wantRook)
			}
		}
	}
}
