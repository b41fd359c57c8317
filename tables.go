package chesscore

// Static attack/ray tables (§4.2, C2), computed once at package init and
// never mutated afterward so they may be read without locking (§5).

var (
	knightAttacks [64]bitboard
	kingAttacks   [64]bitboard
	pawnAttacks   [2][64]bitboard // indexed by Color

	rankMask [64]bitboard
	fileMask [64]bitboard
	diagMask [64]bitboard // "/" diagonal through sq
	antiMask [64]bitboard // "\" anti-diagonal through sq
)

var knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingOffsets = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

func inBounds(f, r int) bool { return f >= 0 && f < 8 && r >= 0 && r < 8 }

func init() {
	initLeaperTables()
	initRayTables()
	initMagicTables()
	initZobristKeys()
}

func initLeaperTables() {
	for s := 0; s < 64; s++ {
		sq := Square(s)
		f, r := int(sq.File()), int(sq.Rank())
		var n, k bitboard
		for _, o := range knightOffsets {
			if nf, nr := f+o[0], r+o[1]; inBounds(nf, nr) {
				n |= bbForSquare(NewSquare(File(nf), Rank(nr)))
			}
		}
		for _, o := range kingOffsets {
			if nf, nr := f+o[0], r+o[1]; inBounds(nf, nr) {
				k |= bbForSquare(NewSquare(File(nf), Rank(nr)))
			}
		}
		knightAttacks[s] = n
		kingAttacks[s] = k

		var wp, bp bitboard
		if inBounds(f-1, r+1) {
			wp |= bbForSquare(NewSquare(File(f-1), Rank(r+1)))
		}
		if inBounds(f+1, r+1) {
			wp |= bbForSquare(NewSquare(File(f+1), Rank(r+1)))
		}
		if inBounds(f-1, r-1) {
			bp |= bbForSquare(NewSquare(File(f-1), Rank(r-1)))
		}
		if inBounds(f+1, r-1) {
			bp |= bbForSquare(NewSquare(File(f+1), Rank(r-1)))
		}
		pawnAttacks[White][s] = wp
		pawnAttacks[Black][s] = bp
	}
}

func initRayTables() {
	for s := 0; s < 64; s++ {
		sq := Square(s)
		f, r := int(sq.File()), int(sq.Rank())
		for nf := 0; nf < 8; nf++ {
			fileMask[s] |= bbForSquare(NewSquare(File(nf), Rank(r)))
		}
		for nr := 0; nr < 8; nr++ {
			rankMask[s] |= bbForSquare(NewSquare(File(f), Rank(nr)))
		}
		for nf, nr := f, r; inBounds(nf, nr); nf, nr = nf+1, nr+1 {
			diagMask[s] |= bbForSquare(NewSquare(File(nf), Rank(nr)))
		}
		for nf, nr := f, r; inBounds(nf, nr); nf, nr = nf-1, nr-1 {
			diagMask[s] |= bbForSquare(NewSquare(File(nf), Rank(nr)))
		}
		for nf, nr := f, r; inBounds(nf, nr); nf, nr = nf+1, nr-1 {
			antiMask[s] |= bbForSquare(NewSquare(File(nf), Rank(nr)))
		}
		for nf, nr := f, r; inBounds(nf, nr); nf, nr = nf-1, nr+1 {
			antiMask[s] |= bbForSquare(NewSquare(File(nf), Rank(nr)))
		}
	}
}
