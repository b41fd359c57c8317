package chesscore

// Zobrist key table (§3, §4.3, §4.4): generated once at process init from
// the ISAAC64 stream and never mutated afterward. Keys are process-local
// constants — stable across make/unmake within a run, but not required
// to be portable across builds (§3).

const zobristSeed = 0xC0FFEE_FACADE_1

var (
	zobristPieceSquare [12][64]uint64 // index: piece.Color*6+piece.Kind-1
	zobristSideToMove  uint64
	zobristCastle      [16]uint64 // indexed by the 4-bit castling rights mask
	zobristEPFile      [8]uint64
)

func pieceZobristIndex(p Piece) int {
	return int(p.Color)*6 + int(p.Kind) - 1
}

func initZobristKeys() {
	rng := NewRand64(zobristSeed)
	for pi := 0; pi < 12; pi++ {
		for sq := 0; sq < 64; sq++ {
			zobristPieceSquare[pi][sq] = rng.Uint64()
		}
	}
	zobristSideToMove = rng.Uint64()
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEPFile {
		zobristEPFile[i] = rng.Uint64()
	}
}

// hashFull recomputes the Zobrist hash of pos from scratch; used to
// validate the incremental hash maintained by make/unmake (§8 property 1).
func hashFull(pos *Position) uint64 {
	var h uint64
	for sq := 0; sq < 64; sq++ {
		p := pos.board.pieceAt(Square(sq))
		if p.IsEmpty() {
			continue
		}
		h ^= zobristPieceSquare[pieceZobristIndex(p)][sq]
	}
	if pos.turn == Black {
		h ^= zobristSideToMove
	}
	h ^= zobristCastle[pos.castleRights]
	if pos.epSquare.Valid() && epCaptureIsLegal(pos) {
		h ^= zobristEPFile[pos.epSquare.File()]
	}
	return h
}

// epCaptureIsLegal reports whether the current en-passant target square
// names a real pseudo-legal capture, per the hash invariant in §3: the
// ep-file key participates in the hash only when such a capture exists.
func epCaptureIsLegal(pos *Position) bool {
	if !pos.epSquare.Valid() {
		return false
	}
	attackers := pawnAttacks[pos.turn.Other()][pos.epSquare] & pos.board.bbFor(Pawn, pos.turn)
	return attackers != 0
}
