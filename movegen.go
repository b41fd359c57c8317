package chesscore

// Move generation (§4.4). Pseudo-legal moves are generated per piece kind
// using the magic-bitboard attack tables (C2), then filtered for king
// safety by speculatively applying each move and testing whether it
// leaves the mover's own king in check — the simplest implementation that
// is unconditionally correct against the perft suite in §8, including the
// en-passant discovered-check case (S4), which falls out of the same
// filter without special-casing.
//
// GenerateMoves never sets FlagCheck, FlagDoubleCheck or FlagMate; callers
// complete those via Position.Complete (see san.go).

// GenerateMoves returns every legal move available to the side to move.
func GenerateMoves(pos *Position) []Move {
	pseudo := pseudoMoves(pos)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if moveIsLegal(pos, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

func moveIsLegal(pos *Position, m Move) bool {
	next := pos.clone()
	applyMove(next, m)
	return !next.board.isAttacked(next.board.King(pos.turn), pos.turn.Other())
}

func pseudoMoves(pos *Position) []Move {
	moves := make([]Move, 0, 48)
	us, them := pos.turn, pos.turn.Other()
	occ := pos.board.Occupied()
	ownOcc := pos.board.OccupiedBy(us)
	theirOcc := pos.board.OccupiedBy(them)

	genPawnMoves(pos, &moves, us, occ, theirOcc)
	genLeaperMoves(&moves, pos.board.bbFor(Knight, us), knightAttacks, ^ownOcc, theirOcc, Knight)
	genLeaperMoves(&moves, pos.board.bbFor(King, us), kingAttacks, ^ownOcc, theirOcc, King)
	genSliderMoves(&moves, pos.board.bbFor(Bishop, us), occ, ^ownOcc, theirOcc, Bishop, bishopAttacks)
	genSliderMoves(&moves, pos.board.bbFor(Rook, us), occ, ^ownOcc, theirOcc, Rook, rookAttacks)
	genSliderMoves(&moves, pos.board.bbFor(Queen, us), occ, ^ownOcc, theirOcc, Queen, queenAttacks)
	genCastleMoves(pos, &moves, us, occ)
	return moves
}

var promoKinds = [4]Kind{Queen, Rook, Bishop, Knight}

func genPawnMoves(pos *Position, moves *[]Move, us Color, occ, theirOcc bitboard) {
	pawns := pos.board.bbFor(Pawn, us)
	forward := 8
	startRank, promoRank := Rank(1), Rank(7)
	if us == Black {
		forward = -8
		startRank, promoRank = Rank(6), Rank(0)
	}
	for v := uint64(pawns); v != 0; {
		idx, _ := lsbPop(&v)
		from := Square(idx)
		to := Square(int(from) + forward)
		if !to.Valid() {
			continue
		}
		if !occ.has(to) {
			if to.Rank() == promoRank {
				for _, pk := range promoKinds {
					*moves = append(*moves, NewMove(from, to, Pawn, pk, FlagPromotion))
				}
			} else {
				*moves = append(*moves, NewMove(from, to, Pawn, NoKind, 0))
				if from.Rank() == startRank {
					to2 := Square(int(from) + 2*forward)
					if to2.Valid() && !occ.has(to2) {
						*moves = append(*moves, NewMove(from, to2, Pawn, NoKind, FlagEPMove))
					}
				}
			}
		}
		caps := pawnAttacks[us][from] & theirOcc
		for cv := uint64(caps); cv != 0; {
			cidx, _ := lsbPop(&cv)
			cto := Square(cidx)
			if cto.Rank() == promoRank {
				for _, pk := range promoKinds {
					*moves = append(*moves, NewMove(from, cto, Pawn, pk, FlagPromotion|FlagCapture))
				}
			} else {
				*moves = append(*moves, NewMove(from, cto, Pawn, NoKind, FlagCapture))
			}
		}
		if pos.epSquare.Valid() && pawnAttacks[us][from].has(pos.epSquare) {
			*moves = append(*moves, NewMove(from, pos.epSquare, Pawn, NoKind, FlagEPCapture|FlagCapture))
		}
	}
}

func genLeaperMoves(moves *[]Move, bb bitboard, attacks [64]bitboard, allowed, theirOcc bitboard, kind Kind) {
	for v := uint64(bb); v != 0; {
		idx, _ := lsbPop(&v)
		from := Square(idx)
		targets := attacks[from] & allowed
		for tv := uint64(targets); tv != 0; {
			tidx, _ := lsbPop(&tv)
			to := Square(tidx)
			flags := Flag(0)
			if theirOcc.has(to) {
				flags = FlagCapture
			}
			*moves = append(*moves, NewMove(from, to, kind, NoKind, flags))
		}
	}
}

func genSliderMoves(moves *[]Move, bb, occ, allowed, theirOcc bitboard, kind Kind, attacksFn func(Square, bitboard) bitboard) {
	for v := uint64(bb); v != 0; {
		idx, _ := lsbPop(&v)
		from := Square(idx)
		targets := attacksFn(from, occ) & allowed
		for tv := uint64(targets); tv != 0; {
			tidx, _ := lsbPop(&tv)
			to := Square(tidx)
			flags := Flag(0)
			if theirOcc.has(to) {
				flags = FlagCapture
			}
			*moves = append(*moves, NewMove(from, to, kind, NoKind, flags))
		}
	}
}

func genCastleMoves(pos *Position, moves *[]Move, us Color, occ bitboard) {
	them := us.Other()
	if pos.board.isAttacked(pos.board.King(us), them) {
		return // can't castle out of check
	}
	rank := Rank(0)
	if us == Black {
		rank = Rank(7)
	}
	e := NewSquare(File(4), rank)
	f := NewSquare(File(5), rank)
	g := NewSquare(File(6), rank)
	d := NewSquare(File(3), rank)
	c := NewSquare(File(2), rank)
	bSq := NewSquare(File(1), rank)

	ksRight, qsRight := CastleWhiteKS, CastleWhiteQS
	if us == Black {
		ksRight, qsRight = CastleBlackKS, CastleBlackQS
	}
	if pos.castleRights&uint8(ksRight) != 0 &&
		!occ.has(f) && !occ.has(g) &&
		!pos.board.isAttacked(f, them) && !pos.board.isAttacked(g, them) {
		*moves = append(*moves, NewMove(e, g, King, NoKind, FlagCastleKS))
	}
	if pos.castleRights&uint8(qsRight) != 0 &&
		!occ.has(d) && !occ.has(c) && !occ.has(bSq) &&
		!pos.board.isAttacked(d, them) && !pos.board.isAttacked(c, them) {
		*moves = append(*moves, NewMove(e, c, King, NoKind, FlagCastleQS))
	}
}

// Perft counts leaf nodes of the legal-move tree to the given depth (§8,
// GLOSSARY). It is pure: it never mutates the Position passed by the
// caller, applying and reverting each move via make/unmake internally.
func Perft(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := GenerateMoves(pos)
	if depth == 1 {
		return uint64(len(moves))
	}
	var count uint64
	for _, m := range moves {
		undo := MakeMove(pos, m)
		count += Perft(pos, depth-1)
		UnmakeMove(pos, m, undo)
	}
	return count
}
