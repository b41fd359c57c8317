package chesscore

// UnmakeInfo captures everything MakeMove doesn't reconstruct from the
// Move itself, so UnmakeMove can restore bit-exact state (§3, §4.4,
// property 2 in §8): the captured piece (if any), the prior castling
// rights, prior en-passant target, prior half-move clock, prior full-move
// count and prior Zobrist hash.
type UnmakeInfo struct {
	captured       Piece
	capturedSquare Square
	prevCastle     uint8
	prevEP         Square
	prevHalfMove   int
	prevFullMove   int
	prevHash       uint64
}

// MakeMove mutates pos in place to reflect playing m, returning the
// information UnmakeMove needs to reverse it exactly.
func MakeMove(pos *Position, m Move) UnmakeInfo {
	undo := UnmakeInfo{
		prevCastle:   pos.castleRights,
		prevEP:       pos.epSquare,
		prevHalfMove: pos.halfMoveClock,
		prevFullMove: pos.fullMoveCount,
		prevHash:     pos.hash,
	}
	undo.captured, undo.capturedSquare = applyMove(pos, m)
	return undo
}

// UnmakeMove reverses a prior MakeMove(pos, m), restoring pos to exactly
// the state it had beforehand, including the Zobrist hash.
func UnmakeMove(pos *Position, m Move, undo UnmakeInfo) {
	us := pos.turn.Other() // mover's color: move already flipped turn
	from, to := m.From(), m.To()
	moving := m.MovingKind()

	// Undo promotion: the piece currently on `to` is the promoted kind;
	// put a pawn back on `from`.
	destKind := moving
	if m.HasFlag(FlagPromotion) {
		destKind = m.PromoKind()
	}
	destPiece := Piece{Color: us, Kind: destKind}
	pos.board.remove(to, destPiece)
	pos.board.place(from, Piece{Color: us, Kind: moving})

	if !undo.captured.IsEmpty() {
		pos.board.place(undo.capturedSquare, undo.captured)
	}

	if m.HasFlag(FlagCastleKS) || m.HasFlag(FlagCastleQS) {
		rank := from.Rank()
		var rookFrom, rookTo Square
		if m.HasFlag(FlagCastleKS) {
			rookFrom, rookTo = NewSquare(7, rank), NewSquare(5, rank)
		} else {
			rookFrom, rookTo = NewSquare(0, rank), NewSquare(3, rank)
		}
		pos.board.remove(rookTo, Piece{Color: us, Kind: Rook})
		pos.board.place(rookFrom, Piece{Color: us, Kind: Rook})
	}

	pos.turn = us
	pos.castleRights = undo.prevCastle
	pos.epSquare = undo.prevEP
	pos.halfMoveClock = undo.prevHalfMove
	pos.fullMoveCount = undo.prevFullMove
	pos.hash = undo.prevHash
}

// applyMove performs the actual board/state mutation shared by MakeMove
// and the speculative legality check in movegen.go, incrementally
// maintaining the Zobrist hash as it goes.
func applyMove(pos *Position, m Move) (captured Piece, capturedSquare Square) {
	us := pos.turn
	from, to := m.From(), m.To()
	moving := Piece{Color: us, Kind: m.MovingKind()}

	h := pos.hash
	h ^= zobristCastle[pos.castleRights]
	if epCaptureIsLegal(pos) {
		h ^= zobristEPFile[pos.epSquare.File()]
	}

	capturedSquare = to
	captured = NoPiece
	if m.HasFlag(FlagEPCapture) {
		capSq := Square(int(to) - pawnForward(us))
		captured = Piece{Color: us.Other(), Kind: Pawn}
		capturedSquare = capSq
		pos.board.remove(capSq, captured)
		h ^= zobristPieceSquare[pieceZobristIndex(captured)][capSq]
	} else if m.HasFlag(FlagCapture) {
		captured = pos.board.pieceAt(to)
		pos.board.remove(to, captured)
		h ^= zobristPieceSquare[pieceZobristIndex(captured)][to]
	}

	pos.board.remove(from, moving)
	h ^= zobristPieceSquare[pieceZobristIndex(moving)][from]

	placed := moving
	if m.HasFlag(FlagPromotion) {
		placed = Piece{Color: us, Kind: m.PromoKind()}
	}
	pos.board.place(to, placed)
	h ^= zobristPieceSquare[pieceZobristIndex(placed)][to]

	if m.HasFlag(FlagCastleKS) || m.HasFlag(FlagCastleQS) {
		rank := from.Rank()
		var rookFrom, rookTo Square
		if m.HasFlag(FlagCastleKS) {
			rookFrom, rookTo = NewSquare(7, rank), NewSquare(5, rank)
		} else {
			rookFrom, rookTo = NewSquare(0, rank), NewSquare(3, rank)
		}
		rook := Piece{Color: us, Kind: Rook}
		pos.board.remove(rookFrom, rook)
		pos.board.place(rookTo, rook)
		h ^= zobristPieceSquare[pieceZobristIndex(rook)][rookFrom]
		h ^= zobristPieceSquare[pieceZobristIndex(rook)][rookTo]
	}

	pos.castleRights &= castleRightsMaskAfter(from, to)
	h ^= zobristCastle[pos.castleRights]

	if m.HasFlag(FlagEPMove) {
		pos.epSquare = Square(int(from) + pawnForward(us))
	} else {
		pos.epSquare = NoSquare
	}
	if pos.epSquare.Valid() {
		// epCaptureIsLegal reads pos.turn which hasn't flipped yet, but
		// expects the opponent-to-move's perspective; flip temporarily.
		pos.turn = us.Other()
		if epCaptureIsLegal(pos) {
			h ^= zobristEPFile[pos.epSquare.File()]
		}
		pos.turn = us
	}

	if moving.Kind == Pawn || captured != NoPiece {
		pos.halfMoveClock = 0
	} else {
		pos.halfMoveClock++
	}
	if us == Black {
		pos.fullMoveCount++
	}

	pos.turn = us.Other()
	h ^= zobristSideToMove
	pos.hash = h
	return captured, capturedSquare
}

func pawnForward(c Color) int {
	if c == White {
		return 8
	}
	return -8
}

// castleRightsMaskAfter returns the AND-mask clearing any castling rights
// invalidated by a piece leaving `from` or a capture landing on `to`
// (king move, rook move off its original square, or rook captured on its
// original square).
func castleRightsMaskAfter(from, to Square) uint8 {
	mask := uint8(0xFF)
	clear := func(sq Square, bit uint8) {
		if sq == from || sq == to {
			mask &^= bit
		}
	}
	clear(NewSquare(4, 0), CastleWhiteKS|CastleWhiteQS)
	clear(NewSquare(7, 0), CastleWhiteKS)
	clear(NewSquare(0, 0), CastleWhiteQS)
	clear(NewSquare(4, 7), CastleBlackKS|CastleBlackQS)
	clear(NewSquare(7, 7), CastleBlackKS)
	clear(NewSquare(0, 7), CastleBlackQS)
	return mask
}
