package chesscore

import "strings"

// SAN renders m in Standard Algebraic Notation relative to pos, using
// minimum disambiguation — file only if unique among other same-kind
// movers to the same square, else rank, else both (§4.4). Check/mate
// suffixes are only appended if the corresponding flags are set on m, so
// callers should pass a move already completed via Position.Complete.
func (pos *Position) SAN(m Move) string {
	if m.HasFlag(FlagCastleKS) {
		return appendSuffix("O-O", m)
	}
	if m.HasFlag(FlagCastleQS) {
		return appendSuffix("O-O-O", m)
	}

	var sb strings.Builder
	kind := m.MovingKind()
	if kind == Pawn {
		if m.HasFlag(FlagCapture) {
			sb.WriteString(m.From().File().String())
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if m.HasFlag(FlagPromotion) {
			sb.WriteString("=" + m.PromoKind().String())
		}
		return appendSuffix(sb.String(), m)
	}

	sb.WriteString(kind.String())
	sb.WriteString(disambiguation(pos, m))
	if m.HasFlag(FlagCapture) {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To().String())
	return appendSuffix(sb.String(), m)
}

func appendSuffix(s string, m Move) string {
	if m.HasFlag(FlagMate) {
		return s + "#"
	}
	if m.HasFlag(FlagCheck) || m.HasFlag(FlagDoubleCheck) {
		return s + "+"
	}
	return s
}

// disambiguation finds the minimal from-square qualifier needed among
// other legal moves of the same kind landing on the same square.
func disambiguation(pos *Position, m Move) string {
	var sameFile, sameRank, other bool
	for _, o := range GenerateMoves(pos) {
		if o.MovingKind() != m.MovingKind() || o.To() != m.To() || o.From() == m.From() {
			continue
		}
		other = true
		if o.From().File() == m.From().File() {
			sameFile = true
		}
		if o.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}
	if !other {
		return ""
	}
	if !sameFile {
		return m.From().File().String()
	}
	if !sameRank {
		return m.From().Rank().String()
	}
	return m.From().String()
}

// Complete fills in the check/mate flags for a move already known to be
// legal in pos, by looking at the resulting position (§4.4: gen_moves
// never sets these flags itself).
func (pos *Position) Complete(m Move) Move {
	next := pos.clone()
	applyMove(next, m)
	inCheck := next.board.isAttacked(next.board.King(next.turn), next.turn.Other())
	if !inCheck {
		return m
	}
	attackers := next.board.attackersTo(next.board.King(next.turn), next.board.Occupied(), next.turn.Other())
	flags := Flag(FlagCheck)
	if attackers.popcount() >= 2 {
		flags |= FlagDoubleCheck
	}
	if len(GenerateMoves(next)) == 0 {
		flags |= FlagMate
	}
	return m.withFlags(flags)
}
