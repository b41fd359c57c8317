package chesscore

import "strings"

// Flag is a bitmask of move metadata (§3). Flags are metadata only; two
// moves are semantically equal iff from, to and (when promoting) the
// promotion piece match — see Move.Eq.
type Flag uint16

const (
	FlagCastleKS Flag = 1 << iota
	FlagCastleQS
	FlagEPMove // double pawn advance
	FlagEPCapture
	FlagPromotion
	FlagCapture
	FlagCheck
	FlagDoubleCheck
	FlagMate
	FlagDraw
	// FlagIllegal is informational only (§9 open question): never treat
	// its absence as proof of legality, nor its presence as the sole
	// legality signal. gen_moves is always the source of truth.
	FlagIllegal
	FlagCanMove
)

// Move is the 32-bit packed move encoding from §3: to (6 bits), from (6
// bits), moving-piece kind (3 bits), promotion-piece kind (3 bits), and a
// 14-bit flag field. It is kept as a value type, copied like an integer.
type Move uint32

const (
	moveToShift    = 0
	moveFromShift  = 6
	moveKindShift  = 12
	movePromoShift = 15
	moveFlagShift  = 18

	moveSquareMask = 0x3F
	moveKindMask   = 0x7
)

// NewMove packs a move from its semantic fields.
func NewMove(from, to Square, moving Kind, promo Kind, flags Flag) Move {
	return Move(uint32(to&moveSquareMask)<<moveToShift |
		uint32(from&moveSquareMask)<<moveFromShift |
		uint32(moving&moveKindMask)<<moveKindShift |
		uint32(promo&moveKindMask)<<movePromoShift |
		uint32(flags)<<moveFlagShift)
}

func (m Move) To() Square   { return Square((m >> moveToShift) & moveSquareMask) }
func (m Move) From() Square { return Square((m >> moveFromShift) & moveSquareMask) }
func (m Move) MovingKind() Kind {
	return Kind((m >> moveKindShift) & moveKindMask)
}
func (m Move) PromoKind() Kind {
	return Kind((m >> movePromoShift) & moveKindMask)
}
func (m Move) Flags() Flag         { return Flag(m >> moveFlagShift) }
func (m Move) HasFlag(f Flag) bool { return m.Flags()&f != 0 }

// withFlags returns a copy of m with additional flags OR'd in. Used by
// Position.Complete (§4.4) to set check/mate after move generation, since
// gen_moves itself never sets them.
func (m Move) withFlags(f Flag) Move {
	return NewMove(m.From(), m.To(), m.MovingKind(), m.PromoKind(), m.Flags()|f)
}

// Eq reports semantic equality per §3: from, to, and promotion piece (if
// any) must match; flags are metadata and are ignored.
func (m Move) Eq(o Move) bool {
	return m.From() == o.From() && m.To() == o.To() && m.PromoKind() == o.PromoKind()
}

// IsZero reports whether m is the zero value (used as a "no move" sentinel
// for e.g. UCI ponder fields).
func (m Move) IsZero() bool { return m == 0 }

// String renders a debugging form "Pe2e4"-ish: moving piece letter, from,
// to, and a promotion suffix, not full SAN (use Position.SAN for that).
func (m Move) String() string {
	var sb strings.Builder
	if k := m.MovingKind(); k == Pawn {
		sb.WriteString("P")
	} else if k != NoKind {
		sb.WriteString(k.String())
	}
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if p := m.PromoKind(); p != NoKind {
		sb.WriteString("=" + p.String())
	}
	return sb.String()
}

// UCI renders long algebraic notation: e2e4, e7e8q.
func (m Move) UCI() string {
	s := m.From().String() + m.To().String()
	if p := m.PromoKind(); p != NoKind {
		s += strings.ToLower(p.String())
	}
	return s
}
