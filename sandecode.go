package chesscore

import (
	"fmt"
	"regexp"
	"strings"
)

// Notation selects a move's textual encoding.
type Notation int

const (
	NotationSAN Notation = iota
	NotationUCI
	NotationLongAlgebraic
)

// EncodeMove renders m per the given notation.
func (pos *Position) EncodeMove(m Move, n Notation) string {
	switch n {
	case NotationUCI:
		return m.UCI()
	case NotationLongAlgebraic:
		return pos.encodeLongAlgebraic(m)
	default:
		return pos.SAN(m)
	}
}

func (pos *Position) encodeLongAlgebraic(m Move) string {
	kind := m.MovingKind()
	sep := "-"
	if m.HasFlag(FlagCapture) {
		sep = "x"
	}
	prefix := ""
	if kind != Pawn {
		prefix = kind.String()
	}
	s := prefix + m.From().String() + sep + m.To().String()
	if m.HasFlag(FlagPromotion) {
		s += "=" + m.PromoKind().String()
	}
	return appendSuffix(s, m)
}

// DecodeMove parses s as a move in the context of pos, trying the given
// notations in order (or SAN, then long algebraic, then UCI, if none are
// given), consulting GenerateMoves to resolve disambiguation (§4.4).
func (pos *Position) DecodeMove(s string, notations ...Notation) (Move, error) {
	if len(notations) != 0 {
		for _, n := range notations {
			if m, err := pos.decodeOne(s, n); err == nil {
				return m, nil
			}
		}
		return 0, fmt.Errorf("chesscore: failed to decode move %q for position %s", s, pos)
	}
	for _, n := range []Notation{NotationSAN, NotationLongAlgebraic, NotationUCI} {
		if m, err := pos.decodeOne(s, n); err == nil {
			return m, nil
		}
	}
	return 0, fmt.Errorf("chesscore: failed to decode move %q for position %s", s, pos)
}

func (pos *Position) decodeOne(s string, n Notation) (Move, error) {
	switch n {
	case NotationUCI, NotationLongAlgebraic:
		return pos.decodeSquarePair(s)
	default:
		return pos.decodeSAN(s)
	}
}

// decodeSquarePair handles both UCI ("e2e4", "e7e8q") and long algebraic
// ("Ng1-f3", "e7xf8=Q") forms by stripping decoration and matching the
// resulting from/to squares against GenerateMoves.
func (pos *Position) decodeSquarePair(s string) (Move, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '-', 'x', '=', '+', '#':
			return -1
		}
		return r
	}, s)
	clean = strings.TrimLeftFunc(clean, func(r rune) bool {
		return strings.ContainsRune("KQRBN", r)
	})
	var promo Kind
	if n := len(clean); n == 5 {
		promo = kindFromLetter(rune(strings.ToUpper(string(clean[4]))[0]))
		clean = clean[:4]
	}
	if len(clean) != 4 {
		return 0, fmt.Errorf("chesscore: invalid long/UCI move %q", s)
	}
	from, err := ParseSquare(clean[0:2])
	if err != nil {
		return 0, err
	}
	to, err := ParseSquare(clean[2:4])
	if err != nil {
		return 0, err
	}
	for _, m := range GenerateMoves(pos) {
		if m.From() == from && m.To() == to && (promo == NoKind || m.PromoKind() == promo) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("chesscore: %s is not a legal move in position %s", s, pos)
}

var sanRe = regexp.MustCompile(`^([KQRBN]?)([a-h]?)([1-8]?)(x?)([a-h][1-8])(?:=([QRBN]))?[+#]?$`)

// decodeSAN parses Standard Algebraic Notation, resolving ambiguity by
// consulting the legal move list (§4.4).
func (pos *Position) decodeSAN(s string) (Move, error) {
	trimmed := strings.TrimRight(s, "+#")
	if trimmed == "O-O" || trimmed == "0-0" {
		return pos.findCastle(FlagCastleKS)
	}
	if trimmed == "O-O-O" || trimmed == "0-0-0" {
		return pos.findCastle(FlagCastleQS)
	}

	match := sanRe.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("chesscore: could not decode SAN %q for position %s", s, pos)
	}
	pieceLetter, fileHint, rankHint, _, toStr, promoLetter := match[1], match[2], match[3], match[4], match[5], match[6]

	kind := Pawn
	if pieceLetter != "" {
		kind = kindFromLetter(rune(pieceLetter[0]))
	}
	to, err := ParseSquare(toStr)
	if err != nil {
		return 0, err
	}
	promo := NoKind
	if promoLetter != "" {
		promo = kindFromLetter(rune(promoLetter[0]))
	}

	var candidates []Move
	for _, m := range GenerateMoves(pos) {
		if m.MovingKind() != kind || m.To() != to || m.PromoKind() != promo {
			continue
		}
		if fileHint != "" && m.From().File().String() != fileHint {
			continue
		}
		if rankHint != "" && m.From().Rank().String() != rankHint {
			continue
		}
		candidates = append(candidates, m)
	}
	switch len(candidates) {
	case 0:
		return 0, fmt.Errorf("chesscore: no legal move matches SAN %q for position %s", s, pos)
	case 1:
		return candidates[0], nil
	default:
		return 0, fmt.Errorf("chesscore: ambiguous SAN %q for position %s", s, pos)
	}
}

func (pos *Position) findCastle(side Flag) (Move, error) {
	for _, m := range GenerateMoves(pos) {
		if m.HasFlag(side) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("chesscore: no legal castle available in position %s", pos)
}

func kindFromLetter(r rune) Kind {
	switch r {
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	default:
		return Pawn
	}
}
