package chesscore

import (
	"fmt"
	"io"

	"github.com/ajstarks/svgo"
)

// Board is the bitboard piece placement: one bitboard per (color, kind)
// pair plus per-color occupancy caches, mirroring the teacher's per-piece
// bitboard array but keyed by the spec's (colour, kind) encoding (§3)
// instead of a single combined nibble index.
type Board struct {
	pieces    [2][7]bitboard // [color][Kind], NoKind unused
	occupied  [2]bitboard
	kingSq    [2]Square
}

// NewBoard builds a board from a square-to-piece mapping.
func NewBoard(m map[Square]Piece) *Board {
	b := &Board{}
	for sq, p := range m {
		b.place(sq, p)
	}
	return b
}

func (b *Board) place(sq Square, p Piece) {
	if p.IsEmpty() {
		return
	}
	bb := bbForSquare(sq)
	b.pieces[p.Color][p.Kind] |= bb
	b.occupied[p.Color] |= bb
	if p.Kind == King {
		b.kingSq[p.Color] = sq
	}
}

func (b *Board) remove(sq Square, p Piece) {
	if p.IsEmpty() {
		return
	}
	bb := ^bbForSquare(sq)
	b.pieces[p.Color][p.Kind] &= bb
	b.occupied[p.Color] &= bb
}

// bbFor returns the bitboard of a given kind and color.
func (b *Board) bbFor(k Kind, c Color) bitboard { return b.pieces[c][k] }

// Occupied returns the combined occupancy of both colors.
func (b *Board) Occupied() bitboard { return b.occupied[White] | b.occupied[Black] }

// OccupiedBy returns one color's occupancy.
func (b *Board) OccupiedBy(c Color) bitboard { return b.occupied[c] }

// King returns the square of the color's king.
func (b *Board) King(c Color) Square { return b.kingSq[c] }

// pieceAt returns the piece occupying sq, or NoPiece.
func (b *Board) pieceAt(sq Square) Piece {
	bb := bbForSquare(sq)
	for _, c := range [2]Color{White, Black} {
		if b.occupied[c]&bb == 0 {
			continue
		}
		for _, k := range allKinds {
			if b.pieces[c][k]&bb != 0 {
				return Piece{Color: c, Kind: k}
			}
		}
	}
	return NoPiece
}

// SquareMap returns a mapping of occupied squares to pieces.
func (b *Board) SquareMap() map[Square]Piece {
	m := map[Square]Piece{}
	for sq := 0; sq < 64; sq++ {
		if p := b.pieceAt(Square(sq)); !p.IsEmpty() {
			m[Square(sq)] = p
		}
	}
	return m
}

func (b *Board) clone() *Board {
	nb := *b
	return &nb
}

// isAttacked reports whether sq is attacked by color `by` given the
// current occupancy.
func (b *Board) isAttacked(sq Square, by Color) bool {
	occ := b.Occupied()
	if knightAttacks[sq]&b.pieces[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&b.pieces[by][King] != 0 {
		return true
	}
	if pawnAttacks[by.Other()][sq]&b.pieces[by][Pawn] != 0 {
		return true
	}
	if bishopAttacks(sq, occ)&(b.pieces[by][Bishop]|b.pieces[by][Queen]) != 0 {
		return true
	}
	if rookAttacks(sq, occ)&(b.pieces[by][Rook]|b.pieces[by][Queen]) != 0 {
		return true
	}
	return false
}

// attackersTo returns every piece of color `by` that attacks sq.
func (b *Board) attackersTo(sq Square, occ bitboard, by Color) bitboard {
	var a bitboard
	a |= knightAttacks[sq] & b.pieces[by][Knight]
	a |= kingAttacks[sq] & b.pieces[by][King]
	a |= pawnAttacks[by.Other()][sq] & b.pieces[by][Pawn]
	a |= bishopAttacks(sq, occ) & (b.pieces[by][Bishop] | b.pieces[by][Queen])
	a |= rookAttacks(sq, occ) & (b.pieces[by][Rook] | b.pieces[by][Queen])
	return a
}

// String renders an 8x8 ASCII diagram, rank 8 first.
func (b *Board) String() string {
	s := ""
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			p := b.pieceAt(NewSquare(File(f), Rank(r)))
			if p.IsEmpty() {
				s += ". "
			} else {
				s += p.String() + " "
			}
		}
		s += "\n"
	}
	return s
}

// RenderSVG writes an SVG diagram of the board to w. This is a debug/export
// surface built on the teacher's board-image dependency (ajstarks/svgo);
// it is never consulted by move generation or hashing.
func (b *Board) RenderSVG(w io.Writer, squarePx int) {
	canvas := svg.New(w)
	size := squarePx * 8
	canvas.Start(size, size)
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			x := f * squarePx
			y := (7 - r) * squarePx
			fill := "#eeeed2"
			if (f+r)%2 == 0 {
				fill = "#769656"
			}
			canvas.Rect(x, y, squarePx, squarePx, fmt.Sprintf("fill:%s", fill))
			p := b.pieceAt(NewSquare(File(f), Rank(r)))
			if !p.IsEmpty() {
				canvas.Text(x+squarePx/2, y+squarePx*3/4, p.Glyph(),
					fmt.Sprintf("text-anchor:middle;font-size:%dpx", squarePx*3/4))
			}
		}
	}
	canvas.End()
}
