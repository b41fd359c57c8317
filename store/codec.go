package store

import (
	"fmt"

	"github.com/rookwing/chesscore/blob"
	chess "github.com/rookwing/chesscore"
)

// Move/variation tokens in the packed movetext stream.
const (
	tokEnd      = 0
	tokMove     = 1
	tokVarStart = 2
	tokVarEnd   = 3
)

const (
	tokenBits = 2
	squareBits = 6
	kindBits   = 3
	nagCountBits = 4
	nagValueBits = 8
	textLenBits  = 12
)

// EncodeMoves packs a game's move tree (mainline plus variations) into a
// movetext Blob and a parallel annotations Blob (NAG list and pre/post
// comment text for whichever moves carry them), per §4.7/§4.5.
func EncodeMoves(g *chess.Game) (movetext, annotations *blob.Blob, err error) {
	movetext = blob.New()
	annotations = blob.New()
	mw, err := blob.NewWriter(movetext)
	if err != nil {
		return nil, nil, err
	}
	aw, err := blob.NewWriter(annotations)
	if err != nil {
		return nil, nil, err
	}
	node := g.Root().Next()
	if err := encodeChain(mw, aw, node); err != nil {
		return nil, nil, err
	}
	if err := mw.WriteBits(tokEnd, tokenBits); err != nil {
		return nil, nil, err
	}
	return movetext, annotations, nil
}

func encodeChain(mw, aw *blob.Bitstream, node *chess.GameNode) error {
	for n := node; n != nil; n = n.Next() {
		if err := mw.WriteBits(tokMove, tokenBits); err != nil {
			return err
		}
		m := n.Move()
		if err := mw.WriteBits(uint32(m.From()), squareBits); err != nil {
			return err
		}
		if err := mw.WriteBits(uint32(m.To()), squareBits); err != nil {
			return err
		}
		if err := mw.WriteBits(uint32(m.PromoKind()), kindBits); err != nil {
			return err
		}
		if err := encodeAnnotation(aw, n); err != nil {
			return err
		}
		for _, v := range n.Variations() {
			if err := mw.WriteBits(tokVarStart, tokenBits); err != nil {
				return err
			}
			// v is the zero-move sentinel head; its line starts at v.Next().
			if err := encodeChain(mw, aw, v.Next()); err != nil {
				return err
			}
			if err := mw.WriteBits(tokVarEnd, tokenBits); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeAnnotation(aw *blob.Bitstream, n *chess.GameNode) error {
	nags := n.NAGs
	if len(nags) > 15 {
		nags = nags[:15]
	}
	if err := aw.WriteBits(uint32(len(nags)), nagCountBits); err != nil {
		return err
	}
	for _, nag := range nags {
		if err := aw.WriteBits(uint32(nag), nagValueBits); err != nil {
			return err
		}
	}
	if err := writeText(aw, n.PreText); err != nil {
		return err
	}
	return writeText(aw, n.PostText)
}

func writeText(w *blob.Bitstream, s string) error {
	b := []byte(s)
	if len(b) > (1<<textLenBits)-1 {
		b = b[:(1<<textLenBits)-1]
	}
	if err := w.WriteBits(uint32(len(b)), textLenBits); err != nil {
		return err
	}
	for _, c := range b {
		if err := w.WriteBits(uint32(c), 8); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMoves reconstructs a Game from movetext/annotations Blobs written
// by EncodeMoves, replaying moves from the position described by startFEN
// (empty meaning the standard starting position).
func DecodeMoves(movetext, annotations *blob.Blob, startFEN string) (*chess.Game, error) {
	var g *chess.Game
	var err error
	if startFEN == "" {
		g = chess.NewGame()
	} else {
		g, err = chess.NewGameFromFEN(startFEN)
		if err != nil {
			return nil, fmt.Errorf("store: decode: %w", err)
		}
	}
	mr := blob.NewReader(movetext)
	ar := blob.NewReader(annotations)
	if err := decodeChain(g, mr, ar); err != nil {
		return nil, err
	}
	return g, nil
}

func decodeChain(g *chess.Game, mr, ar *blob.Bitstream) error {
	for {
		tok, err := mr.ReadBits(tokenBits)
		if err != nil {
			return fmt.Errorf("store: decode: %w", err)
		}
		switch tok {
		case tokEnd:
			return nil
		case tokVarEnd:
			return nil
		case tokMove:
			from, err := mr.ReadBits(squareBits)
			if err != nil {
				return err
			}
			to, err := mr.ReadBits(squareBits)
			if err != nil {
				return err
			}
			promo, err := mr.ReadBits(kindBits)
			if err != nil {
				return err
			}
			pos := g.Current().Position()
			mv, err := findMove(pos, chess.Square(from), chess.Square(to), chess.Kind(promo))
			if err != nil {
				return err
			}
			if err := g.MakeMoveValue(mv); err != nil {
				return fmt.Errorf("store: decode: replay move: %w", err)
			}
			if err := decodeAnnotation(g, ar); err != nil {
				return err
			}
		case tokVarStart:
			if err := g.StartVariation(); err != nil {
				return err
			}
			if err := decodeChain(g, mr, ar); err != nil {
				return err
			}
			if err := g.EndVariation(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("store: decode: unknown token %d", tok)
		}
	}
}

func findMove(pos *chess.Position, from, to chess.Square, promo chess.Kind) (chess.Move, error) {
	for _, m := range chess.GenerateMoves(pos) {
		if m.From() == from && m.To() == to && m.PromoKind() == promo {
			return m, nil
		}
	}
	return 0, fmt.Errorf("store: no legal move %s-%s matches packed move", from, to)
}

func decodeAnnotation(g *chess.Game, ar *blob.Bitstream) error {
	n := g.Current()
	count, err := ar.ReadBits(nagCountBits)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		nag, err := ar.ReadBits(nagValueBits)
		if err != nil {
			return err
		}
		n.NAGs = append(n.NAGs, int(nag))
	}
	pre, err := readText(ar)
	if err != nil {
		return err
	}
	post, err := readText(ar)
	if err != nil {
		return err
	}
	n.PreText = pre
	n.PostText = post
	return nil
}

func readText(r *blob.Bitstream) (string, error) {
	n, err := r.ReadBits(textLenBits)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	for i := range b {
		c, err := r.ReadBits(8)
		if err != nil {
			return "", err
		}
		b[i] = byte(c)
	}
	return string(b), nil
}
