package store

import (
	"testing"

	chess "github.com/rookwing/chesscore"
)

func TestEncodeDecodeMovesRoundTrip(t *testing.T) {
	g := chess.NewGame()
	const text = `1.e4 e5 2.Nf3 (2.Nc3 Nf6) Nc6 3.Bb5`
	if err := chess.ParseMoveText(g, text); err != nil {
		t.Fatalf("ParseMoveText: %v", err)
	}
	want := g.Dump()

	movetext, annotations, err := EncodeMoves(g)
	if err != nil {
		t.Fatalf("EncodeMoves: %v", err)
	}

	g2, err := DecodeMoves(movetext, annotations, "")
	if err != nil {
		t.Fatalf("DecodeMoves: %v", err)
	}
	got := g2.Dump()
	if got != want {
		t.Errorf("round-tripped dump = %q, want %q", got, want)
	}
}

func TestEncodeDecodeAnnotations(t *testing.T) {
	g := chess.NewGame()
	if err := g.MakeMove("e4"); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	g.Current().PostText = "a strong opening move"
	g.Current().NAGs = []int{1, 3}

	movetext, annotations, err := EncodeMoves(g)
	if err != nil {
		t.Fatalf("EncodeMoves: %v", err)
	}
	g2, err := DecodeMoves(movetext, annotations, "")
	if err != nil {
		t.Fatalf("DecodeMoves: %v", err)
	}
	n := g2.Root().Next()
	if n == nil {
		t.Fatalf("decoded game has no moves")
	}
	if n.PostText != "a strong opening move" {
		t.Errorf("PostText = %q", n.PostText)
	}
	if len(n.NAGs) != 2 || n.NAGs[0] != 1 || n.NAGs[1] != 3 {
		t.Errorf("NAGs = %v, want [1 3]", n.NAGs)
	}
}
