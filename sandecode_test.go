package chesscore

import "testing"

func TestDecodeEncodeSANRoundTrip(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	cases := []string{"e4", "Nf3", "Nc3"}
	for _, san := range cases {
		m, err := pos.DecodeMove(san, NotationSAN)
		if err != nil {
			t.Fatalf("DecodeMove(%q): %v", san, err)
		}
		got := pos.SAN(m)
		if got != san {
			t.Errorf("SAN(DecodeMove(%q)) = %q, want %q", san, got, san)
		}
	}
}

func TestDecodeUCI(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	m, err := pos.DecodeMove("e2e4", NotationUCI)
	if err != nil {
		t.Fatalf("DecodeMove: %v", err)
	}
	if got := m.UCI(); got != "e2e4" {
		t.Errorf("UCI() = %q, want e2e4", got)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		pos := mustFEN(t, fen)
		if got := pos.FEN(); got != fen {
			t.Errorf("FEN() = %q, want %q", got, fen)
		}
	}
}
