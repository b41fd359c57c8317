package chesscore

import "testing"

func mustFEN(t *testing.T, fen string) *Position {
	t.Helper()
	pos, status, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	if status != FENLegal {
		t.Fatalf("ParseFEN(%q): status = %v, want FENLegal", fen, status)
	}
	return pos
}

func TestPerftStartingPosition(t *testing.T) {
	if testing.Short() {
		t.Skip("perft(start, 5) is expensive; skipping in -short")
	}
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	got := Perft(pos, 5)
	want := uint64(4865609)
	if got != want {
		t.Errorf("perft(start, 5) = %d, want %d", got, want)
	}
}

func TestPerftKiwipete(t *testing.T) {
	if testing.Short() {
		t.Skip("perft(kiwipete, 4) is expensive; skipping in -short")
	}
	pos := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	got := Perft(pos, 4)
	want := uint64(4085603)
	if got != want {
		t.Errorf("perft(kiwipete, 4) = %d, want %d", got, want)
	}
}

func TestPerftEndgamePosition(t *testing.T) {
	if testing.Short() {
		t.Skip("perft(..., 5) is expensive; skipping in -short")
	}
	pos := mustFEN(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	got := Perft(pos, 5)
	want := uint64(674624)
	if got != want {
		t.Errorf("perft = %d, want %d", got, want)
	}
}

// TestEnPassantPin is S4: capturing en passant here would expose the
// black king on h4 to the rook on b4 along rank 4, so no legal move may
// have from=f4, to=e3 even though the pseudo-legal ep capture exists.
func TestEnPassantPin(t *testing.T) {
	pos := mustFEN(t, "8/2p5/3p4/KP5r/1R2Pp1k/8/6P1/8 b - e3 0 1")
	f4, _ := ParseSquare("f4")
	e3, _ := ParseSquare("e3")
	for _, m := range GenerateMoves(pos) {
		if m.From() == f4 && m.To() == e3 {
			t.Fatalf("illegal en-passant capture f4xe3 was generated")
		}
	}
}

func TestBitPrimitives(t *testing.T) {
	if got := popcount(0xFFFFFFFFFFFFFFFF); got != 64 {
		t.Errorf("popcount(all ones) = %d, want 64", got)
	}
	if got := popcount(0); got != 0 {
		t.Errorf("popcount(0) = %d, want 0", got)
	}
	if got := lsb(0x80); got != 7 {
		t.Errorf("lsb(0x80) = %d, want 7", got)
	}
	if got := bswap64(0x0102030405060708); got != 0x0807060504030201 {
		t.Errorf("bswap64 = %#x, want %#x", got, uint64(0x0807060504030201))
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	pos := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	before := pos.FEN()
	beforeHash := pos.Hash()

	for _, m := range GenerateMoves(pos) {
		undo := MakeMove(pos, m)
		if pos.Hash() != hashFull(pos) {
			t.Errorf("move %s: incremental hash %#x != full recompute %#x", m, pos.Hash(), hashFull(pos))
		}
		UnmakeMove(pos, m, undo)
		if pos.FEN() != before {
			t.Fatalf("move %s: FEN after unmake = %q, want %q", m, pos.FEN(), before)
		}
		if pos.Hash() != beforeHash {
			t.Fatalf("move %s: hash after unmake = %#x, want %#x", m, pos.Hash(), beforeHash)
		}
	}
}
