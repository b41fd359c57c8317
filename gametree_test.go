package chesscore

import "testing"

// TestGameTreeRoundTrip is S5: parsing the given movetext must produce a
// mainline/variation structure whose canonical dump matches exactly.
func TestGameTreeRoundTrip(t *testing.T) {
	const text = `1.e4 (1.d4 Nf6 2.e4 Nc6 (2...e5 f4 3...h6)) e5 2.Nc3 (2.Nf3) (2.d4) Nc6 d4`
	const want = `Pe2e4 (Pd2d4 Ng8f6 Pe2e4 Nb8c6 (Pe7e5 Pf2f4 Ph7h6)) Pe7e5 Nb1c3 (Ng1f3) (Pd2d4) Nb8c6 Pd2d4`

	g := NewGame()
	if err := ParseMoveText(g, text); err != nil {
		t.Fatalf("ParseMoveText: %v", err)
	}
	got := g.Dump()
	if got != want {
		t.Errorf("Dump() =\n%q\nwant\n%q", got, want)
	}
}
