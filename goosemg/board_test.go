package goosemg_test

import (
	"testing"

	gm "chess-influence/goosemg"
)

func TestFENAndValidate(t *testing.T) {
	b, err := gm.ParseFEN(gm.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !b.Validate() {
		t.Fatalf("board invariants invalid after FEN parse")
	}
	// a1 white rook, e1 white king, a8 black rook, e8 black king
	if b.PieceAt(0) != gm.WhiteRook {
		t.Errorf("expected a1 WhiteRook, got %v", b.PieceAt(0))
	}
	if b.PieceAt(4) != gm.WhiteKing {
		t.Errorf("expected e1 WhiteKing, got %v", b.PieceAt(4))
	}
	if b.PieceAt(56) != gm.BlackRook {
		t.Errorf("expected a8 BlackRook, got %v", b.PieceAt(56))
	}
	if b.PieceAt(60) != gm.BlackKing {
		t.Errorf("expected e8 BlackKing, got %v", b.PieceAt(60))
	}
	if got := b.ToFEN(); got != gm.FENStartPos {
		t.Fatalf("ToFEN round trip: got %q want %q", got, gm.FENStartPos)
	}
	if n := len(b.OccupiedSquares()); n != 32 {
		t.Fatalf("expected 32 occupied squares, got %d", n)
	}
}

func TestParseFENRejectsGarbage(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8 w - - 0 1",
		"8/8/8/8/8/8/8/9 w - - 0 1",
		"8/8/8/8/8/8/8/7x w - - 0 1",
		"8/8/8/8/8/8/8/8 x - - 0 1",
		"8/8/8/8/8/8/8/8 w Z - 0 1",
		"8/8/8/8/8/8/8/8 w - z9 0 1",
	}
	for _, fen := range bad {
		if _, err := gm.ParseFEN(fen); err == nil {
			t.Errorf("expected error for FEN %q", fen)
		}
	}
}

func TestRelocateQuietAndUndo(t *testing.T) {
	b, err := gm.ParseFEN(gm.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	startZ := b.Hash()

	e2, _ := gm.ParseSquare("e2")
	e4, _ := gm.ParseSquare("e4")
	undo := b.Relocate(e2, e4)
	if !b.Validate() {
		t.Fatalf("board invalid after Relocate")
	}
	if b.PieceAt(e2) != gm.NoPiece || b.PieceAt(e4) != gm.WhitePawn {
		t.Fatalf("piece locations not updated after Relocate")
	}
	if b.SideToMove() != gm.White {
		t.Fatalf("Relocate must not toggle side to move")
	}
	undo()
	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after undo: got %q want %q", b.ToFEN(), startFEN)
	}
	if b.Hash() != startZ || !b.Validate() {
		t.Fatalf("hash mismatch after undo")
	}
}

func TestRelocateOntoOwnAndEnemyPieces(t *testing.T) {
	b, err := gm.ParseFEN("4k3/8/8/8/8/8/3p4/R2QK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	a1, _ := gm.ParseSquare("a1")
	d1, _ := gm.ParseSquare("d1")
	d2, _ := gm.ParseSquare("d2")

	// Rook onto its own queen, then onward onto the black pawn.
	undoOuter := b.Relocate(a1, d1)
	if b.PieceAt(d1) != gm.WhiteRook || b.PieceAt(a1) != gm.NoPiece {
		t.Fatalf("rook not relocated onto d1")
	}
	undoInner := b.Relocate(d1, d2)
	if b.PieceAt(d2) != gm.WhiteRook || b.PieceAt(d1) != gm.NoPiece {
		t.Fatalf("rook not relocated onto d2")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after nested Relocate")
	}
	undoInner()
	if b.PieceAt(d1) != gm.WhiteRook || b.PieceAt(d2) != gm.BlackPawn {
		t.Fatalf("inner undo did not restore d1/d2")
	}
	undoOuter()
	if b.ToFEN() != startFEN || !b.Validate() {
		t.Fatalf("FEN mismatch after nested undo: got %q want %q", b.ToFEN(), startFEN)
	}
}

func TestRelocateFromEmptySquareIsNoop(t *testing.T) {
	b := gm.NewBoard()
	before := b.Hash()
	undo := b.Relocate(10, 20)
	undo()
	if b.Hash() != before || len(b.OccupiedSquares()) != 0 {
		t.Fatalf("relocating from an empty square changed the board")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, err := gm.ParseFEN(gm.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	c := b.Clone()
	c.ClearSquare(4)
	if b.PieceAt(4) != gm.WhiteKing {
		t.Fatalf("clone shares state with original")
	}
	if b.Hash() == c.Hash() || c.Hash() != c.ComputeZobrist() {
		t.Fatalf("clone hash not maintained independently")
	}
}
