package board

import "testing"

// playAndUnwind applies every move in uciMoves in order, then pops them
// all off in reverse, checking after every step that the incrementally
// maintained hash matches a from-scratch recomputation.
func playAndUnwind(t *testing.T, fen string, uciMoves []string) {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	startFEN := b.AsFEN()
	startHash := b.Hash

	applied := make([]Move, 0, len(uciMoves))
	for _, s := range uciMoves {
		m, err := ParseUCI(s, b)
		if err != nil {
			t.Fatalf("ParseUCI(%q): %v", s, err)
		}
		b.ApplyMove(m)
		applied = append(applied, m)
		if got, want := b.Hash, b.ComputeHash(); got != want {
			t.Fatalf("after %s: Hash = %016x, ComputeHash() = %016x", s, got, want)
		}
		if got, want := b.PawnHash, b.ComputePawnHash(); got != want {
			t.Fatalf("after %s: PawnHash = %016x, ComputePawnHash() = %016x", s, got, want)
		}
		if len(b.History) != len(applied) {
			t.Fatalf("after %s: len(History) = %d, want %d", s, len(b.History), len(applied))
		}
	}

	for i := len(applied) - 1; i >= 0; i-- {
		b.PopMove()
		if len(b.History) != i {
			t.Fatalf("after pop %d: len(History) = %d, want %d", i, len(b.History), i)
		}
	}

	if got := b.AsFEN(); got != startFEN {
		t.Errorf("after full unwind: FEN = %q, want %q", got, startFEN)
	}
	if b.Hash != startHash {
		t.Errorf("after full unwind: Hash = %016x, want %016x", b.Hash, startHash)
	}
}

func TestApplyPopNormalMoves(t *testing.T) {
	playAndUnwind(t, StartFEN, []string{"e2e4", "e7e5", "g1f3", "b8c6"})
}

func TestApplyPopCapture(t *testing.T) {
	playAndUnwind(t, StartFEN, []string{"e2e4", "d7d5", "e4d5"})
}

func TestApplyPopEnPassant(t *testing.T) {
	playAndUnwind(t, StartFEN, []string{"e2e4", "a7a6", "e4e5", "d7d5", "e5d6"})
}

func TestApplyPopPromotion(t *testing.T) {
	playAndUnwind(t, "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N w - - 0 1", []string{"b7b8q"})
}

func TestApplyPopPromotionWithCapture(t *testing.T) {
	playAndUnwind(t, "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N w - - 0 1", []string{"b7a8r"})
}

func TestApplyPopClassicalCastling(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	m := NewCastle(E1, G1, true)
	b.ApplyMove(m)

	if b.Kings[White] != G1 {
		t.Errorf("king = %v, want G1", b.Kings[White])
	}
	if kind, _ := b.PieceAt(F1); kind != ROOK {
		t.Errorf("F1 = %v, want ROOK", kind)
	}
	if kind, _ := b.PieceAt(H1); kind != EMPTY {
		t.Errorf("H1 = %v, want EMPTY", kind)
	}
	if !b.HasCastled[White] {
		t.Error("HasCastled[White] = false, want true")
	}
	if b.Castling.Has(White, true) || b.Castling.Has(White, false) {
		t.Error("white still has castling rights after castling")
	}

	b.PopMove()
	if got := b.AsFEN(); got != fen {
		t.Errorf("after pop: FEN = %q, want %q", got, fen)
	}
	if b.HasCastled[White] {
		t.Error("HasCastled[White] = true after pop, want false")
	}
}

func TestApplyPopShuffleCastling(t *testing.T) {
	fen := "rknbqnbr/pppppppp/8/8/8/8/PPPPPPPP/RK5R w HAha - 0 1"

	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	m := NewCastle(B1, G1, true)
	b.ApplyMove(m)
	if b.Kings[White] != G1 {
		t.Errorf("king = %v, want G1", b.Kings[White])
	}
	if kind, _ := b.PieceAt(F1); kind != ROOK {
		t.Errorf("F1 = %v, want ROOK", kind)
	}
	if kind, _ := b.PieceAt(B1); kind != EMPTY {
		t.Errorf("B1 = %v, want EMPTY", kind)
	}
	b.PopMove()
	if got := b.AsShredderFEN(); got != fen {
		t.Errorf("after pop: FEN = %q, want %q", got, fen)
	}
}

func TestApplyClearsRookCastlingRightOnRookMove(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	b.ApplyMove(NewMove(H1, H2))
	if b.Castling.Has(White, true) {
		t.Error("white still has kingside rights after moving the h1 rook")
	}
	if !b.Castling.Has(White, false) {
		t.Error("white lost queenside rights it shouldn't have")
	}
}

func TestApplyClearsRookCastlingRightOnRookCapture(t *testing.T) {
	fen := "r3k2r/7R/8/8/8/8/8/R3K2R w KQkq - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	b.ApplyMove(NewMove(H7, H8))
	if b.Castling.Has(Black, true) {
		t.Error("black still has kingside rights after its h8 rook was captured")
	}
	if !b.Castling.Has(Black, false) {
		t.Error("black lost queenside rights it shouldn't have")
	}
}

func TestFiftyMoveCounter(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	b.ApplyMove(NewMove(G1, F3))
	if b.Fifty != 1 {
		t.Errorf("Fifty = %d, want 1 after a quiet knight move", b.Fifty)
	}
	b.ApplyMove(NewMove(G8, F6))
	if b.Fifty != 2 {
		t.Errorf("Fifty = %d, want 2", b.Fifty)
	}
	b.ApplyMove(NewMove(E2, E4))
	if b.Fifty != 0 {
		t.Errorf("Fifty = %d, want 0 after a pawn move", b.Fifty)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for _, s := range shuffle {
		m, err := ParseUCI(s, b)
		if err != nil {
			t.Fatalf("ParseUCI(%q): %v", s, err)
		}
		b.ApplyMove(m)
	}
	if b.IsThreefoldRepetition() {
		t.Fatal("starting position has occurred only twice so far, threefold should not yet trigger")
	}
	for _, s := range shuffle {
		m, err := ParseUCI(s, b)
		if err != nil {
			t.Fatalf("ParseUCI(%q): %v", s, err)
		}
		b.ApplyMove(m)
	}
	if !b.IsThreefoldRepetition() {
		t.Error("expected threefold repetition after returning to the start position a third time")
	}
}
