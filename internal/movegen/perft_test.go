package movegen

import (
	"testing"

	"github.com/castleforge/chesscore/internal/board"
	_ "github.com/castleforge/chesscore/internal/attack"
)

// perft counts leaf nodes at depth, the standard move-generator
// correctness check: any discrepancy against known-good counts means
// generation, apply, or pop has a bug somewhere in the chain.
func perft(b *board.Board, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := GenerateLegalMoves(b)
	if depth == 1 {
		return int64(moves.Len())
	}
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		b.ApplyMove(m)
		nodes += perft(b, depth-1)
		b.PopMove()
	}
	return nodes
}

func mustParse(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func TestPerftStartingPosition(t *testing.T) {
	cases := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, tc := range cases {
		b := mustParse(t, board.StartFEN)
		t.Run("", func(t *testing.T) {
			if got := perft(b, tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	cases := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
	}
	for _, tc := range cases {
		b := mustParse(t, fen)
		t.Run("", func(t *testing.T) {
			if got := perft(b, tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestPerftEndgamePosition(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	cases := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
	}
	for _, tc := range cases {
		b := mustParse(t, fen)
		t.Run("", func(t *testing.T) {
			if got := perft(b, tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestPerftPromotionHeavy(t *testing.T) {
	fen := "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N w - - 0 1"
	cases := []struct {
		depth    int
		expected int64
	}{
		{1, 24},
		{2, 496},
	}
	for _, tc := range cases {
		b := mustParse(t, fen)
		t.Run("", func(t *testing.T) {
			if got := perft(b, tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftEnPassantPin checks that an en-passant capture which would
// expose the capturing side's king to a horizontal rook pin is excluded
// from legal moves, even though the capturing pawn itself is not pinned
// in the usual sense.
func TestPerftEnPassantPin(t *testing.T) {
	b := mustParse(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")

	moves := GenerateLegalMoves(b)
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.IsEnPassant() {
			t.Errorf("en passant move %v should be illegal (horizontal pin)", m)
		}
	}

	cases := []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	}
	for _, tc := range cases {
		t.Run("", func(t *testing.T) {
			if got := perft(b, tc.depth); got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftShuffleCastling exercises the shuffle-chess castling path:
// king on b-file, rooks on a- and h-files, encoded via Shredder castling
// letters so the king's non-standard file is unambiguous.
func TestPerftShuffleCastling(t *testing.T) {
	fen := "rknbqnbr/pppppppp/8/8/8/8/PPPPPPPP/RKNBQNBR w HAha - 0 1"
	b := mustParse(t, fen)
	if b.Variant != board.Shuffle {
		t.Fatalf("expected Shuffle variant for king on b-file, got %v", b.Variant)
	}
	moves := GenerateLegalMoves(b)
	if moves.Len() != 20 {
		t.Errorf("legal moves from shuffle start = %d, want 20", moves.Len())
	}
}
