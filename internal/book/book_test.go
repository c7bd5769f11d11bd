package book

import (
	"bytes"
	"encoding/binary"
	"testing"

	_ "github.com/castleforge/chesscore/internal/attack"
	"github.com/castleforge/chesscore/internal/board"
)

func TestPolyglotHashStable(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	h1 := b.PolyglotHash()
	h2 := b.PolyglotHash()
	if h1 != h2 {
		t.Errorf("PolyglotHash not stable: %016x != %016x", h1, h2)
	}

	b.ApplyMove(board.NewMove(board.E2, board.E4))
	h3 := b.PolyglotHash()
	if h1 == h3 {
		t.Error("PolyglotHash should change after a move")
	}

	b.PopMove()
	h4 := b.PolyglotHash()
	if h1 != h4 {
		t.Errorf("PolyglotHash not restored after pop: %016x != %016x", h1, h4)
	}
}

func TestBookLoadAndProbe(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	key := b.PolyglotHash()

	// e2e4: from=(file4,rank1), to=(file4,rank3).
	e2e4 := uint16(4 | (3 << 3) | (4 << 6) | (1 << 9))

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, key)
	binary.Write(&buf, binary.BigEndian, e2e4)
	binary.Write(&buf, binary.BigEndian, uint16(100))
	binary.Write(&buf, binary.BigEndian, uint32(0))

	bk, err := LoadPolyglotReader(&buf)
	if err != nil {
		t.Fatalf("LoadPolyglotReader: %v", err)
	}
	if bk.Size() != 1 {
		t.Errorf("Size() = %d, want 1", bk.Size())
	}

	m, found := bk.Probe(b)
	if !found {
		t.Fatal("expected a book hit")
	}
	if m.From() != board.E2 || m.To() != board.E4 {
		t.Errorf("Probe() = %s, want e2e4", m)
	}
}

func TestBookMiss(t *testing.T) {
	bk := New()
	b, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, found := bk.Probe(b)
	if found {
		t.Error("expected a miss on an empty book")
	}
	if m != board.NoMove {
		t.Errorf("Probe() = %s on miss, want NoMove", m)
	}
}

func TestDecodePolyglotMove(t *testing.T) {
	e2e4 := uint16(4 | (3 << 3) | (4 << 6) | (1 << 9))
	m := decodePolyglotMove(e2e4)
	if m.From() != board.E2 || m.To() != board.E4 {
		t.Errorf("decodePolyglotMove(e2e4) = %s, want e2e4", m)
	}

	d7d5 := uint16(3 | (4 << 3) | (3 << 6) | (6 << 9))
	m = decodePolyglotMove(d7d5)
	if m.From() != board.D7 || m.To() != board.D5 {
		t.Errorf("decodePolyglotMove(d7d5) = %s, want d7d5", m)
	}
}

func TestDecodePolyglotCastling(t *testing.T) {
	// Polyglot encodes white kingside castling as king-takes-rook, e1h1.
	e1h1 := uint16(7 | (0 << 3) | (4 << 6) | (0 << 9))
	m := decodePolyglotMove(e1h1)
	if !m.IsCastle() || !m.IsKingsideCastle() {
		t.Fatalf("decodePolyglotMove(e1h1) = %s, want a kingside castle", m)
	}
	if m.To() != board.G1 {
		t.Errorf("castle destination = %s, want g1", m.To())
	}
}

func TestProbeAllSortedByWeight(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	key := b.PolyglotHash()

	e2e4 := uint16(4 | (3 << 3) | (4 << 6) | (1 << 9))
	d2d4 := uint16(3 | (3 << 3) | (3 << 6) | (1 << 9))

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, key)
	binary.Write(&buf, binary.BigEndian, e2e4)
	binary.Write(&buf, binary.BigEndian, uint16(50))
	binary.Write(&buf, binary.BigEndian, uint32(0))
	binary.Write(&buf, binary.BigEndian, key)
	binary.Write(&buf, binary.BigEndian, d2d4)
	binary.Write(&buf, binary.BigEndian, uint16(200))
	binary.Write(&buf, binary.BigEndian, uint32(0))

	bk, err := LoadPolyglotReader(&buf)
	if err != nil {
		t.Fatalf("LoadPolyglotReader: %v", err)
	}

	entries := bk.ProbeAll(b)
	if len(entries) != 2 {
		t.Fatalf("ProbeAll returned %d entries, want 2", len(entries))
	}
	if entries[0].Weight != 200 || entries[1].Weight != 50 {
		t.Errorf("entries not sorted by descending weight: %+v", entries)
	}
}
