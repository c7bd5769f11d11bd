// Package book implements a Polyglot-format opening book: parsing the
// binary entry format, weighted-random move selection keyed by a
// position's Polyglot hash, and verification that a book move matches
// one the move generator actually considers legal in the position it
// was probed from.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/castleforge/chesscore/internal/board"
	"github.com/castleforge/chesscore/internal/movegen"
)

// Entry is one candidate move for a position, with its Polyglot weight.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book maps a position's Polyglot hash to every candidate move recorded
// for it.
type Book struct {
	entries map[uint64][]Entry
}

// New returns an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// LoadPolyglot parses a .bin Polyglot book file.
func LoadPolyglot(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := LoadPolyglotReader(f)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %d book positions from %s", b.Size(), path)
	return b, nil
}

// LoadPolyglotReader parses Polyglot entries from r: 8-byte big-endian
// position key, 2-byte move, 2-byte weight, 4 bytes of learn data we
// don't use, repeated to EOF.
func LoadPolyglotReader(r io.Reader) (*Book, error) {
	b := New()
	var raw [16]byte

	for {
		_, err := io.ReadFull(r, raw[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		moveData := binary.BigEndian.Uint16(raw[8:10])
		weight := binary.BigEndian.Uint16(raw[10:12])

		if m := decodePolyglotMove(moveData); m != board.NoMove {
			b.entries[key] = append(b.entries[key], Entry{Move: m, Weight: weight})
		}
	}
	return b, nil
}

// decodePolyglotMove converts Polyglot's 16-bit move encoding into a
// board.Move. Polyglot packs to-file (bits 0-2), to-rank (3-5), from-file
// (6-8), from-rank (9-11) and promotion (12-14) as 3-bit groups; castling
// is encoded king-captures-rook (e1h1 rather than e1g1), which we remap
// onto our own castling destinations before returning.
func decodePolyglotMove(data uint16) board.Move {
	toFile := int(data & 7)
	toRank := int((data >> 3) & 7)
	fromFile := int((data >> 6) & 7)
	fromRank := int((data >> 9) & 7)
	promo := (data >> 12) & 7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	switch {
	case from == board.E1 && to == board.H1:
		return board.NewCastle(from, board.G1, true)
	case from == board.E1 && to == board.A1:
		return board.NewCastle(from, board.C1, false)
	case from == board.E8 && to == board.H8:
		return board.NewCastle(from, board.G8, true)
	case from == board.E8 && to == board.A8:
		return board.NewCastle(from, board.C8, false)
	}

	if promo > 0 {
		kinds := [8]board.PieceKind{0, board.KNIGHT, board.BISHOP, board.ROOK, board.QUEEN}
		return board.NewPromotion(from, to, kinds[promo])
	}
	return board.NewMove(from, to)
}

// Probe returns a weighted-random book move for b's current position, or
// ok=false if the book has no legal entry for it. Each entry is matched
// against the generator's legal moves so its flags (castle, en passant,
// promotion kind) are exactly right for ApplyMove, not just a bare
// from/to pair; entries with no legal match are dropped before choosing.
func (bk *Book) Probe(b *board.Board) (board.Move, bool) {
	if bk == nil {
		return board.NoMove, false
	}
	var entries []Entry
	for _, e := range bk.entries[b.PolyglotHash()] {
		if m := verifyAndConvert(b, e.Move); m != board.NoMove {
			entries = append(entries, Entry{Move: m, Weight: e.Weight})
		}
	}
	if len(entries) == 0 {
		return board.NoMove, false
	}

	var total uint32
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return entries[0].Move, true
	}

	r := rand.Uint32() % total
	var cumulative uint32
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return e.Move, true
		}
	}
	return entries[len(entries)-1].Move, true
}

// ProbeAll returns every book entry for b's position, sorted by
// descending weight, for callers that want to show alternatives rather
// than have one picked for them.
func (bk *Book) ProbeAll(b *board.Board) []Entry {
	if bk == nil {
		return nil
	}
	entries := bk.entries[b.PolyglotHash()]
	if len(entries) == 0 {
		return nil
	}
	out := append([]Entry(nil), entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

// verifyAndConvert finds the legal move matching m's from/to/promotion
// and returns it with the generator's flags, or NoMove if the book move
// turns out not to be legal here (a stale book entry, or a non-capture
// king move two files wide that the decoder can't distinguish from a
// castle without consulting the position).
func verifyAndConvert(b *board.Board, m board.Move) board.Move {
	legal := movegen.GenerateLegalMoves(b)
	for i := 0; i < legal.Len(); i++ {
		lm := legal.Get(i)
		if lm.From() != m.From() || lm.To() != m.To() {
			continue
		}
		if m.IsPromotion() != lm.IsPromotion() {
			continue
		}
		if m.IsPromotion() && m.PromotionKind() != lm.PromotionKind() {
			continue
		}
		return lm
	}
	return board.NoMove
}

// Size returns the number of distinct positions the book has entries for.
func (bk *Book) Size() int {
	if bk == nil {
		return 0
	}
	return len(bk.entries)
}
