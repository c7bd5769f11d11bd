package book

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/castleforge/chesscore/internal/attack"
	"github.com/castleforge/chesscore/internal/board"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	dir, err := os.MkdirTemp("", "chessplay-book-cache-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	c, err := OpenCache(filepath.Join(dir, "db"))
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheWarmAndLoad(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	key := b.PolyglotHash()
	e2e4 := uint16(4 | (3 << 3) | (4 << 6) | (1 << 9))

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, key)
	binary.Write(&buf, binary.BigEndian, e2e4)
	binary.Write(&buf, binary.BigEndian, uint16(100))
	binary.Write(&buf, binary.BigEndian, uint32(0))

	src, err := LoadPolyglotReader(&buf)
	if err != nil {
		t.Fatalf("LoadPolyglotReader: %v", err)
	}

	c := openTestCache(t)
	if err := c.Warm(src); err != nil {
		t.Fatalf("Warm: %v", err)
	}

	loaded, err := c.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Size() != 1 {
		t.Errorf("Size() = %d, want 1", loaded.Size())
	}

	m, found := loaded.Probe(b)
	if !found {
		t.Fatal("expected a hit after reloading from cache")
	}
	if m.From() != board.E2 || m.To() != board.E4 {
		t.Errorf("Probe() = %s, want e2e4", m)
	}
}

func TestCacheProbeSingleKey(t *testing.T) {
	b, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	key := b.PolyglotHash()
	e2e4 := uint16(4 | (3 << 3) | (4 << 6) | (1 << 9))

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, key)
	binary.Write(&buf, binary.BigEndian, e2e4)
	binary.Write(&buf, binary.BigEndian, uint16(77))
	binary.Write(&buf, binary.BigEndian, uint32(0))

	src, err := LoadPolyglotReader(&buf)
	if err != nil {
		t.Fatalf("LoadPolyglotReader: %v", err)
	}

	c := openTestCache(t)
	if err := c.Warm(src); err != nil {
		t.Fatalf("Warm: %v", err)
	}

	entries, err := c.Probe(key)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if len(entries) != 1 || entries[0].Weight != 77 {
		t.Errorf("Probe(%016x) = %+v, want one entry weight 77", key, entries)
	}

	miss, err := c.Probe(key ^ 0xFF)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if len(miss) != 0 {
		t.Errorf("Probe on unknown key returned %d entries, want 0", len(miss))
	}
}
