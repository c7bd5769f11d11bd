package book

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
	"github.com/castleforge/chesscore/internal/board"
	"github.com/castleforge/chesscore/internal/logging"
)

var log = logging.Get("book")

// Cache persists a parsed Book in BadgerDB, keyed by Polyglot hash, so a
// multi-megabyte .bin file only has to be decoded once: later process
// starts load the already-decoded entries straight out of the embedded
// key-value store instead of re-parsing the raw book.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (creating if necessary) a Badger store at dir.
func OpenCache(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Warm populates the cache from a freshly-parsed Book, overwriting any
// existing entries for positions the book covers.
func (c *Cache) Warm(b *Book) error {
	log.Debugf("warming book cache with %d positions", b.Size())
	return c.db.Update(func(txn *badger.Txn) error {
		for hash, entries := range b.entries {
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, hash)
			if err := txn.Set(key, encodeEntries(entries)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reconstructs a Book from every entry currently in the cache.
func (c *Cache) Load() (*Book, error) {
	b := New()
	err := c.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			hash := binary.BigEndian.Uint64(item.Key())
			err := item.Value(func(val []byte) error {
				b.entries[hash] = decodeEntries(val)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %d cached book positions", b.Size())
	return b, nil
}

// Probe looks up a single position's entries directly in Badger without
// materializing the whole book, for callers that only ever query one
// position per lookup and would rather not hold every entry in memory.
func (c *Cache) Probe(hash uint64) ([]Entry, error) {
	var entries []Entry
	err := c.db.View(func(txn *badger.Txn) error {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, hash)
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			entries = decodeEntries(val)
			return nil
		})
	})
	return entries, err
}

// encodeEntries packs entries as a flat sequence of 4-byte records: 2
// bytes Move, 2 bytes Weight.
func encodeEntries(entries []Entry) []byte {
	out := make([]byte, 4*len(entries))
	for i, e := range entries {
		binary.BigEndian.PutUint16(out[i*4:], uint16(e.Move))
		binary.BigEndian.PutUint16(out[i*4+2:], e.Weight)
	}
	return out
}

func decodeEntries(data []byte) []Entry {
	n := len(data) / 4
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = Entry{
			Move:   board.Move(binary.BigEndian.Uint16(data[i*4:])),
			Weight: binary.BigEndian.Uint16(data[i*4+2:]),
		}
	}
	return entries
}
