// Package zobrist supplies the immutable random key tables the board core
// XORs incrementally to maintain its position and pawn hashes.
//
// The tables are generated once at process start from a fixed seed so that
// hashes are reproducible across runs (useful for perft comparison and for
// persisting book/cache entries keyed by hash). Any internally-consistent
// table would satisfy the board core's invariants; the specific values here
// follow the Polyglot convention (one key per piece/square, one per
// castling right, one per en-passant file, one side-to-move key) so that a
// PolyglotHash can be derived for interoperability with external opening
// books.
package zobrist

// xorshift64* is the same small, seedable PRNG used by the teacher's key
// generator; it is good enough for hash-table distribution and, unlike
// math/rand, gives bit-for-bit reproducible keys across Go versions.
type rng struct{ state uint64 }

func newRNG(seed uint64) *rng {
	return &rng{state: seed}
}

func (r *rng) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

// Keys bundles every key the core needs, colour- and kind-indexed exactly
// as the board's piece bitboards are, so a caller can XOR
// Keys.Piece[color][kind][square] directly without translation.
type Keys struct {
	// Piece keys. Index 0 (Empty) is unused and always zero.
	Piece [2][7][64]uint64

	Color uint64

	// One independent key per castling bit: WOO, WOOO, BOO, BOOO, matching
	// CastlingMask's bit order.
	Castling [4]uint64

	// One key per en-passant file (a-h).
	EnPassant [8]uint64
}

// Default is the package-wide key table every board uses unless a caller
// supplies its own via NewKeys. Sharing one instance means two boards
// built in the same process always hash the same position identically.
var Default = NewKeys(0x98F107A2BEEF1234)

// NewKeys builds a fresh key table from the given seed. Most callers should
// use Default; NewKeys exists for tests that want to verify hash
// computations are independent of the specific key values used.
func NewKeys(seed uint64) *Keys {
	r := newRNG(seed)
	k := &Keys{}

	for c := 0; c < 2; c++ {
		for kind := 1; kind < 7; kind++ {
			for sq := 0; sq < 64; sq++ {
				k.Piece[c][kind][sq] = r.next()
			}
		}
	}

	k.Color = r.next()

	for i := range k.Castling {
		k.Castling[i] = r.next()
	}

	for i := range k.EnPassant {
		k.EnPassant[i] = r.next()
	}

	return k
}

// Polyglot holds a key table with the Polyglot layout (12x64 piece keys,
// four castling keys, eight en-passant file keys, one side-to-move key),
// used only to compute a PolyglotHash for the opening book. It is a
// completely separate table from Keys. Its values come from the same
// seeded generator as Keys, not from the published Polyglot random
// numbers, so hashes computed from it do not match externally produced
// Polyglot books.
type Polyglot struct {
	// Piece index ordering: black pawn..black king (0-5), then white
	// pawn..white king (6-11).
	Piece     [12][64]uint64
	Castling  [4]uint64 // white-OO, white-OOO, black-OO, black-OOO
	EnPassant [8]uint64
	Color     uint64
}

// DefaultPolyglot is generated from a fixed seed, so its hashes are
// reproducible across runs; it does not reproduce the published Polyglot
// key values.
var DefaultPolyglot = newPolyglot(0x37b4a4b3f0d1c0d0)

func newPolyglot(seed uint64) *Polyglot {
	r := newRNG(seed)
	p := &Polyglot{}

	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			p.Piece[piece][sq] = r.next()
		}
	}
	for i := range p.Castling {
		p.Castling[i] = r.next()
	}
	for i := range p.EnPassant {
		p.EnPassant[i] = r.next()
	}
	p.Color = r.next()

	return p
}
