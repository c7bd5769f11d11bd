// Package board implements the low-level chess board core: position
// representation, FEN parsing and emission, incremental Zobrist hashing,
// and move make/unmake. Move generation and attack detection live in
// sibling packages (internal/movegen, internal/attack) that consume the
// bitboards exposed here; the two sides meet through board.AttackOracle.
package board

import "fmt"

// Square is a board square, 0..63, file + rank*8 (a1=0, h1=7, a8=56, h8=63).
type Square int

// NoSquare marks the absence of a square: no en-passant target, no king on
// the board, no castling rook assigned yet in a shuffle-chess FEN.
const NoSquare Square = -1

// File returns the file of sq, 0 (a) through 7 (h).
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns the rank of sq, 0 (rank 1) through 7 (rank 8).
func (sq Square) Rank() int { return int(sq) >> 3 }

// NewSquare builds a Square from a 0-indexed file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

// String renders algebraic notation, e.g. "e4", or "-" for NoSquare.
func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return squareNames[sq]
}

// squareNames backs String via a cheap slice index instead of formatting
// on every call, and gives ParseSquare a name->square map for free.
var squareNames [64]string
var nameToSquare map[string]Square

func init() {
	nameToSquare = make(map[string]Square, 64)
	for sq := Square(0); sq < 64; sq++ {
		name := fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
		squareNames[sq] = name
		nameToSquare[name] = sq
	}
}

// ParseSquare parses algebraic notation ("e4") into a Square. ok is false
// for anything that is not one of the 64 square names.
func ParseSquare(s string) (sq Square, ok bool) {
	sq, ok = nameToSquare[s]
	return sq, ok
}

// Named squares, used throughout castling and promotion-rank logic.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)
