package board

import "github.com/castleforge/chesscore/internal/zobrist"

// polyglotKindIndex maps our PieceKind to the piece ordering of
// zobrist.Polyglot (black pawn..king = 0-5, white pawn..king = 6-11); PieceKind is 1-indexed
// (PAWN=1) so this table starts at that offset.
var polyglotKindIndex = [2][7]int{
	{-1, 6, 7, 8, 9, 10, 11},
	{-1, 0, 1, 2, 3, 4, 5},
}

// PolyglotHash computes the position's hash from the zobrist.DefaultPolyglot
// table, independent of the incremental Board.Hash used for internal
// bookkeeping. That table is generated from a seed rather than holding the
// published Polyglot numbers, so the result does not match the keys stored
// in externally produced .bin books. It is recomputed from scratch each call; callers
// that probe a book on every move (internal/book) are expected to call
// it only when actually probing.
func (b *Board) PolyglotHash() uint64 {
	keys := zobrist.DefaultPolyglot
	var hash uint64

	for c := White; c <= Black; c++ {
		for kind := PAWN; kind <= KING; kind++ {
			bb := b.Boards[c][kind]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= keys.Piece[polyglotKindIndex[c][kind]][sq]
			}
		}
	}

	if b.Castling&WhiteKingside != 0 {
		hash ^= keys.Castling[0]
	}
	if b.Castling&WhiteQueenside != 0 {
		hash ^= keys.Castling[1]
	}
	if b.Castling&BlackKingside != 0 {
		hash ^= keys.Castling[2]
	}
	if b.Castling&BlackQueenside != 0 {
		hash ^= keys.Castling[3]
	}

	if b.Enpassant != NoSquare {
		hash ^= keys.EnPassant[b.Enpassant.File()]
	}

	if b.Color == White {
		hash ^= keys.Color
	}

	return hash
}
