// Package movegen generates pseudo-legal and legal moves for a
// board.Board, and exercises board.AttackOracle (wired by
// internal/attack) to filter pseudo-legal moves down to legal ones.
package movegen

import (
	"github.com/castleforge/chesscore/internal/attack"
	"github.com/castleforge/chesscore/internal/board"
)

// GenerateLegalMoves returns every legal move in b's current position.
// It generates pseudo-legal moves, then for each one applies it, asks
// OpIsChecked (did the side that just moved leave its own king in
// check?), and pops — the same apply/check/pop discipline used to
// validate any move the board core itself cannot judge.
func GenerateLegalMoves(b *board.Board) *board.MoveList {
	pseudo := GeneratePseudoLegalMoves(b)
	legal := &board.MoveList{}
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		b.ApplyMove(m)
		ok := !b.OpIsChecked()
		b.PopMove()
		if ok {
			legal.Add(m)
		}
	}
	return legal
}

// GeneratePseudoLegalMoves returns every move that obeys piece movement
// rules but may leave the mover's own king in check.
func GeneratePseudoLegalMoves(b *board.Board) *board.MoveList {
	ml := &board.MoveList{}
	generateAll(b, ml)
	return ml
}

// GenCheckEvasions is an alias of GenerateLegalMoves kept for callers
// that want to document intent when the position is already known to be
// in check; the underlying generator handles both cases identically,
// since apply/OpIsChecked filtering is exact either way.
func GenCheckEvasions(b *board.Board) *board.MoveList {
	return GenerateLegalMoves(b)
}

func generateAll(b *board.Board, ml *board.MoveList) {
	us := b.Color
	them := us.Other()
	occupied := b.Blocker
	enemies := b.Friends[them]

	generatePawnMoves(b, ml, us, enemies, occupied)

	knights := b.Boards[us][board.KNIGHT]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := attack.KnightAttacks(from) &^ b.Friends[us]
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}

	bishops := b.Boards[us][board.BISHOP]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := attack.BishopAttacks(from, occupied) &^ b.Friends[us]
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}

	rooks := b.Boards[us][board.ROOK]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := attack.RookAttacks(from, occupied) &^ b.Friends[us]
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}

	queens := b.Boards[us][board.QUEEN]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := attack.QueenAttacks(from, occupied) &^ b.Friends[us]
		for attacks != 0 {
			ml.Add(board.NewMove(from, attacks.PopLSB()))
		}
	}

	from := b.Kings[us]
	attacks := attack.KingAttacks(from) &^ b.Friends[us]
	for attacks != 0 {
		ml.Add(board.NewMove(from, attacks.PopLSB()))
	}

	generateCastlingMoves(b, ml, us)
}

func generatePawnMoves(b *board.Board, ml *board.MoveList, us board.Color, enemies, occupied board.Bitboard) {
	pawns := b.Boards[us][board.PAWN]
	empty := ^occupied

	var push1, push2, attackL, attackR board.Bitboard
	var promoRank board.Bitboard
	var pushDir int

	if us == board.White {
		push1 = pawns.North() & empty
		push2 = (push1 & board.Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promoRank = board.Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & board.Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promoRank = board.Rank1
		pushDir = -8
	}

	for bb := push1 &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-pushDir), to))
	}
	for bb := push2; bb != 0; {
		to := bb.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-2*pushDir), to))
	}
	for bb := attackL &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-pushDir+1), to))
	}
	for bb := attackR &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(board.NewMove(board.Square(int(to)-pushDir-1), to))
	}
	for bb := push1 & promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, board.Square(int(to)-pushDir), to)
	}
	for bb := attackL & promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, board.Square(int(to)-pushDir+1), to)
	}
	for bb := attackR & promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, board.Square(int(to)-pushDir-1), to)
	}

	if b.Enpassant != board.NoSquare {
		epBB := board.SquareBB(b.Enpassant)
		var epAttackers board.Bitboard
		if us == board.White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			ml.Add(board.NewEnPassant(epAttackers.PopLSB(), b.Enpassant))
		}
	}
}

func addPromotions(ml *board.MoveList, from, to board.Square) {
	ml.Add(board.NewPromotion(from, to, board.QUEEN))
	ml.Add(board.NewPromotion(from, to, board.ROOK))
	ml.Add(board.NewPromotion(from, to, board.BISHOP))
	ml.Add(board.NewPromotion(from, to, board.KNIGHT))
}

// generateCastlingMoves handles both Classical and Shuffle boards
// uniformly: the squares that must be empty and the squares the king
// must not cross under attack are derived from where the king and rook
// actually start and where they must end up (FinKings/FinRooks), rather
// than hardcoded classical files.
func generateCastlingMoves(b *board.Board, ml *board.MoveList, us board.Color) {
	them := us.Other()
	kingFrom := b.Kings[us]

	for side := 0; side < 2; side++ {
		kingside := side == 1
		if !b.Castling.Has(us, kingside) {
			continue
		}
		rookFrom := b.IniRooks[us][side]
		if rookFrom == board.NoSquare {
			continue
		}
		kingTo := board.FinKings[us][side]
		rookTo := board.FinRooks[us][side]

		if !castlingPathClear(b, kingFrom, rookFrom, kingTo, rookTo) {
			continue
		}
		if castlingPathAttacked(b, kingFrom, kingTo, them) {
			continue
		}
		ml.Add(board.NewCastle(kingFrom, kingTo, kingside))
	}
}

// castlingPathClear checks that every square from the king's start to its
// destination and from the rook's start to its destination, both ends
// included, is empty, except for the king and rook themselves (needed in
// shuffle chess, where the king and rook's traversal can overlap their
// own start squares).
func castlingPathClear(b *board.Board, kingFrom, rookFrom, kingTo, rookTo board.Square) bool {
	occupied := b.Blocker &^ board.SquareBB(kingFrom) &^ board.SquareBB(rookFrom)
	path := squaresBetweenInclusive(kingFrom, kingTo) | squaresBetweenInclusive(rookFrom, rookTo)
	return occupied&path == 0
}

func squaresBetweenInclusive(a, z board.Square) board.Bitboard {
	lo, hi := a, z
	if lo > hi {
		lo, hi = hi, lo
	}
	var bb board.Bitboard
	for sq := lo; sq <= hi; sq++ {
		bb |= board.SquareBB(sq)
	}
	return bb
}

// castlingPathAttacked reports whether any square the king passes
// through (inclusive of start and end) is attacked, which forbids
// castling even though the board core itself never checks legality.
func castlingPathAttacked(b *board.Board, kingFrom, kingTo board.Square, them board.Color) bool {
	lo, hi := kingFrom, kingTo
	if lo > hi {
		lo, hi = hi, lo
	}
	for sq := lo; sq <= hi; sq++ {
		if attack.IsSquareAttacked(b, sq, them) {
			return true
		}
	}
	return false
}

// HasLegalMoves reports whether the side to move has at least one legal
// move, short-circuiting as soon as one is found.
func HasLegalMoves(b *board.Board) bool {
	pseudo := GeneratePseudoLegalMoves(b)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		b.ApplyMove(m)
		ok := !b.OpIsChecked()
		b.PopMove()
		if ok {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no
// legal reply.
func IsCheckmate(b *board.Board) bool {
	return b.IsChecked() && !HasLegalMoves(b)
}

// IsStalemate reports whether the side to move is not in check but has
// no legal move.
func IsStalemate(b *board.Board) bool {
	return !b.IsChecked() && !HasLegalMoves(b)
}
