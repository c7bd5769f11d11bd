package attack

import "github.com/castleforge/chesscore/internal/board"

var (
	knightAttacks [64]board.Bitboard
	kingAttacks   [64]board.Bitboard
	pawnAttacks   [2][64]board.Bitboard
	pawnPushes    [2][64]board.Bitboard

	betweenBB [64][64]board.Bitboard
	lineBB    [64][64]board.Bitboard
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initBetweenBB()
	initLineBB()
	initMagics()

	board.AttackOracle = IsSquareAttacked
}

func initKnightAttacks() {
	for sq := board.A1; sq <= board.H8; sq++ {
		bb := board.SquareBB(sq)
		attacks := board.Empty
		attacks |= (bb << 17) & board.NotFileA
		attacks |= (bb << 15) & board.NotFileH
		attacks |= (bb >> 17) & board.NotFileH
		attacks |= (bb >> 15) & board.NotFileA
		attacks |= (bb << 10) & board.NotFileAB
		attacks |= (bb << 6) & board.NotFileGH
		attacks |= (bb >> 10) & board.NotFileGH
		attacks |= (bb >> 6) & board.NotFileAB
		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := board.A1; sq <= board.H8; sq++ {
		bb := board.SquareBB(sq)
		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()
		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := board.A1; sq <= board.H8; sq++ {
		bb := board.SquareBB(sq)
		pawnAttacks[board.White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[board.Black][sq] = bb.SouthEast() | bb.SouthWest()
		pawnPushes[board.White][sq] = bb.North()
		pawnPushes[board.Black][sq] = bb.South()
	}
}

func initBetweenBB() {
	for sq1 := board.A1; sq1 <= board.H8; sq1++ {
		for sq2 := board.A1; sq2 <= board.H8; sq2++ {
			if sq1 == sq2 {
				continue
			}
			f1, r1 := sq1.File(), sq1.Rank()
			f2, r2 := sq2.File(), sq2.Rank()
			df := sign(f2 - f1)
			dr := sign(r2 - r1)
			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue
			}
			if df == 0 && dr == 0 {
				continue
			}
			var between board.Bitboard
			f, r := f1+df, r1+dr
			for f != f2 || r != r2 {
				if f < 0 || f > 7 || r < 0 || r > 7 {
					break
				}
				between |= board.SquareBB(board.NewSquare(f, r))
				f += df
				r += dr
			}
			betweenBB[sq1][sq2] = between
		}
	}
}

func initLineBB() {
	for sq1 := board.A1; sq1 <= board.H8; sq1++ {
		for sq2 := board.A1; sq2 <= board.H8; sq2++ {
			if sq1 == sq2 {
				continue
			}
			f1, r1 := sq1.File(), sq1.Rank()
			f2, r2 := sq2.File(), sq2.Rank()
			df := sign(f2 - f1)
			dr := sign(r2 - r1)
			if df != 0 && dr != 0 && abs(f2-f1) != abs(r2-r1) {
				continue
			}
			if df == 0 && dr == 0 {
				continue
			}
			var line board.Bitboard
			f, r := f1, r1
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= board.SquareBB(board.NewSquare(f, r))
				f -= df
				r -= dr
			}
			f, r = f1+df, r1+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				line |= board.SquareBB(board.NewSquare(f, r))
				f += df
				r += dr
			}
			lineBB[sq1][sq2] = line
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq board.Square) board.Bitboard { return knightAttacks[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq board.Square) board.Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the pawn capture set from sq for color c.
func PawnAttacks(sq board.Square, c board.Color) board.Bitboard { return pawnAttacks[c][sq] }

// PawnPushes returns the single-push target from sq for color c.
func PawnPushes(sq board.Square, c board.Color) board.Bitboard { return pawnPushes[c][sq] }

// BishopAttacks returns the bishop attack set from sq given occupancy.
func BishopAttacks(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return getBishopAttacks(sq, occupied)
}

// RookAttacks returns the rook attack set from sq given occupancy.
func RookAttacks(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return getRookAttacks(sq, occupied)
}

// QueenAttacks returns the queen attack set from sq given occupancy.
func QueenAttacks(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// Between returns the squares strictly between sq1 and sq2 if aligned,
// else an empty bitboard.
func Between(sq1, sq2 board.Square) board.Bitboard { return betweenBB[sq1][sq2] }

// Line returns every square on the rank, file or diagonal through sq1
// and sq2, or empty if they are not aligned.
func Line(sq1, sq2 board.Square) board.Bitboard { return lineBB[sq1][sq2] }

// Aligned reports whether sq3 lies on the line through sq1 and sq2.
func Aligned(sq1, sq2, sq3 board.Square) bool {
	return lineBB[sq1][sq2]&board.SquareBB(sq3) != 0
}

// AttackersTo returns every piece on b attacking sq, given an explicit
// occupancy (so callers can probe through a hypothetically-removed
// blocker, as pin detection does).
func AttackersTo(b *board.Board, sq board.Square, occupied board.Bitboard) board.Bitboard {
	return (pawnAttacks[board.Black][sq] & b.Boards[board.White][board.PAWN]) |
		(pawnAttacks[board.White][sq] & b.Boards[board.Black][board.PAWN]) |
		(knightAttacks[sq] & (b.Boards[board.White][board.KNIGHT] | b.Boards[board.Black][board.KNIGHT])) |
		(kingAttacks[sq] & (b.Boards[board.White][board.KING] | b.Boards[board.Black][board.KING])) |
		(BishopAttacks(sq, occupied) & (b.Boards[board.White][board.BISHOP] | b.Boards[board.Black][board.BISHOP] | b.Boards[board.White][board.QUEEN] | b.Boards[board.Black][board.QUEEN])) |
		(RookAttacks(sq, occupied) & (b.Boards[board.White][board.ROOK] | b.Boards[board.Black][board.ROOK] | b.Boards[board.White][board.QUEEN] | b.Boards[board.Black][board.QUEEN]))
}

// AttackersByColor returns the pieces of color c on b attacking sq.
func AttackersByColor(b *board.Board, sq board.Square, c board.Color, occupied board.Bitboard) board.Bitboard {
	enemy := c.Other()
	return (pawnAttacks[enemy][sq] & b.Boards[c][board.PAWN]) |
		(knightAttacks[sq] & b.Boards[c][board.KNIGHT]) |
		(kingAttacks[sq] & b.Boards[c][board.KING]) |
		(BishopAttacks(sq, occupied) & (b.Boards[c][board.BISHOP] | b.Boards[c][board.QUEEN])) |
		(RookAttacks(sq, occupied) & (b.Boards[c][board.ROOK] | b.Boards[c][board.QUEEN]))
}

// IsSquareAttacked reports whether byColor attacks sq on b. This is the
// function wired into board.AttackOracle.
func IsSquareAttacked(b *board.Board, sq board.Square, byColor board.Color) bool {
	return AttackersByColor(b, sq, byColor, b.Blocker) != 0
}

// ComputePinned returns the bitboard of pieces of color us that are
// pinned to their king by an enemy sniper (rook/bishop/queen) along a
// ray, via x-ray: a pin exists when exactly one piece (and it belongs
// to us) sits between the king and a would-be attacker.
func ComputePinned(b *board.Board, us board.Color) board.Bitboard {
	them := us.Other()
	ksq := b.Kings[us]
	var pinned board.Bitboard

	snipers := RookAttacks(ksq, 0) & (b.Boards[them][board.ROOK] | b.Boards[them][board.QUEEN])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & b.Blocker
		if blockers.PopCount() == 1 && blockers&b.Friends[us] != 0 {
			pinned |= blockers
		}
	}

	snipers = BishopAttacks(ksq, 0) & (b.Boards[them][board.BISHOP] | b.Boards[them][board.QUEEN])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & b.Blocker
		if blockers.PopCount() == 1 && blockers&b.Friends[us] != 0 {
			pinned |= blockers
		}
	}

	return pinned
}

// Checkers returns the bitboard of enemy pieces currently giving check
// to color us's king.
func Checkers(b *board.Board, us board.Color) board.Bitboard {
	kingBB := b.Boards[us][board.KING]
	if kingBB == 0 {
		return 0
	}
	return AttackersByColor(b, kingBB.LSB(), us.Other(), b.Blocker)
}
