package board

// IsChecked reports whether the side to move is in check. The result is
// memoized in b.checked and invalidated by the next ApplyMove/PopMove;
// AttackOracle must be wired (see its doc comment) before this is called.
func (b *Board) IsChecked() bool {
	if b.checked == unknown {
		if AttackOracle(b, b.Kings[b.Color], b.Color.Other()) {
			b.checked = isTrue
		} else {
			b.checked = isFalse
		}
	}
	return b.checked == isTrue
}

// OpIsChecked reports whether the side that just moved left its own
// king in check — the standard pseudo-legal-move legality test: apply
// the move, ask OpIsChecked, and reject the move if true.
func (b *Board) OpIsChecked() bool {
	if b.opChecked == unknown {
		mover := b.Color.Other()
		if AttackOracle(b, b.Kings[mover], b.Color) {
			b.opChecked = isTrue
		} else {
			b.opChecked = isFalse
		}
	}
	return b.opChecked == isTrue
}

// RepetitionCount counts how many prior positions in the history stack
// have the same hash as the current position, scanning back in 2-ply
// steps (positions with the same side to move) only as far as the fifty
// move counter allows, since anything before the last capture or pawn
// move cannot repeat the current position.
func (b *Board) RepetitionCount() int {
	count := 0
	limit := len(b.History)
	if b.Fifty < limit {
		limit = b.Fifty
	}
	for i := 2; i <= limit; i += 2 {
		idx := len(b.History) - i
		if idx < 0 {
			break
		}
		if b.History[idx].hash == b.Hash {
			count++
		}
	}
	return count
}

// IsThreefoldRepetition reports whether the current position has
// occurred at least twice before (three occurrences total).
func (b *Board) IsThreefoldRepetition() bool {
	return b.RepetitionCount() >= 2
}

// IsFiftyMoveRule reports whether the fifty-move (no-progress) rule
// allows a draw claim.
func (b *Board) IsFiftyMoveRule() bool {
	return b.Fifty >= 100
}

// IsInsufficientMaterial reports the common dead positions: king vs
// king, king+minor vs king, and king+bishop vs king+bishop with both
// bishops on the same color complex.
func (b *Board) IsInsufficientMaterial() bool {
	all := b.Blocker &^ (b.Boards[White][KING] | b.Boards[Black][KING])
	if all.PopCount() == 0 {
		return true
	}
	if all.PopCount() == 2 {
		wb, bb := b.Boards[White][BISHOP], b.Boards[Black][BISHOP]
		if wb.PopCount() != 1 || bb.PopCount() != 1 {
			return false
		}
		const darkSquares Bitboard = 0xAA55AA55AA55AA55
		return (wb&darkSquares == 0) == (bb&darkSquares == 0)
	}
	if all.PopCount() > 2 {
		return false
	}
	if b.Boards[White][KNIGHT]|b.Boards[Black][KNIGHT] != 0 {
		return true
	}
	if b.Boards[White][BISHOP]|b.Boards[Black][BISHOP] != 0 {
		return true
	}
	return false
}
