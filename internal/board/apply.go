package board

// ApplyMove executes m, which must be at least pseudo-legal (Board does
// not check legality itself — see the Board doc comment), and pushes
// enough state onto the history stack for a matching PopMove to reverse
// it exactly.
func (b *Board) ApplyMove(m Move) {
	us := b.Color
	them := us.Other()
	from, to := m.From(), m.To()

	entry := historyEntry{
		move:      m,
		enpassant: b.Enpassant,
		castling:  b.Castling,
		hash:      b.Hash,
		pawnHash:  b.PawnHash,
		fifty:     b.Fifty,
		checked:   b.checked,
		opChecked: b.opChecked,
	}

	movingKind := b.Mailbox[from]
	captured := EMPTY

	switch {
	case m.IsCastle():
		side := castleSide(m)
		rookFrom := b.IniRooks[us][side]
		kingFrom := b.IniKings[us]
		kingTo := FinKings[us][side]
		rookTo := FinRooks[us][side]

		b.removePiece(kingFrom)
		b.removePiece(rookFrom)
		b.addPiece(KING, us, kingTo)
		b.addPiece(ROOK, us, rookTo)
		b.HasCastled[us] = true

	case m.IsEnPassant():
		capSq := NewSquare(to.File(), from.Rank())
		captured = b.removePiece(capSq)
		b.movePiece(from, to)

	case m.IsPromotion():
		captured = b.Mailbox[to]
		if captured != EMPTY {
			b.removePiece(to)
		}
		b.removePiece(from)
		b.addPiece(m.PromotionKind(), us, to)

	default:
		captured = b.Mailbox[to]
		if captured != EMPTY {
			b.removePiece(to)
		}
		b.movePiece(from, to)
	}

	entry.captured = captured
	b.History = append(b.History, entry)

	if movingKind == PAWN || captured != EMPTY {
		b.Fifty = 0
	} else {
		b.Fifty++
	}

	var epTarget Square = NoSquare
	if movingKind == PAWN && abs(to.Rank()-from.Rank()) == 2 {
		epTarget = NewSquare(from.File(), (from.Rank()+to.Rank())/2)
	}

	newRights := b.Castling
	if movingKind == KING {
		newRights &^= rightBit[us][0] | rightBit[us][1]
	}
	if m.IsCastle() {
		newRights &^= rightBit[us][0] | rightBit[us][1]
	}
	if from == b.IniRooks[us][0] {
		newRights &^= rightBit[us][0]
	}
	if from == b.IniRooks[us][1] {
		newRights &^= rightBit[us][1]
	}
	if to == b.IniRooks[them][0] {
		newRights &^= rightBit[them][0]
	}
	if to == b.IniRooks[them][1] {
		newRights &^= rightBit[them][1]
	}

	b.setCastling(newRights)
	b.setEnpassant(epTarget)
	b.setColor(them)
	b.PlyCount++

	b.checked = unknown
	b.opChecked = unknown
}

// castleSide returns 0 (queenside) or 1 (kingside) for a castling move's
// flag.
func castleSide(m Move) int {
	if m.IsKingsideCastle() {
		return 1
	}
	return 0
}

// PopMove undoes the most recently applied move. Calling it with no
// prior ApplyMove is a programming error and panics on the empty-slice
// index, same as popping an empty stack anywhere else.
func (b *Board) PopMove() {
	n := len(b.History) - 1
	entry := b.History[n]
	b.History = b.History[:n]

	mover := b.Color.Other()
	m := entry.move
	from, to := m.From(), m.To()

	switch {
	case m.IsCastle():
		side := castleSide(m)
		rookTo := FinRooks[mover][side]
		kingTo := FinKings[mover][side]
		rookFrom := b.IniRooks[mover][side]

		b.removePiece(kingTo)
		b.removePiece(rookTo)
		b.addPiece(KING, mover, b.IniKings[mover])
		b.addPiece(ROOK, mover, rookFrom)
		b.HasCastled[mover] = false

	case m.IsEnPassant():
		b.movePiece(to, from)
		capSq := NewSquare(to.File(), from.Rank())
		b.addPiece(PAWN, mover.Other(), capSq)

	case m.IsPromotion():
		b.removePiece(to)
		b.addPiece(PAWN, mover, from)
		if entry.captured != EMPTY {
			b.addPiece(entry.captured, mover.Other(), to)
		}

	default:
		b.movePiece(to, from)
		if entry.captured != EMPTY {
			b.addPiece(entry.captured, mover.Other(), to)
		}
	}

	b.Color = mover
	b.Enpassant = entry.enpassant
	b.Castling = entry.castling
	b.Hash = entry.hash
	b.PawnHash = entry.pawnHash
	b.Fifty = entry.fifty
	b.checked = entry.checked
	b.opChecked = entry.opChecked
	b.PlyCount--
}
