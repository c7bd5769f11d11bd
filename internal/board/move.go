package board

import "fmt"

// Move packs a move into 16 bits:
//
//	bits 0-5:   destination square (0-63)
//	bits 6-11:  origin square (0-63)
//	bits 12-15: flag
//
// Promotion flags double as the promoted kind: flag value = kind + 2, so
// KNIGHT(2)->4, BISHOP(3)->5, ROOK(4)->6, QUEEN(5)->7.
type Move uint16

// Move flags.
const (
	NORMAL Move = iota
	KING_CASTLE
	QUEEN_CASTLE
	ENPASSANT
	// Promotion flags follow: kind + 2.
)

// NoMove is the all-ones move, used as a sentinel for "no move here".
const NoMove Move = 0xFFFF

func promotionFlag(kind PieceKind) Move { return Move(kind) + 2 }

// NewMove builds a plain move with no special flag.
func NewMove(from, to Square) Move {
	return Move(to) | Move(from)<<6
}

// NewCastle builds a castling move: a kingside castle when kingside is
// true, a queenside castle otherwise.
func NewCastle(from, to Square, kingside bool) Move {
	flag := QUEEN_CASTLE
	if kingside {
		flag = KING_CASTLE
	}
	return Move(to) | Move(from)<<6 | flag<<12
}

// NewEnPassant builds an en-passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(to) | Move(from)<<6 | ENPASSANT<<12
}

// NewPromotion builds a promotion move; kind must be KNIGHT, BISHOP, ROOK
// or QUEEN.
func NewPromotion(from, to Square, kind PieceKind) Move {
	return Move(to) | Move(from)<<6 | promotionFlag(kind)<<12
}

// To returns the destination square.
func (m Move) To() Square { return Square(m & 0x3F) }

// From returns the origin square.
func (m Move) From() Square { return Square((m >> 6) & 0x3F) }

// Flag returns the raw 4-bit flag.
func (m Move) Flag() Move { return (m >> 12) & 0xF }

// IsPromotion reports whether the move's flag encodes a promoted kind.
func (m Move) IsPromotion() bool { return m.Flag() >= 4 }

// PromotionKind returns the promoted piece kind; only meaningful when
// IsPromotion is true.
func (m Move) PromotionKind() PieceKind { return PieceKind(m.Flag() - 2) }

// IsCastle reports whether the move is either castling flag.
func (m Move) IsCastle() bool { return m.Flag() == KING_CASTLE || m.Flag() == QUEEN_CASTLE }

// IsKingsideCastle reports whether the move is the kingside castle flag.
func (m Move) IsKingsideCastle() bool { return m.Flag() == KING_CASTLE }

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == ENPASSANT }

// String renders UCI notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.PromotionKind().Char())
	}
	return s
}

// ParseUCI parses a UCI move string against a live board to recover the
// special-move flags (castle, en passant, promotion) a bare from/to pair
// cannot express. It does not check legality.
func ParseUCI(s string, b *Board) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("board: invalid move %q", s)
	}
	from, ok := ParseSquare(s[0:2])
	if !ok {
		return NoMove, fmt.Errorf("board: invalid square %q", s[0:2])
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return NoMove, fmt.Errorf("board: invalid square %q", s[2:4])
	}

	if len(s) >= 5 {
		kind, _, ok := KindFromChar(s[4])
		if !ok || kind == PAWN || kind == KING {
			return NoMove, fmt.Errorf("board: invalid promotion piece %q", s[4:5])
		}
		return NewPromotion(from, to, kind), nil
	}

	kind := b.Mailbox[from]
	if kind == KING && abs(int(to)-int(from)) == 2 {
		return NewCastle(from, to, to.File() > from.File()), nil
	}
	if kind == PAWN && to == b.Enpassant {
		return NewEnPassant(from, to), nil
	}
	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity move buffer used by move generators to
// avoid per-call allocation.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves currently stored.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() { ml.count = 0 }

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the stored moves as a slice sharing the list's backing
// array; it is invalidated by the next Add past the original length.
func (ml *MoveList) Slice() []Move { return ml.moves[:ml.count] }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
