package board

import (
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN (or Shredder/X-FEN) string into a fresh Board.
// Parsing is atomic: the string is validated field by field before any
// piece is placed, so a malformed FEN never leaves a partially-mutated
// board behind.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, parseErr(fen, 0, "need at least 4 fields, got %d", len(parts))
	}
	if len(parts) > 6 {
		return nil, parseErr(fen, 0, "need at most 6 fields, got %d", len(parts))
	}

	if err := validatePlacement(fen, parts[0]); err != nil {
		return nil, err
	}
	if parts[1] != "w" && parts[1] != "b" {
		return nil, parseErr(fen, fieldOffset(fen, 1), "invalid side to move %q", parts[1])
	}
	if err := validateCastling(fen, parts[2]); err != nil {
		return nil, err
	}
	if parts[3] != "-" {
		if sq, ok := ParseSquare(parts[3]); !ok || (sq.Rank() != 2 && sq.Rank() != 5) {
			return nil, parseErr(fen, fieldOffset(fen, 3), "invalid en passant square %q", parts[3])
		}
	}

	b := NewBoard()

	placePieces(b, parts[0])

	if parts[1] == "w" {
		b.setColor(White)
	} else {
		b.setColor(Black)
	}

	b.IniKings[White] = b.Kings[White]
	b.IniKings[Black] = b.Kings[Black]

	variant, iniRooks, rights := resolveCastling(b, parts[2])
	b.Variant = variant
	b.IniRooks = iniRooks
	b.setCastling(rights)

	if parts[3] == "-" {
		b.setEnpassant(NoSquare)
	} else {
		sq, _ := ParseSquare(parts[3])
		b.setEnpassant(sq)
	}

	b.Fifty = 0
	if len(parts) > 4 {
		if n, err := strconv.Atoi(parts[4]); err == nil {
			if n < 0 {
				n = 0
			}
			b.Fifty = n
		}
	}

	fullMove := 1
	if len(parts) > 5 {
		if n, err := strconv.Atoi(parts[5]); err == nil {
			fullMove = n
		}
	}
	b.PlyCount = (fullMove-1)*2 + boolIndex(b.Color == Black)

	return b, nil
}

// fieldOffset returns the byte offset of the nth whitespace-separated
// field within fen, used only to make ParseError point at roughly the
// right place for field-level mistakes.
func fieldOffset(fen string, n int) int {
	fields := strings.Fields(fen)
	idx := 0
	for i := 0; i < n && i < len(fields); i++ {
		idx = strings.Index(fen[idx:], fields[i]) + idx + len(fields[i])
	}
	found := strings.Index(fen[idx:], fields[n])
	if found < 0 {
		return idx
	}
	return idx + found
}

func validatePlacement(fen, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return parseErr(fen, 0, "need 8 ranks in piece placement, got %d", len(ranks))
	}
	whiteKings, blackKings := 0, 0
	for i, rankStr := range ranks {
		file := 0
		for _, c := range rankStr {
			if file > 7 {
				return parseErr(fen, strings.Index(fen, placement), "too many squares in rank %d", 8-i)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			kind, color, ok := KindFromChar(byte(c))
			if !ok {
				return parseErr(fen, strings.Index(fen, placement), "invalid piece character %q", c)
			}
			if kind == KING {
				if color == White {
					whiteKings++
				} else {
					blackKings++
				}
			}
			file++
		}
		if file != 8 {
			return parseErr(fen, strings.Index(fen, placement), "rank %d has %d squares, want 8", 8-i, file)
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return parseErr(fen, strings.Index(fen, placement), "need exactly one king per side, got white=%d black=%d", whiteKings, blackKings)
	}
	return nil
}

func placePieces(b *Board, placement string) {
	ranks := strings.Split(placement, "/")
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			kind, color, _ := KindFromChar(byte(c))
			b.addPiece(kind, color, NewSquare(file, rank))
			file++
		}
	}
}

func validateCastling(fen, castling string) error {
	if castling == "-" {
		return nil
	}
	for _, c := range castling {
		switch {
		case c == 'K' || c == 'Q' || c == 'k' || c == 'q':
		case c >= 'A' && c <= 'H', c >= 'a' && c <= 'h':
		default:
			return parseErr(fen, strings.Index(fen, castling), "invalid castling character %q", c)
		}
	}
	return nil
}

// resolveCastling figures out, for each letter in the FEN castling field,
// which actual rook square it refers to. K/Q/k/q mean "the outermost
// rook on that side of the king" (X-FEN convention, also correct for
// the classical back rank); a letter A-H or a-h (Shredder-FEN) names the
// rook's file directly. Either way the result is normalized into
// IniRooks plus a CastlingMask, and the game is flagged Shuffle the
// moment a king or a castling rook sits off its classical home square.
func resolveCastling(b *Board, castling string) (Variant, [2][2]Square, CastlingMask) {
	iniRooks := [2][2]Square{{NoSquare, NoSquare}, {NoSquare, NoSquare}}
	variant := Classical
	var rights CastlingMask

	if b.Kings[White] != E1 {
		variant = Shuffle
	}
	if b.Kings[Black] != E8 {
		variant = Shuffle
	}

	if castling == "-" {
		return variant, iniRooks, rights
	}

	for _, ch := range castling {
		var color Color
		var backRank int
		switch {
		case ch == 'K' || ch == 'Q':
			color, backRank = White, 0
		case ch == 'k' || ch == 'q':
			color, backRank = Black, 7
		case ch >= 'A' && ch <= 'H':
			color, backRank = White, 0
		default: // 'a'-'h'
			color, backRank = Black, 7
		}

		kingFile := b.Kings[color].File()
		var rookSq Square

		switch ch {
		case 'K', 'k':
			rookSq = findRookFromFile(b, color, backRank, 7, kingFile, -1)
		case 'Q', 'q':
			rookSq = findRookFromFile(b, color, backRank, 0, kingFile, 1)
		default:
			file := int(strings.ToUpper(string(ch))[0] - 'A')
			rookSq = NewSquare(file, backRank)
		}
		if rookSq == NoSquare {
			continue
		}

		side := 1 // kingside
		if rookSq.File() < kingFile {
			side = 0
		}
		iniRooks[color][side] = rookSq
		rights |= rightBit[color][side]

		if rookSq.File() != 0 && rookSq.File() != 7 {
			variant = Shuffle
		}
	}

	return variant, iniRooks, rights
}

// findRookFromFile scans the back rank from `from` toward `king` (in
// steps of `step`) for the first rook, implementing X-FEN's "outermost
// rook on this side of the king" rule.
func findRookFromFile(b *Board, color Color, rank, from, kingFile, step int) Square {
	for file := from; file != kingFile; file += step {
		sq := NewSquare(file, rank)
		if kind, c := b.PieceAt(sq); kind == ROOK && c == color {
			return sq
		}
	}
	return NoSquare
}

// AsFEN renders the board back into FEN. Castling rights are always
// emitted in KQkq form; shuffle-chess games that need Shredder-style
// file letters should use AsShredderFEN instead.
func (b *Board) AsFEN() string {
	return b.asFEN(false)
}

// AsShredderFEN renders FEN with castling rights as rook-file letters
// (uppercase for white, lowercase for black), the unambiguous form for
// positions where more than one rook could sit on either side of the king.
func (b *Board) AsShredderFEN() string {
	return b.asFEN(true)
}

func (b *Board) asFEN(shredder bool) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			kind, c := b.PieceAt(NewSquare(file, rank))
			if kind == EMPTY {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(kind.Glyph(c))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.Color == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castlingFEN(shredder))

	sb.WriteByte(' ')
	sb.WriteString(b.Enpassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.Fifty))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.PlyCount/2 + 1))

	return sb.String()
}

func (b *Board) castlingFEN(shredder bool) string {
	if b.Castling == NoCastling {
		return "-"
	}
	if !shredder {
		return b.Castling.String()
	}
	var sb strings.Builder
	if b.Castling&WhiteKingside != 0 {
		sb.WriteByte('A' + byte(b.IniRooks[White][1].File()))
	}
	if b.Castling&WhiteQueenside != 0 {
		sb.WriteByte('A' + byte(b.IniRooks[White][0].File()))
	}
	if b.Castling&BlackKingside != 0 {
		sb.WriteByte('a' + byte(b.IniRooks[Black][1].File()))
	}
	if b.Castling&BlackQueenside != 0 {
		sb.WriteByte('a' + byte(b.IniRooks[Black][0].File()))
	}
	return sb.String()
}

// ComputeHash recomputes the Zobrist hash from scratch; used to verify
// the incrementally-maintained Board.Hash in tests.
func (b *Board) ComputeHash() uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		for kind := PAWN; kind <= KING; kind++ {
			bb := b.Boards[c][kind]
			for bb != 0 {
				hash ^= b.Keys.Piece[c][kind][bb.PopLSB()]
			}
		}
	}
	if b.Color == Black {
		hash ^= b.Keys.Color
	}
	for i := 0; i < 4; i++ {
		if b.Castling&(1<<i) != 0 {
			hash ^= b.Keys.Castling[i]
		}
	}
	if b.Enpassant != NoSquare {
		hash ^= b.Keys.EnPassant[b.Enpassant.File()]
	}
	return hash
}

// ComputePawnHash recomputes the pawn-only hash from scratch.
func (b *Board) ComputePawnHash() uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		bb := b.Boards[c][PAWN]
		for bb != 0 {
			hash ^= b.Keys.Piece[c][PAWN][bb.PopLSB()]
		}
	}
	return hash
}
