package board

import "fmt"

// ParseError reports a FEN syntax problem together with the byte offset
// into the original string where it was detected, so a caller (a REPL,
// a test failure message) can point at the exact character.
type ParseError struct {
	FEN    string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("board: %s at offset %d in %q", e.Msg, e.Offset, e.FEN)
}

func parseErr(fen string, offset int, format string, args ...any) error {
	return &ParseError{FEN: fen, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
