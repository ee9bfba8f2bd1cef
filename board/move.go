package board

import "errors"

// ErrMalformedMove is returned when a UCI move string cannot be resolved
// against a position's legal move list.
var ErrMalformedMove = errors.New("board: malformed or illegal move")

// MoveFlag tags special move semantics that the board cannot infer from
// source/destination squares alone.
type MoveFlag uint8

const (
	Quiet MoveFlag = iota
	Capture
	DoublePawnPush
	EnPassant
	CastleKingside
	CastleQueenside
	PromoteKnight
	PromoteBishop
	PromoteRook
	PromoteQueen
)

func (f MoveFlag) IsPromotion() bool {
	return f == PromoteKnight || f == PromoteBishop || f == PromoteRook || f == PromoteQueen
}

func (f MoveFlag) PromotedPiece() Piece {
	switch f {
	case PromoteKnight:
		return Knight
	case PromoteBishop:
		return Bishop
	case PromoteRook:
		return Rook
	case PromoteQueen:
		return Queen
	default:
		return NoPiece
	}
}

// Move is an opaque legal move reference: source, destination, the moving
// piece, and whatever flag distinguishes it from a plain quiet move. Moves
// are values; a Move carries no pointer into any Position.
type Move struct {
	From, To Square
	Piece    Piece
	Flag     MoveFlag
}

// NullMove is the sentinel "no move known" placeholder: source equals
// destination, matching the convention that a default/zero move is never a
// legal chess move (a piece cannot move to its own square).
var NullMove = Move{From: 0, To: 0}

// IsNull reports whether m is the null-move sentinel.
func (m Move) IsNull() bool {
	return m.From == m.To
}

// UCI renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	buf := make([]byte, 0, 5)
	buf = append(buf, squareName(m.From)...)
	buf = append(buf, squareName(m.To)...)
	if m.Flag.IsPromotion() {
		buf = append(buf, m.Flag.PromotedPiece().Letter(Black))
	}
	return string(buf)
}

func squareName(s Square) string {
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}
