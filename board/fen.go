package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedFEN is returned by FromFEN for any input that cannot be
// parsed into a Position. Per the malformed-input error policy, the
// caller's existing state is left untouched — FromFEN never mutates
// anything, it only fails to produce a new Position.
var ErrMalformedFEN = errors.New("board: malformed FEN")

// FromFEN parses Forsyth-Edwards Notation into a Position.
func FromFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("%w: expected at least 4 fields, got %d", ErrMalformedFEN, len(fields))
	}

	var pos Position
	pos.EnPassant = NoSquare

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("%w: expected 8 ranks, got %d", ErrMalformedFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				piece, color, err := pieceFromLetter(byte(ch))
				if err != nil {
					return Position{}, err
				}
				if file > 7 {
					return Position{}, fmt.Errorf("%w: rank %d overflows", ErrMalformedFEN, rank)
				}
				pos.place(NewSquare(file, rank), piece, color)
				file++
			}
		}
		if file != 8 {
			return Position{}, fmt.Errorf("%w: rank %d has %d files, want 8", ErrMalformedFEN, rank, file)
		}
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return Position{}, fmt.Errorf("%w: bad side to move %q", ErrMalformedFEN, fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				pos.Castle |= WhiteKingside
			case 'Q':
				pos.Castle |= WhiteQueenside
			case 'k':
				pos.Castle |= BlackKingside
			case 'q':
				pos.Castle |= BlackQueenside
			default:
				return Position{}, fmt.Errorf("%w: bad castling field %q", ErrMalformedFEN, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := parseSquareName(fields[3])
		if err != nil {
			return Position{}, err
		}
		pos.EnPassant = sq
	}

	pos.HalfMoveClock = 0
	pos.FullMoveNumber = 1
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err == nil {
			pos.HalfMoveClock = n
		}
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err == nil {
			pos.FullMoveNumber = n
		}
	}

	pos.recompute()
	pos.Hash = computeZobristFromScratch(&pos)
	return pos, nil
}

func pieceFromLetter(ch byte) (Piece, Color, error) {
	color := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		color = Black
	} else {
		lower = ch + ('a' - 'A')
	}
	switch lower {
	case 'p':
		return Pawn, color, nil
	case 'n':
		return Knight, color, nil
	case 'b':
		return Bishop, color, nil
	case 'r':
		return Rook, color, nil
	case 'q':
		return Queen, color, nil
	case 'k':
		return King, color, nil
	default:
		return NoPiece, color, fmt.Errorf("%w: bad piece letter %q", ErrMalformedFEN, string(ch))
	}
}

func parseSquareName(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrMalformedFEN, s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if !onBoard(file, rank) {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrMalformedFEN, s)
	}
	return NewSquare(file, rank), nil
}

// FEN renders the position back to Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece, color, ok := p.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter(color))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.Castle == 0 {
		sb.WriteByte('-')
	} else {
		if p.Castle.Has(WhiteKingside) {
			sb.WriteByte('K')
		}
		if p.Castle.Has(WhiteQueenside) {
			sb.WriteByte('Q')
		}
		if p.Castle.Has(BlackKingside) {
			sb.WriteByte('k')
		}
		if p.Castle.Has(BlackQueenside) {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if p.EnPassant == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(squareName(p.EnPassant))
	}

	fmt.Fprintf(&sb, " %d %d", p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}

// ApplyUCIMove looks up the legal move matching a UCI coordinate string
// (e.g. "e2e4", "e7e8q") against p's legal move list and applies it.
func (p Position) ApplyUCIMove(uci string) (Position, error) {
	if len(uci) < 4 {
		return Position{}, fmt.Errorf("%w: move %q too short", ErrMalformedMove, uci)
	}
	from, err := parseSquareName(uci[0:2])
	if err != nil {
		return Position{}, err
	}
	to, err := parseSquareName(uci[2:4])
	if err != nil {
		return Position{}, err
	}
	var promo byte
	if len(uci) >= 5 {
		promo = uci[4]
	}
	for _, m := range p.LegalMoves() {
		if m.From != from || m.To != to {
			continue
		}
		if m.Flag.IsPromotion() {
			if promo == 0 || m.Flag.PromotedPiece().Letter(Black) != promo {
				continue
			}
		} else if promo != 0 {
			continue
		}
		return p.ApplyMove(m), nil
	}
	return Position{}, fmt.Errorf("%w: %q is not legal", ErrMalformedMove, uci)
}
