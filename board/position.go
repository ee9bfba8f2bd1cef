package board

// Position is an immutable chess position value: piece placement,
// side to move, castling rights, en-passant target, and a cheap 64-bit
// Zobrist hash. Every mutator returns a new Position; nothing aliases
// another Position's bitboards (Bitboard and the fixed-size piece arrays
// are values, so a copy is a deep copy).
type Position struct {
	Pieces         [2][6]Bitboard
	Occupied       [2]Bitboard
	All            Bitboard
	SideToMove     Color
	Castle         CastleRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Hash           uint64
}

// PieceAt returns the piece and color occupying sq, or ok=false if empty.
func (p *Position) PieceAt(sq Square) (piece Piece, color Color, ok bool) {
	if !p.All.IsBitSet(int(sq)) {
		return NoPiece, White, false
	}
	color = White
	if p.Occupied[Black].IsBitSet(int(sq)) {
		color = Black
	}
	for pc := Pawn; pc <= King; pc++ {
		if p.Pieces[color][pc].IsBitSet(int(sq)) {
			return pc, color, true
		}
	}
	return NoPiece, color, false
}

func (p *Position) recompute() {
	p.Occupied[White] = 0
	p.Occupied[Black] = 0
	for pc := Pawn; pc <= King; pc++ {
		p.Occupied[White] |= p.Pieces[White][pc]
		p.Occupied[Black] |= p.Pieces[Black][pc]
	}
	p.All = p.Occupied[White] | p.Occupied[Black]
}

func (p *Position) place(sq Square, piece Piece, color Color) {
	p.Pieces[color][piece].SetBit(int(sq))
}

func (p *Position) remove(sq Square, piece Piece, color Color) {
	p.Pieces[color][piece].ClearBit(int(sq))
}

// KingSquare returns the square of color's king.
func (p *Position) KingSquare(color Color) Square {
	idx, _ := p.Pieces[color][King].PopLSB()
	return Square(idx)
}

// InCheck reports whether color's king is currently attacked.
func (p *Position) InCheck(color Color) bool {
	return p.IsAttacked(p.KingSquare(color), color.Other())
}

// ApplyMove returns the position resulting from playing m, which must be
// pseudo-legal in p. The receiver is left unmodified.
func (p Position) ApplyMove(m Move) Position {
	next := p
	us := p.SideToMove
	them := us.Other()

	piece := m.Piece
	next.remove(m.From, piece, us)

	captured := NoPiece
	capturedSq := m.To
	if m.Flag == EnPassant {
		capturedSq = Square(int(m.To) + epCaptureOffset(us))
		captured = Pawn
	} else if cp, cc, ok := p.PieceAt(m.To); ok && cc == them {
		captured = cp
	}
	if captured != NoPiece {
		next.remove(capturedSq, captured, them)
	}

	destPiece := piece
	if m.Flag.IsPromotion() {
		destPiece = m.Flag.PromotedPiece()
	}
	next.place(m.To, destPiece, us)

	if m.Flag == CastleKingside || m.Flag == CastleQueenside {
		rookFrom, rookTo := castleRookSquares(us, m.Flag)
		next.remove(rookFrom, Rook, us)
		next.place(rookTo, Rook, us)
	}

	next.Castle = updateCastleRights(p.Castle, m, us, piece)

	next.EnPassant = NoSquare
	if m.Flag == DoublePawnPush {
		next.EnPassant = Square(int(m.From) - epCaptureOffset(us))
	}

	if piece == Pawn || captured != NoPiece {
		next.HalfMoveClock = 0
	} else {
		next.HalfMoveClock = p.HalfMoveClock + 1
	}
	if us == Black {
		next.FullMoveNumber = p.FullMoveNumber + 1
	}
	next.SideToMove = them

	next.recompute()
	next.Hash = computeZobristIncremental(p.Hash, p, next, m, captured, capturedSq)
	return next
}

// ApplyNullMove returns the position with the side to move passed, used
// only by quiescence's null-move stand-pat probe; it is never legal chess
// but is a convenient recursive-search device. Illegal while in check.
func (p Position) ApplyNullMove() Position {
	next := p
	next.SideToMove = p.SideToMove.Other()
	next.EnPassant = NoSquare
	next.Hash = p.Hash ^ zobristSideToMove
	if p.EnPassant != NoSquare {
		next.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	return next
}

func epCaptureOffset(us Color) int {
	if us == White {
		return -8
	}
	return 8
}

func castleRookSquares(us Color, flag MoveFlag) (from, to Square) {
	if us == White {
		if flag == CastleKingside {
			return NewSquare(7, 0), NewSquare(5, 0)
		}
		return NewSquare(0, 0), NewSquare(3, 0)
	}
	if flag == CastleKingside {
		return NewSquare(7, 7), NewSquare(5, 7)
	}
	return NewSquare(0, 7), NewSquare(3, 7)
}

func updateCastleRights(rights CastleRights, m Move, us Color, piece Piece) CastleRights {
	if piece == King {
		if us == White {
			rights &^= WhiteKingside | WhiteQueenside
		} else {
			rights &^= BlackKingside | BlackQueenside
		}
	}
	clearIfRookSquare := func(sq Square) {
		switch sq {
		case NewSquare(0, 0):
			rights &^= WhiteQueenside
		case NewSquare(7, 0):
			rights &^= WhiteKingside
		case NewSquare(0, 7):
			rights &^= BlackQueenside
		case NewSquare(7, 7):
			rights &^= BlackKingside
		}
	}
	clearIfRookSquare(m.From)
	clearIfRookSquare(m.To)
	return rights
}

// StartPosition returns the standard chess starting position.
func StartPosition() Position {
	pos, err := FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		panic("board: malformed built-in start FEN: " + err.Error())
	}
	return pos
}
