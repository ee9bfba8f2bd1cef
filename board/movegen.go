package board

// LegalMoves returns every legal move available to the side to move,
// generated by enumerating pseudo-legal moves per piece (ray-scanning for
// sliders) and discarding any that leave the mover's own king in check.
// Correctness is favored over raw speed: nothing in this repository's
// search core depends on move-generation throughput the way a production
// engine's does, since the contract being tested is the search kernel.
func (p *Position) LegalMoves() []Move {
	pseudo := p.pseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	us := p.SideToMove
	for _, m := range pseudo {
		next := p.ApplyMove(m)
		if !next.InCheck(us) {
			legal = append(legal, m)
		}
	}
	return legal
}

// Status describes the terminal classification of a position given its
// legal move list.
type Status int

const (
	InProgress Status = iota
	Checkmate
	Stalemate
)

// GameStatus classifies p using its legal move list (already computed by
// the caller, to avoid recomputing it).
func (p *Position) GameStatus(legal []Move) Status {
	if len(legal) > 0 {
		return InProgress
	}
	if p.InCheck(p.SideToMove) {
		return Checkmate
	}
	return Stalemate
}

func (p *Position) pseudoLegalMoves() []Move {
	var moves []Move
	us := p.SideToMove
	them := us.Other()
	occUs := p.Occupied[us]
	occAll := p.All

	addStepper := func(piece Piece, attacks func(Square) Bitboard) {
		bb := p.Pieces[us][piece]
		for bb != 0 {
			var fromIdx int
			fromIdx, bb = bb.PopLSB()
			from := Square(fromIdx)
			targets := attacks(from) &^ occUs
			for targets != 0 {
				var toIdx int
				toIdx, targets = targets.PopLSB()
				to := Square(toIdx)
				flag := Quiet
				if p.Occupied[them].IsBitSet(toIdx) {
					flag = Capture
				}
				moves = append(moves, Move{From: from, To: to, Piece: piece, Flag: flag})
			}
		}
	}

	addStepper(Knight, func(sq Square) Bitboard { return knightAttacks[sq] })
	addStepper(King, func(sq Square) Bitboard { return kingAttacks[sq] })
	addStepper(Bishop, func(sq Square) Bitboard { return slidingAttacks(sq, occAll, bishopDirs) })
	addStepper(Rook, func(sq Square) Bitboard { return slidingAttacks(sq, occAll, rookDirs) })
	addStepper(Queen, func(sq Square) Bitboard {
		return slidingAttacks(sq, occAll, rookDirs) | slidingAttacks(sq, occAll, bishopDirs)
	})

	moves = append(moves, p.pawnMoves()...)
	moves = append(moves, p.castleMoves()...)
	return moves
}

func (p *Position) pawnMoves() []Move {
	var moves []Move
	us := p.SideToMove
	them := us.Other()
	forward := 1
	startRank := 1
	promoRank := 7
	if us == Black {
		forward = -1
		startRank = 6
		promoRank = 0
	}

	bb := p.Pieces[us][Pawn]
	for bb != 0 {
		var fromIdx int
		fromIdx, bb = bb.PopLSB()
		from := Square(fromIdx)
		file, rank := from.File(), from.Rank()

		oneRank := rank + forward
		if onBoard(file, oneRank) {
			to := NewSquare(file, oneRank)
			if !p.All.IsBitSet(int(to)) {
				moves = append(moves, pawnDestMoves(from, to, oneRank == promoRank, Quiet)...)
				if rank == startRank {
					twoRank := rank + 2*forward
					to2 := NewSquare(file, twoRank)
					if !p.All.IsBitSet(int(to2)) {
						moves = append(moves, Move{From: from, To: to2, Piece: Pawn, Flag: DoublePawnPush})
					}
				}
			}
		}

		for _, df := range [2]int{-1, 1} {
			cf := file + df
			if !onBoard(cf, oneRank) {
				continue
			}
			to := NewSquare(cf, oneRank)
			if p.Occupied[them].IsBitSet(int(to)) {
				moves = append(moves, pawnDestMoves(from, to, oneRank == promoRank, Capture)...)
			} else if to == p.EnPassant {
				moves = append(moves, Move{From: from, To: to, Piece: Pawn, Flag: EnPassant})
			}
		}
	}
	return moves
}

func pawnDestMoves(from, to Square, promotes bool, flag MoveFlag) []Move {
	if !promotes {
		return []Move{{From: from, To: to, Piece: Pawn, Flag: flag}}
	}
	return []Move{
		{From: from, To: to, Piece: Pawn, Flag: PromoteQueen},
		{From: from, To: to, Piece: Pawn, Flag: PromoteRook},
		{From: from, To: to, Piece: Pawn, Flag: PromoteBishop},
		{From: from, To: to, Piece: Pawn, Flag: PromoteKnight},
	}
}

func (p *Position) castleMoves() []Move {
	var moves []Move
	us := p.SideToMove
	them := us.Other()
	if p.InCheck(us) {
		return moves
	}
	rank := 0
	kingside, queenside := WhiteKingside, WhiteQueenside
	if us == Black {
		rank = 7
		kingside, queenside = BlackKingside, BlackQueenside
	}
	king := NewSquare(4, rank)

	if p.Castle.Has(kingside) {
		f, g := NewSquare(5, rank), NewSquare(6, rank)
		if !p.All.IsBitSet(int(f)) && !p.All.IsBitSet(int(g)) &&
			!p.IsAttacked(f, them) && !p.IsAttacked(g, them) {
			moves = append(moves, Move{From: king, To: g, Piece: King, Flag: CastleKingside})
		}
	}
	if p.Castle.Has(queenside) {
		d, c, b := NewSquare(3, rank), NewSquare(2, rank), NewSquare(1, rank)
		if !p.All.IsBitSet(int(d)) && !p.All.IsBitSet(int(c)) && !p.All.IsBitSet(int(b)) &&
			!p.IsAttacked(d, them) && !p.IsAttacked(c, them) {
			moves = append(moves, Move{From: king, To: c, Piece: King, Flag: CastleQueenside})
		}
	}
	return moves
}

// Captures filters moves to those flagged Capture, EnPassant, or a
// promotion (promotions are included since quiescence must not ignore
// them — a queening move is never "quiet" in effect).
func Captures(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		if m.Flag == Capture || m.Flag == EnPassant || m.Flag.IsPromotion() {
			out = append(out, m)
		}
	}
	return out
}
