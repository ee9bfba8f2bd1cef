package engine

import "conspire/board"

// StaticEval is the pure position evaluator C1 specifies: checkmate maps
// to a zero-ply mate for the side that delivered it (BlackMate(0) when
// White is to move and mated), stalemate
// maps to an exactly-drawn PieceScore(0), and any other position is the
// sum of every piece's material-plus-positional value from White's
// perspective. legal is the position's already-computed legal move list
// (callers generate it once for both status detection and ordering).
func StaticEval(pos *board.Position, legal []board.Move) BoardEvaluation {
	switch pos.GameStatus(legal) {
	case board.Checkmate:
		if pos.SideToMove == board.White {
			return BlackMateEval(0)
		}
		return WhiteMateEval(0)
	case board.Stalemate:
		return PieceScoreEval(0)
	}

	var total Centipawns
	for color := board.White; color <= board.Black; color++ {
		for piece := board.Pawn; piece <= board.King; piece++ {
			bb := pos.Pieces[color][piece]
			for bb != 0 {
				var idx int
				idx, bb = bb.PopLSB()
				total += pieceSquareValue(piece, color, board.Square(idx))
			}
		}
	}
	return PieceScoreEval(total)
}

// IncrementalEval returns the centipawn delta that applying m to pos
// would cause to the running White-relative material/positional score —
// captures (including en passant), promotions, and both castles' rook
// relocation are all accounted for, so callers can maintain a running
// score across the search tree without recomputing StaticEval at every
// node.
func IncrementalEval(pos *board.Position, m board.Move) Centipawns {
	us := pos.SideToMove
	them := us.Other()

	var delta Centipawns
	delta -= pieceSquareValue(m.Piece, us, m.From)

	destPiece := m.Piece
	if m.Flag.IsPromotion() {
		destPiece = m.Flag.PromotedPiece()
	}
	delta += pieceSquareValue(destPiece, us, m.To)

	switch m.Flag {
	case board.Capture:
		if capturedPiece, capturedColor, ok := pos.PieceAt(m.To); ok && capturedColor == them {
			// The captured piece is removed, so its contribution (already
			// negative for Black) is subtracted, i.e. its negation added.
			delta -= pieceSquareValue(capturedPiece, capturedColor, m.To)
		}
	case board.EnPassant:
		capturedSq := epCapturedSquare(m.To, us)
		delta -= pieceSquareValue(board.Pawn, them, capturedSq)
	case board.CastleKingside, board.CastleQueenside:
		rookFrom, rookTo := castleRookDelta(us, m.Flag)
		delta -= pieceSquareValue(board.Rook, us, rookFrom)
		delta += pieceSquareValue(board.Rook, us, rookTo)
	}

	return delta
}

func epCapturedSquare(to board.Square, us board.Color) board.Square {
	if us == board.White {
		return board.NewSquare(to.File(), to.Rank()-1)
	}
	return board.NewSquare(to.File(), to.Rank()+1)
}

func castleRookDelta(us board.Color, flag board.MoveFlag) (from, to board.Square) {
	rank := 0
	if us == board.Black {
		rank = 7
	}
	if flag == board.CastleKingside {
		return board.NewSquare(7, rank), board.NewSquare(5, rank)
	}
	return board.NewSquare(0, rank), board.NewSquare(3, rank)
}
