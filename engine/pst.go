package engine

import "conspire/board"

// Piece-square tables, indexed ignoring color (White's orientation, rank
// 0 = White's back rank); pstIndex mirrors the rank for Black so the same
// table can drive either color's incremental delta. Values are centipawns
// added to material for a piece standing on that square. This is a
// compact single-phase table, not the teacher's tapered midgame/endgame
// set — the static evaluator it backs is explicitly a stand-in the core
// search treats as a pure function (spec §1: "the static position
// evaluator is assumed given").
var pawnTable = [64]Centipawns{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]Centipawns{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]Centipawns{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]Centipawns{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenTable = [64]Centipawns{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingTable = [64]Centipawns{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var pieceBaseValue = [6]Centipawns{PawnCost, KnightCost, BishopCost, RookCost, QueenCost, 0}

func pieceTable(piece board.Piece) *[64]Centipawns {
	switch piece {
	case board.Pawn:
		return &pawnTable
	case board.Knight:
		return &knightTable
	case board.Bishop:
		return &bishopTable
	case board.Rook:
		return &rookTable
	case board.Queen:
		return &queenTable
	default:
		return &kingTable
	}
}

// pstIndex mirrors the table vertically for Black, since the tables above
// are written from White's perspective (rank 0 = back rank).
func pstIndex(sq board.Square, color board.Color) int {
	if color == board.White {
		return int(sq)
	}
	file, rank := sq.File(), sq.Rank()
	return file + (7-rank)*8
}

// pieceSquareValue returns the centipawn contribution of piece/color
// standing on sq, material plus position, from White's perspective
// (negative for Black).
func pieceSquareValue(piece board.Piece, color board.Color, sq board.Square) Centipawns {
	idx := pstIndex(sq, color)
	v := pieceBaseValue[piece] + pieceTable(piece)[idx]
	if color == board.Black {
		return -v
	}
	return v
}
