package engine

import (
	"sort"

	"conspire/board"
)

// OrderMoves yields legal from a position in the order C2 specifies:
// the hint move (typically the transposition table's remembered best
// move) first whenever it is non-null, without checking it against
// legal, then captures scored by MVV-LVA,
// then (unless capturesOnly) quiet moves scored by piece-square delta.
// Ties break on legal's original move-generation order, since sort.Slice
// is stable here (SliceStable) and the scoring keys are otherwise equal
// only for genuinely equivalent moves.
func OrderMoves(pos *board.Position, legal []board.Move, hint board.Move, capturesOnly bool) []board.Move {
	white := pos.SideToMove == board.White

	var ordered []board.Move
	hasHint := !hint.IsNull()
	if hasHint {
		ordered = append(ordered, hint)
	}

	var captures, quiets []board.Move
	for _, m := range legal {
		if hasHint && m == hint {
			continue
		}
		if m.Flag == board.Capture || m.Flag == board.EnPassant || m.Flag.IsPromotion() {
			captures = append(captures, m)
		} else if !capturesOnly {
			quiets = append(quiets, m)
		}
	}

	sortByKey(captures, white, func(m board.Move) Centipawns { return captureKey(pos, m) })
	sortByKey(quiets, white, func(m board.Move) Centipawns { return IncrementalEval(pos, m) })

	ordered = append(ordered, captures...)
	ordered = append(ordered, quiets...)
	return ordered
}

// captureKey scores a capture by value(captured) - value(capturer) +
// value(promotion), so capturing a high-value piece with a low-value one
// ranks best (MVV-LVA).
func captureKey(pos *board.Position, m board.Move) Centipawns {
	var captured board.Piece
	if m.Flag == board.EnPassant {
		captured = board.Pawn
	} else if cp, _, ok := pos.PieceAt(m.To); ok {
		captured = cp
	}
	key := pieceBaseValue[captured] - pieceBaseValue[m.Piece]
	if m.Flag.IsPromotion() {
		key += pieceBaseValue[m.Flag.PromotedPiece()]
	}
	return key
}

// sortByKey sorts moves by key descending for White, ascending for
// Black: White wants the numerically highest White-relative gain first,
// Black wants the numerically lowest (most favorable to Black) first.
func sortByKey(moves []board.Move, white bool, key func(board.Move) Centipawns) {
	sort.SliceStable(moves, func(i, j int) bool {
		ki, kj := key(moves[i]), key(moves[j])
		if white {
			return ki > kj
		}
		return ki < kj
	})
}
