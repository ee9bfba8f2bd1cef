// Package engine implements the search kernel: static and incremental
// evaluation, move ordering, a transposition table, fail-soft alpha-beta
// with quiescence, the MT null-window probe, the MTD driver (bisection,
// fixed-step, and heuristic variants), conspiracy-number bookkeeping, and
// the iterative-deepening loop that ties them together.
package engine

import "fmt"

// Centipawns is a signed score in hundredths of a pawn, centered at 0;
// positive favors White.
type Centipawns int64

const (
	PawnCost   Centipawns = 100
	KnightCost Centipawns = 300
	BishopCost Centipawns = 300
	RookCost   Centipawns = 500
	QueenCost  Centipawns = 900
	KingCost   Centipawns = 1_000_000
)

func (c Centipawns) String() string {
	if c >= 0 {
		return fmt.Sprintf("+%d", int64(c))
	}
	return fmt.Sprintf("%d", int64(c))
}

// evalKind tags which case of the BoardEvaluation union is populated.
// Go has no sum types, so BoardEvaluation is a small struct with a kind
// tag instead of the source's enum. The accessors do not check the kind:
// MateDistance on a PieceScore, or Score on a mate, returns zero.
type evalKind uint8

const (
	blackMate evalKind = iota
	pieceScore
	whiteMate
)

// BoardEvaluation is a tagged union with three cases, totally ordered as
// BlackMate(k) < PieceScore(c) < WhiteMate(k) for all k, c, with mate
// distances ordered so a sooner mate for the side that delivers it is
// better: WhiteMate(1) > WhiteMate(2) > ... > WhiteMate(∞) > PieceScore(x)
// for all x, and symmetrically for BlackMate.
type BoardEvaluation struct {
	kind  evalKind
	mate  uint32
	score Centipawns
}

// PieceScoreEval builds a material/positional evaluation.
func PieceScoreEval(c Centipawns) BoardEvaluation {
	return BoardEvaluation{kind: pieceScore, score: c}
}

// WhiteMateEval builds a "White delivers mate in k plies" evaluation.
// k=0 denotes an already-realized checkmate at the current node.
func WhiteMateEval(k uint32) BoardEvaluation {
	return BoardEvaluation{kind: whiteMate, mate: k}
}

// BlackMateEval builds a "Black delivers mate in k plies" evaluation.
func BlackMateEval(k uint32) BoardEvaluation {
	return BoardEvaluation{kind: blackMate, mate: k}
}

func (e BoardEvaluation) IsWhiteMate() bool { return e.kind == whiteMate }
func (e BoardEvaluation) IsBlackMate() bool { return e.kind == blackMate }
func (e BoardEvaluation) IsPieceScore() bool { return e.kind == pieceScore }
func (e BoardEvaluation) IsMate() bool       { return e.kind != pieceScore }

// MateDistance returns the mate ply count; only valid when IsMate().
func (e BoardEvaluation) MateDistance() uint32 { return e.mate }

// Score returns the centipawn value; only valid when IsPieceScore().
func (e BoardEvaluation) Score() Centipawns { return e.score }

// maxMateDistance is the saturation ceiling for bubble_mate, matching the
// spec's numeric-boundary error policy ("saturate; clamped").
const maxMateDistance = 1 << 20

// BubbleMate increments mate distances by one ply, modeling "one level
// up the search tree, a mate one ply further away." A no-op on
// PieceScore. Saturates at maxMateDistance rather than overflowing.
func (e BoardEvaluation) BubbleMate() BoardEvaluation {
	if e.kind == pieceScore {
		return e
	}
	if e.mate >= maxMateDistance {
		return e
	}
	return BoardEvaluation{kind: e.kind, mate: e.mate + 1}
}

// UnbubbleMate is BubbleMate's inverse; a no-op on PieceScore and on
// Mate(0), since a realized mate has no "one ply closer."
func (e BoardEvaluation) UnbubbleMate() BoardEvaluation {
	if e.kind == pieceScore || e.mate == 0 {
		return e
	}
	return BoardEvaluation{kind: e.kind, mate: e.mate - 1}
}

// Negate flips the evaluation to the opposing side's perspective:
// WhiteMate(k) <-> BlackMate(k), PieceScore(c) <-> PieceScore(-c).
func (e BoardEvaluation) Negate() BoardEvaluation {
	switch e.kind {
	case whiteMate:
		return BlackMateEval(e.mate)
	case blackMate:
		return WhiteMateEval(e.mate)
	default:
		return PieceScoreEval(-e.score)
	}
}

// cmpKey orders the three kinds so Compare can work on (kind, magnitude)
// pairs: BlackMate ranks below PieceScore which ranks below WhiteMate.
// Within a mate kind, a SMALLER mate distance is a BETTER outcome for the
// mating side, so mate rank decreases as distance grows; this is folded
// into the signed comparison key directly rather than a second pass.
func (e BoardEvaluation) cmpKey() (int64, int64) {
	switch e.kind {
	case blackMate:
		// Closer black mates (small k) are worse for White, i.e. smaller.
		return -2, int64(e.mate)
	case whiteMate:
		// Closer white mates (small k) are better for White, i.e. larger:
		// invert distance into the key.
		return 2, -int64(e.mate)
	default:
		return 0, int64(e.score)
	}
}

// Compare returns -1, 0, or 1 as e is less than, equal to, or greater
// than other, under the total order described on BoardEvaluation.
func (e BoardEvaluation) Compare(other BoardEvaluation) int {
	ak, am := e.cmpKey()
	bk, bm := other.cmpKey()
	if ak != bk {
		if ak < bk {
			return -1
		}
		return 1
	}
	if am == bm {
		return 0
	}
	if am < bm {
		return -1
	}
	return 1
}

func (e BoardEvaluation) Less(other BoardEvaluation) bool    { return e.Compare(other) < 0 }
func (e BoardEvaluation) Greater(other BoardEvaluation) bool  { return e.Compare(other) > 0 }
func (e BoardEvaluation) Equal(other BoardEvaluation) bool    { return e.Compare(other) == 0 }
func (e BoardEvaluation) GreaterEq(other BoardEvaluation) bool { return e.Compare(other) >= 0 }
func (e BoardEvaluation) LessEq(other BoardEvaluation) bool    { return e.Compare(other) <= 0 }

// Max returns whichever of a, b compares greater.
func Max(a, b BoardEvaluation) BoardEvaluation {
	if a.Greater(b) {
		return a
	}
	return b
}

// Min returns whichever of a, b compares smaller.
func Min(a, b BoardEvaluation) BoardEvaluation {
	if a.Less(b) {
		return a
	}
	return b
}

func (e BoardEvaluation) String() string {
	switch e.kind {
	case whiteMate:
		return fmt.Sprintf("+M%d", e.mate)
	case blackMate:
		return fmt.Sprintf("-M%d", e.mate)
	default:
		return e.score.String()
	}
}
