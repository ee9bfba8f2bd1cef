package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conspire/board"
)

func mustFEN(t *testing.T, fen string) board.Position {
	t.Helper()
	pos, err := board.FromFEN(fen)
	require.NoError(t, err)
	return pos
}

func newTestContext() *SearchContext {
	return NewSearchContext(NewHashTable(1 << 10))
}

// Black's king is boxed in by its own pawns; Ra1-a8 is back-rank mate.
func TestAlphaBetaFindsMateInOne(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	sc := newTestContext()

	result := sc.AlphaBeta(&pos, BlackMateEval(0), WhiteMateEval(0), 2)

	require.True(t, result.EvalBound.Value.IsWhiteMate(), "expected a forced White mate, got %s", result.EvalBound.Value)
	assert.Equal(t, uint32(1), result.EvalBound.Value.MateDistance())
	assert.Equal(t, "a1a8", result.BestMove.UCI())
}

// A bare-kings position has no mating material for either side; the
// search should settle on a piece-score evaluation, never a mate score.
func TestAlphaBetaBareKingsNeverReportsAMate(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	sc := newTestContext()

	result := sc.AlphaBeta(&pos, BlackMateEval(0), WhiteMateEval(0), 3)

	require.True(t, result.EvalBound.Value.IsPieceScore())
}

// Fail-soft: a search whose root window excludes the true value still
// returns a usably-bounded result rather than clamping to the window.
func TestAlphaBetaFailSoftReturnsBoundedResult(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	sc := newTestContext()

	// A window that excludes the true mate score from above: beta set far
	// below WhiteMate so the search fails high and reports a LowerBound.
	narrow := sc.AlphaBeta(&pos, PieceScoreEval(-10), PieceScoreEval(10), 2)
	assert.Equal(t, LowerBound, narrow.EvalBound.Tag)
	assert.True(t, narrow.EvalBound.Value.GreaterEq(PieceScoreEval(10)))
}

// Results from the same position and depth must be stable across repeat
// calls: a fresh SearchContext with an empty TT, searched twice, agrees.
func TestAlphaBetaDeterministicAcrossRepeatedSearches(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/4K2R w Kkq - 0 1")

	a := newTestContext().AlphaBeta(&pos, BlackMateEval(0), WhiteMateEval(0), 2)
	b := newTestContext().AlphaBeta(&pos, BlackMateEval(0), WhiteMateEval(0), 2)

	assert.Equal(t, a.BestMove, b.BestMove)
	assert.True(t, a.EvalBound.Value.Equal(b.EvalBound.Value))
}

func TestQuiescenceNullMoveStandPatNeverMakesSideWorseOff(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	sc := newTestContext()
	sc.Config.UseNullMoveStandPat = true
	sc.Config.UseStaticPenaltyStandPat = false

	result := sc.quiescence(&pos, BlackMateEval(0), WhiteMateEval(0), 0, quiescenceSelectiveDepth)
	assert.True(t, result.EvalBound.Value.IsPieceScore())
}

func TestBoundTagForAlphaBetaExactWhenWindowNeverExceeded(t *testing.T) {
	tag := boundTagForAlphaBeta(PieceScoreEval(0), PieceScoreEval(-100), PieceScoreEval(100), true)
	assert.Equal(t, Exact, tag)
}

func TestBoundTagForAlphaBetaLowerWhenWhiteFailsHigh(t *testing.T) {
	tag := boundTagForAlphaBeta(PieceScoreEval(150), PieceScoreEval(-100), PieceScoreEval(100), true)
	assert.Equal(t, LowerBound, tag)
}

func TestBoundTagForAlphaBetaUpperWhenBlackFailsLow(t *testing.T) {
	tag := boundTagForAlphaBeta(PieceScoreEval(-150), PieceScoreEval(-100), PieceScoreEval(100), false)
	assert.Equal(t, UpperBound, tag)
}

func TestWorstForSideIsTheOppositeMateAtZero(t *testing.T) {
	assert.Equal(t, BlackMateEval(0), worstForSide(true))
	assert.Equal(t, WhiteMateEval(0), worstForSide(false))
}

func TestImprovesIsDirectionalBySideToMove(t *testing.T) {
	assert.True(t, improves(true, PieceScoreEval(10), PieceScoreEval(0)))
	assert.False(t, improves(true, PieceScoreEval(-10), PieceScoreEval(0)))
	assert.True(t, improves(false, PieceScoreEval(-10), PieceScoreEval(0)))
	assert.False(t, improves(false, PieceScoreEval(10), PieceScoreEval(0)))
}
