package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Probing with a test value comfortably below the true minimax value
// (a forced mate, which ranks above every finite piece score) must prove
// a LowerBound.
func TestMTProbeBelowTrueValueReturnsLowerBound(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	sc := newTestContext()

	result := sc.MT(&pos, 2, PieceScoreEval(0))

	require.Equal(t, LowerBound, result.EvalBound.Tag)
	assert.True(t, result.EvalBound.Value.Greater(PieceScoreEval(0)))
}

// Probing with a test value at the extreme ceiling (WhiteMate(0), the
// best conceivable outcome) cannot be exceeded by a mate-in-one line, so
// MT must prove an UpperBound instead.
func TestMTProbeAtCeilingReturnsUpperBound(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	sc := newTestContext()

	result := sc.MT(&pos, 2, WhiteMateEval(0))

	require.Equal(t, UpperBound, result.EvalBound.Tag)
	assert.True(t, result.EvalBound.Value.IsWhiteMate())
	assert.Equal(t, uint32(1), result.EvalBound.Value.MateDistance())
}

// A terminal (checkmated) position always reports an Exact evaluation,
// since there is nothing left to bound.
func TestMTTerminalPositionIsExact(t *testing.T) {
	// Black to move, already checkmated (White rook delivers the same
	// back-rank mate one ply later).
	pos := mustFEN(t, "R5k1/5ppp/8/8/8/8/8/7K b - - 0 1")
	sc := newTestContext()

	result := sc.MT(&pos, 2, PieceScoreEval(0))

	require.Equal(t, Exact, result.EvalBound.Tag)
	assert.True(t, result.EvalBound.Value.IsWhiteMate())
	assert.Equal(t, uint32(0), result.EvalBound.Value.MateDistance())
}

func TestTTCutoffTestValueExactAlwaysShortCircuits(t *testing.T) {
	info := SearchInfo{Evaluation: ExactBound(PieceScoreEval(42))}
	result, cut := ttCutoffTestValue(info, PieceScoreEval(0), true)
	require.True(t, cut)
	assert.Equal(t, Centipawns(42), result.EvalBound.Value.Score())
}

func TestTTCutoffTestValueLowerBoundOnlyCutsForWhiteAboveT(t *testing.T) {
	info := SearchInfo{Evaluation: Lower(PieceScoreEval(50))}
	_, cut := ttCutoffTestValue(info, PieceScoreEval(0), true)
	assert.True(t, cut, "White: stored lower bound exceeding t should cut off")

	_, cut = ttCutoffTestValue(info, PieceScoreEval(0), false)
	assert.False(t, cut, "Black to move should never cut on a stored LowerBound")
}

func TestTTCutoffTestValueUpperBoundOnlyCutsForBlackBelowT(t *testing.T) {
	info := SearchInfo{Evaluation: Upper(PieceScoreEval(-50))}
	_, cut := ttCutoffTestValue(info, PieceScoreEval(0), false)
	assert.True(t, cut, "Black: stored upper bound below t should cut off")

	_, cut = ttCutoffTestValue(info, PieceScoreEval(0), true)
	assert.False(t, cut, "White to move should never cut on a stored UpperBound")
}

func TestMergeChildConspiracyMaxForWhiteMinForBlack(t *testing.T) {
	a := FromLeaf(PieceScoreEval(0), 100, 5)
	b := FromLeaf(PieceScoreEval(50), 100, 5)

	maxMerged := mergeChildConspiracy(&a, &b, true)
	assert.Equal(t, PieceScoreEval(50), maxMerged.NodeValue)

	minMerged := mergeChildConspiracy(&a, &b, false)
	assert.Equal(t, PieceScoreEval(0), minMerged.NodeValue)
}

func TestMergeChildConspiracyNilRunningCopiesChild(t *testing.T) {
	c := FromLeaf(PieceScoreEval(10), 100, 5)
	merged := mergeChildConspiracy(nil, &c, true)
	require.NotNil(t, merged)
	assert.Equal(t, c.NodeValue, merged.NodeValue)
}
