package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialCompareExactExactIsAlwaysComparable(t *testing.T) {
	cmp, ok := ExactBound(PieceScoreEval(10)).PartialCompare(ExactBound(PieceScoreEval(20)))
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)
}

func TestPartialCompareExactVsLowerComparableOnlyWhenExactDoesNotExceedLower(t *testing.T) {
	cmp, ok := ExactBound(PieceScoreEval(10)).PartialCompare(Lower(PieceScoreEval(20)))
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)

	_, ok = ExactBound(PieceScoreEval(30)).PartialCompare(Lower(PieceScoreEval(20)))
	assert.False(t, ok, "an exact value above the lower bound proves nothing about the true value")
}

func TestPartialCompareLowerVsUpperComparableOnlyWhenLowerMeetsOrExceedsUpper(t *testing.T) {
	cmp, ok := Lower(PieceScoreEval(50)).PartialCompare(Upper(PieceScoreEval(20)))
	assert.True(t, ok)
	assert.Equal(t, 1, cmp)

	_, ok = Lower(PieceScoreEval(10)).PartialCompare(Upper(PieceScoreEval(20)))
	assert.False(t, ok)
}

func TestPartialCompareLowerVsLowerIsNeverComparable(t *testing.T) {
	_, ok := Lower(PieceScoreEval(10)).PartialCompare(Lower(PieceScoreEval(20)))
	assert.False(t, ok)
}

func TestPartialCompareUpperVsUpperIsNeverComparable(t *testing.T) {
	_, ok := Upper(PieceScoreEval(10)).PartialCompare(Upper(PieceScoreEval(20)))
	assert.False(t, ok)
}

func TestSetValuePreservesTag(t *testing.T) {
	b := Lower(PieceScoreEval(10)).SetValue(PieceScoreEval(30))
	assert.Equal(t, LowerBound, b.Tag)
	assert.Equal(t, PieceScoreEval(30), b.Value)
}

func TestBubbleMateRoundTripsThroughUnbubbleMate(t *testing.T) {
	b := ExactBound(WhiteMateEval(2))
	bubbled := b.BubbleMate()
	assert.Equal(t, WhiteMateEval(3), bubbled.Value, "bubbling a mate bound one ply up increases its distance")
	assert.Equal(t, b.Value, bubbled.UnbubbleMate().Value)
}
