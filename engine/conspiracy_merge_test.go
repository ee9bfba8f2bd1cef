package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstablishedBoundsDefaultsToExtremes(t *testing.T) {
	// Two lower-bound-only probes constrain lower but say nothing about
	// upper, which should fall back to the WhiteMate(0) ceiling.
	lower, upper := establishedBounds(Lower(PieceScoreEval(10)), Lower(PieceScoreEval(40)))
	assert.Equal(t, PieceScoreEval(40), lower, "lower should take the tighter (greater) of the two lower bounds")
	assert.Equal(t, WhiteMateEval(0), upper)
}

func TestEstablishedBoundsNarrowsFromBothProbes(t *testing.T) {
	lower, upper := establishedBounds(Lower(PieceScoreEval(10)), Upper(PieceScoreEval(90)))
	assert.Equal(t, PieceScoreEval(10), lower)
	assert.Equal(t, PieceScoreEval(90), upper)
}

func TestMergeRemoveOverwrittenZeroesRefutedBuckets(t *testing.T) {
	a := NewConspiracyCounter(100, 5, PieceScoreEval(-250))
	b := NewConspiracyCounter(100, 5, PieceScoreEval(250))
	// bucket 0 spans roughly (-inf, -150); bucket 4 spans (150, +inf).
	a.UpBuckets[0] = Count(3)
	a.DownBuckets[0] = Count(2)
	b.UpBuckets[4] = Count(5)
	b.DownBuckets[4] = Count(1)

	// Established bounds [0, 100] rule out bucket 0's up side (entirely
	// below 0) and bucket 4's down side (entirely above 100).
	merged := MergeRemoveOverwritten(a, b, Lower(PieceScoreEval(0)), Upper(PieceScoreEval(100)))

	assert.Equal(t, uint32(0), merged.UpBuckets[0].Count(), "bucket refuted by the established lower bound should be zeroed")
	assert.Equal(t, uint32(0), merged.DownBuckets[4].Count(), "bucket refuted by the established upper bound should be zeroed")
}

func TestMergeRemoveOverwrittenSumsSurvivingBuckets(t *testing.T) {
	a := NewConspiracyCounter(100, 5, PieceScoreEval(0))
	b := NewConspiracyCounter(100, 5, PieceScoreEval(0))
	a.UpBuckets[2] = Count(2)
	b.UpBuckets[2] = Count(3)

	merged := MergeRemoveOverwritten(a, b, EvalBound{}, EvalBound{})
	assert.Equal(t, uint32(5), merged.UpBuckets[2].Count())
}
