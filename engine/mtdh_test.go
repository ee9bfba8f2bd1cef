package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowComputesSmallIntegerExponents(t *testing.T) {
	assert.Equal(t, 8.0, pow(2, 3))
	assert.Equal(t, 1.0, pow(5, 0))
	assert.Equal(t, 1.0, pow(5, -1), "non-positive exponents degrade to 1 rather than panic")
}

func TestFindApplicableParamMatchesOnTargetDepth(t *testing.T) {
	params := []MtdHParams{{TargetDepth: 4}, {TargetDepth: 8}}
	got := FindApplicableParam(params, 8)
	require.NotNil(t, got)
	assert.Equal(t, uint32(8), got.TargetDepth)

	assert.Nil(t, FindApplicableParam(params, 6))
}

func TestConspiracyIsZero(t *testing.T) {
	assert.True(t, conspiracyIsZero(Count(0)))
	assert.False(t, conspiracyIsZero(Count(1)))
	assert.False(t, conspiracyIsZero(UnreachableValue))
}

func TestGenerateProbabilityDistributionBlackMateDumpsIntoFirstBucket(t *testing.T) {
	p := MtdHParams{P: 0.5, WSideUp: 1, WSideDown: 1}
	counter := NewConspiracyCounter(100, 5, PieceScoreEval(0))

	dist := p.GenerateProbabilityDistribution(counter, BlackMateEval(3))

	assert.Equal(t, 1.0, dist[0])
	for i := 1; i < len(dist); i++ {
		assert.Equal(t, 0.0, dist[i])
	}
}

func TestGenerateProbabilityDistributionWhiteMateDumpsIntoLastBucket(t *testing.T) {
	p := MtdHParams{P: 0.5, WSideUp: 1, WSideDown: 1}
	counter := NewConspiracyCounter(100, 5, PieceScoreEval(0))

	dist := p.GenerateProbabilityDistribution(counter, WhiteMateEval(3))

	last := len(dist) - 1
	assert.Equal(t, 1.0, dist[last])
	for i := 0; i < last; i++ {
		assert.Equal(t, 0.0, dist[i])
	}
}

func TestGenerateProbabilityDistributionAllZeroCounterYieldsFlatZeroes(t *testing.T) {
	p := MtdHParams{P: 0.5, WSideUp: 1, WSideDown: 1}
	counter := NewConspiracyCounter(100, 5, PieceScoreEval(0))

	dist := p.GenerateProbabilityDistribution(counter, PieceScoreEval(0))

	for _, v := range dist {
		assert.Equal(t, 0.0, v)
	}
}

func TestSelectTestPointCrossesMedianAtTheWeightedBucket(t *testing.T) {
	// All the mass sits in bucket 3 of 5 (bucket size 100): its bounds are
	// [50, 150], and with the window wide open the result is that
	// bucket's own midpoint.
	dist := []float64{0, 0, 0, 1, 0}
	got := SelectTestPoint(dist, 100, BlackMateEval(0), WhiteMateEval(0))
	require.True(t, got.IsPieceScore())
	assert.Equal(t, Centipawns(100), got.Score())
}

func TestSelectTestPointFirstBucketExtendsToBlackMate(t *testing.T) {
	dist := []float64{1, 0, 0, 0, 0}
	got := SelectTestPoint(dist, 100, BlackMateEval(0), WhiteMateEval(0))
	require.True(t, got.IsPieceScore())
	assert.Equal(t, Centipawns(-10075), got.Score())
}

func TestSelectTestPointLastBucketExtendsToWhiteMate(t *testing.T) {
	dist := []float64{0, 0, 0, 0, 1}
	got := SelectTestPoint(dist, 100, BlackMateEval(0), WhiteMateEval(0))
	require.True(t, got.IsPieceScore())
	assert.Equal(t, Centipawns(10075), got.Score())
}

func TestSelectTestPointFallsBackToBisectionWhenDistributionIsFlat(t *testing.T) {
	dist := []float64{0, 0, 0, 0, 0}
	got := SelectTestPoint(dist, 100, PieceScoreEval(-100), PieceScoreEval(100))
	assert.Equal(t, Centipawns(0), got.Score())
}

func TestSelectTestPointWithMateShortCircuitsOnAMateEvaluation(t *testing.T) {
	dist := []float64{0, 0, 0, 1, 0}
	got := SelectTestPointWithMate(dist, 100, BlackMateEval(0), WhiteMateEval(0), WhiteMateEval(4))
	assert.Equal(t, WhiteMateEval(4), got)
}

func TestUpdateProbabilityDistributionZeroesBelowALowerBound(t *testing.T) {
	dist := []float64{0.2, 0.2, 0.2, 0.2, 0.2}
	// A LowerBound at bucket 3's value rules out everything strictly
	// below bucket 3.
	UpdateProbabilityDistribution(dist, Lower(PieceScoreEval(100)), 100)

	assert.Equal(t, 0.0, dist[0])
	assert.Equal(t, 0.0, dist[1])
	assert.Equal(t, 0.0, dist[2])
	assert.Greater(t, dist[3], 0.0)
	assert.Greater(t, dist[4], 0.0)
}

func TestUpdateProbabilityDistributionZeroesAboveAnUpperBound(t *testing.T) {
	dist := []float64{0.2, 0.2, 0.2, 0.2, 0.2}
	UpdateProbabilityDistribution(dist, Upper(PieceScoreEval(-100)), 100)

	assert.Greater(t, dist[0], 0.0)
	assert.Greater(t, dist[1], 0.0)
	assert.Equal(t, 0.0, dist[2])
	assert.Equal(t, 0.0, dist[3])
	assert.Equal(t, 0.0, dist[4])
}

func TestUpdateProbabilityDistributionRenormalizesToUnitArea(t *testing.T) {
	dist := []float64{0.2, 0.2, 0.2, 0.2, 0.2}
	UpdateProbabilityDistribution(dist, Lower(PieceScoreEval(100)), 100)

	area := 0.0
	for _, p := range dist {
		area += p
	}
	assert.InDelta(t, 1.0, area, 1e-9)
}

// MTD-heuristic driven to convergence on a forced-mate position must
// agree with a full-window AlphaBeta search, exactly as the simpler MTD
// drivers do: the probability-guided test-point selection only changes
// how fast the search converges, never what it converges to.
func TestMTDHeuristicAgreesWithAlphaBetaOnAMatePosition(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")

	reference := newTestContext().AlphaBeta(&pos, BlackMateEval(0), WhiteMateEval(0), 2)

	params := MtdHParams{P: 0.6, WSideUp: 0.5, WSideDown: 0.5, C: 0.01}
	training := NewConspiracyCounter(100, 5, PieceScoreEval(0))
	mtdh := newTestContext().MTDHeuristic(&pos, 2, PieceScoreEval(0), params, training)

	assert.True(t, reference.EvalBound.Value.Equal(mtdh.EvalBound.Value),
		"AlphaBeta found %s, MTD-heuristic found %s", reference.EvalBound.Value, mtdh.EvalBound.Value)
	assert.Equal(t, Exact, mtdh.EvalBound.Tag)
}
