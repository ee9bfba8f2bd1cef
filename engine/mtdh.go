package engine

import "conspire/board"

// MtdHParams tunes the heuristic MTD variant's test-point selection for
// one iterative-deepening depth: a probability distribution is built
// from a conspiracy counter recorded at TrainingDepth and then reused to
// pick test points while actually searching TargetDepth.
type MtdHParams struct {
	TrainingDepth uint32
	TargetDepth   uint32
	P             float64
	WSideDown     float64
	WSideUp       float64
	C             float64
}

// FindApplicableParam returns the first entry in params whose TargetDepth
// matches depth, or nil if none applies.
func FindApplicableParam(params []MtdHParams, depth uint32) *MtdHParams {
	for i := range params {
		if params[i].TargetDepth == depth {
			return &params[i]
		}
	}
	return nil
}

func conspiracyIsZero(v ConspiracyValue) bool {
	return !v.IsUnreachable() && v.Count() == 0
}

// bucketProbabilityUp scores one up-bucket: the chance the true value
// conspires to move up into this bucket, given how many leaves would
// need to change to land exactly here (marginal) versus somewhere closer
// (cumulative). The last bucket is always treated as Unreachable since it
// is the mate-absorbing extreme.
func (p MtdHParams) bucketProbabilityUp(index int, marginal, cumulative ConspiracyValue, numBuckets int) float64 {
	if index == numBuckets-1 {
		marginal = UnreachableValue
	}
	if conspiracyIsZero(marginal) && conspiracyIsZero(cumulative) {
		return 0
	}
	if cumulative.IsUnreachable() {
		return 0
	}
	cum := float64(cumulative.Count())
	if marginal.IsUnreachable() {
		return p.WSideUp*pow(p.P, cum) + p.C
	}
	return p.WSideUp*(1-pow(p.P, float64(marginal.Count())))*pow(p.P, cum) + p.C
}

// bucketProbabilityDown is bucketProbabilityUp's dual for down-buckets.
func (p MtdHParams) bucketProbabilityDown(index int, marginal, cumulative ConspiracyValue, numBuckets int) float64 {
	if index == numBuckets-1 {
		marginal = UnreachableValue
	}
	if conspiracyIsZero(marginal) && conspiracyIsZero(cumulative) {
		return 0
	}
	if cumulative.IsUnreachable() {
		return 0
	}
	cum := float64(cumulative.Count())
	if marginal.IsUnreachable() {
		return p.WSideDown*pow(p.P, cum) + p.C
	}
	return p.WSideDown*(1-pow(p.P, float64(marginal.Count())))*pow(p.P, cum) + p.C
}

// pow is a tiny integer-exponent power, avoiding a math.Pow import for
// what is always a small nonnegative exponent in practice; math.Pow
// handles fractional/negative exponents this domain never produces, so
// a minimal loop keeps the dependency surface to what is actually used.
func pow(base, exp float64) float64 {
	if exp <= 0 {
		return 1
	}
	result := 1.0
	n := int(exp)
	for i := 0; i < n; i++ {
		result *= base
	}
	return result
}

// GenerateProbabilityDistribution builds a per-bucket probability that
// the true value lies in that bucket, from a conspiracy counter recorded
// at an earlier (shallower) depth and the previous iteration's value.
func (p MtdHParams) GenerateProbabilityDistribution(counter ConspiracyCounter, previousEvaluation BoardEvaluation) []float64 {
	numBuckets := int(counter.NumBuckets)
	up := make([]float64, numBuckets)
	down := make([]float64, numBuckets)

	switch {
	case previousEvaluation.IsBlackMate():
		up[0] = 0.5
		down[0] = 0.5
	case previousEvaluation.IsWhiteMate():
		up[numBuckets-1] = 0.5
		down[numBuckets-1] = 0.5
	default:
		cumulative := Count(0)
		for i := 0; i < numBuckets; i++ {
			up[i] = p.bucketProbabilityUp(i, counter.UpBuckets[i], cumulative, numBuckets)
			cumulative = AddConspiracy(cumulative, counter.UpBuckets[i])
		}
		cumulative = Count(0)
		for i := numBuckets - 1; i >= 0; i-- {
			down[i] = p.bucketProbabilityDown(i, counter.DownBuckets[i], cumulative, numBuckets)
			cumulative = AddConspiracy(cumulative, counter.DownBuckets[i])
		}
	}

	probabilities := make([]float64, numBuckets)
	area := 0.0
	for i := range probabilities {
		probabilities[i] = up[i] + down[i]
		area += probabilities[i]
	}
	if area == 0 {
		return probabilities
	}
	for i := range probabilities {
		probabilities[i] /= area
	}
	return probabilities
}

// SelectTestPoint picks the test value whose bucket the cumulative
// distribution crosses 0.5 in, clamped to the current [lower, upper]
// window.
func SelectTestPoint(distribution []float64, bucketSize uint32, lower, upper BoardEvaluation) BoardEvaluation {
	numBuckets := uint32(len(distribution))
	accumulator := 0.0
	for index, p := range distribution {
		accumulator += p
		if accumulator <= 0.5 {
			continue
		}
		lo, hi := BucketBounds(index, numBuckets, bucketSize)
		bucketLower := PieceScoreEval(Centipawns(lo))
		bucketUpper := PieceScoreEval(Centipawns(hi))
		if index == 0 {
			bucketLower = BlackMateEval(0)
		} else if index == int(numBuckets)-1 {
			bucketUpper = WhiteMateEval(0)
		}
		bucketLower = Min(bucketLower, upper)
		bucketUpper = Max(bucketUpper, lower)
		testLower := Max(bucketLower, lower)
		testUpper := Min(bucketUpper, upper)
		return avgBounds(testLower, testUpper)
	}
	return avgBounds(lower, upper)
}

// SelectTestPointWithMate is SelectTestPoint's wrapper that short-circuits
// on a mate evaluation: once either side has a forced mate in view there
// is no bucket to refine further, so the last evaluation is reused as-is.
func SelectTestPointWithMate(distribution []float64, bucketSize uint32, lower, upper, lastEvaluation BoardEvaluation) BoardEvaluation {
	if lastEvaluation.IsMate() {
		return lastEvaluation
	}
	return SelectTestPoint(distribution, bucketSize, lower, upper)
}

// UpdateProbabilityDistribution zeroes out buckets the latest probe's
// bound has ruled out (buckets above the bound's bucket for an
// UpperBound/Exact result, buckets below it for a LowerBound/Exact
// result) and renormalizes what remains.
func UpdateProbabilityDistribution(distribution []float64, boundary EvalBound, bucketSize uint32) {
	numBuckets := uint32(len(distribution))
	target := WhichBucket(boundary.Value, numBuckets, bucketSize)

	removeLower, removeUpper := false, false
	switch boundary.Tag {
	case UpperBound:
		removeUpper = true
	case LowerBound:
		removeLower = true
	case Exact:
		removeLower, removeUpper = true, true
	}

	for i := range distribution {
		if i < target && removeLower {
			distribution[i] = 0
		}
		if i > target && removeUpper {
			distribution[i] = 0
		}
	}

	area := 0.0
	for _, p := range distribution {
		area += p
	}
	if area == 0 {
		return
	}
	for i := range distribution {
		distribution[i] /= area
	}
}

// maxMTDHProbes bounds the heuristic driver's probe count: a badly-tuned
// probability distribution could in principle pick the same test value
// forever, and this is cheap insurance against that never terminating.
const maxMTDHProbes = 100

// MTDHeuristic runs the probability-guided MTD variant: it builds a test-
// point distribution from a conspiracy counter recorded at an earlier
// depth, then repeatedly probes MT with the distribution's median test
// value, narrowing and re-normalizing the distribution after every probe
// until an Exact result or instability forces termination (the same
// instability policy as MTD: Exact after maxInstabilityForceExact
// inversions on a favorable probe, a hard stop after
// maxInstabilityHardStop), or until maxMTDHProbes probes have run.
func (sc *SearchContext) MTDHeuristic(pos *board.Position, depth int, startPoint BoardEvaluation, params MtdHParams, trainingCounter ConspiracyCounter) MTDResult {
	distribution := params.GenerateProbabilityDistribution(trainingCounter, startPoint)
	lower := BlackMateEval(0)
	upper := WhiteMateEval(0)
	t := SelectTestPointWithMate(distribution, trainingCounter.BucketSize, lower, upper, startPoint)
	white := pos.SideToMove == board.White

	var probes []Probe
	instabilities := 0
	var conspiracy *ConspiracyCounter

	for idx := 0; idx < maxMTDHProbes; idx++ {
		r := sc.MT(pos, depth, t)
		probes = append(probes, Probe{TestValue: t, Result: r, Index: idx})

		if r.Conspiracy != nil {
			if conspiracy == nil {
				c := *r.Conspiracy
				conspiracy = &c
			} else {
				merged := MergeRemoveOverwritten(*conspiracy, *r.Conspiracy, Lower(lower), Upper(upper))
				conspiracy = &merged
			}
		}

		if r.EvalBound.Tag == Exact {
			r.Conspiracy = conspiracy
			return MTDResult{SearchResult: r, Probes: probes, Instabilities: instabilities}
		}
		if r.EvalBound.Tag == UpperBound {
			upper = r.EvalBound.Value
		} else {
			lower = r.EvalBound.Value
		}

		if upper.Less(lower) {
			instabilities++
			lower, upper = r.EvalBound.Value, r.EvalBound.Value

			favorable := (white && r.EvalBound.Tag == LowerBound) || (!white && r.EvalBound.Tag == UpperBound)
			if instabilities > maxInstabilityForceExact-1 && favorable {
				r.EvalBound = ExactBound(r.EvalBound.Value)
				r.Conspiracy = conspiracy
				return MTDResult{SearchResult: r, Probes: probes, Instabilities: instabilities}
			}
			if instabilities > maxInstabilityHardStop-1 {
				r.EvalBound = ExactBound(r.EvalBound.Value)
				r.Conspiracy = conspiracy
				return MTDResult{SearchResult: r, Probes: probes, Instabilities: instabilities}
			}
		}

		UpdateProbabilityDistribution(distribution, r.EvalBound, trainingCounter.BucketSize)
		t = SelectTestPointWithMate(distribution, trainingCounter.BucketSize, lower, upper, r.EvalBound.Value)
	}

	last := probes[len(probes)-1].Result
	last.EvalBound = ExactBound(last.EvalBound.Value)
	last.Conspiracy = conspiracy
	return MTDResult{SearchResult: last, Probes: probes, Instabilities: instabilities}
}
