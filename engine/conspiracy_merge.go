package engine

// MergeFunc is the pluggable cross-probe conspiracy-merge strategy C7
// describes: combine two probes' counters for the SAME position (as
// opposed to MergeMaxNodeChildren/MergeMinNodeChildren, which combine
// sibling nodes within one probe) given the bound each probe established.
type MergeFunc func(a, b ConspiracyCounter, boundA, boundB EvalBound) ConspiracyCounter

// establishedBounds folds two probes' bound-tagged results into the
// tightest [lower, upper] the pair jointly proves, defaulting to the
// absolute extremes (BlackMate(0), WhiteMate(0)) when a probe's tag
// doesn't constrain that side.
func establishedBounds(a, b EvalBound) (lower, upper BoardEvaluation) {
	lower = BlackMateEval(0)
	upper = WhiteMateEval(0)
	consider := func(eb EvalBound) {
		switch eb.Tag {
		case Exact:
			if eb.Value.Greater(lower) {
				lower = eb.Value
			}
			if eb.Value.Less(upper) {
				upper = eb.Value
			}
		case LowerBound:
			if eb.Value.Greater(lower) {
				lower = eb.Value
			}
		case UpperBound:
			if eb.Value.Less(upper) {
				upper = eb.Value
			}
		}
	}
	consider(a)
	consider(b)
	return lower, upper
}

// MergeRemoveOverwritten is the provided cross-probe merge strategy: sum
// bucket counts from both probes, then zero any up-bucket whose upper
// edge lies below the established lower bound, and any down-bucket
// whose lower edge lies above the established upper bound — those
// buckets have been refuted by the probes themselves and would
// overstate how many conspirators remain plausible.
func MergeRemoveOverwritten(a, b ConspiracyCounter, boundA, boundB EvalBound) ConspiracyCounter {
	lower, upper := establishedBounds(boundA, boundB)
	n := int(a.NumBuckets)
	up := make([]ConspiracyValue, n)
	down := make([]ConspiracyValue, n)
	for i := 0; i < n; i++ {
		up[i] = AddConspiracy(a.UpBuckets[i], b.UpBuckets[i])
		down[i] = AddConspiracy(a.DownBuckets[i], b.DownBuckets[i])

		lo, hi := BucketBounds(i, a.NumBuckets, a.BucketSize)
		if PieceScoreEval(Centipawns(hi)).Less(lower) {
			up[i] = Count(0)
		}
		if upper.Less(PieceScoreEval(Centipawns(lo))) {
			down[i] = Count(0)
		}
	}
	return ConspiracyCounter{
		BucketSize:  a.BucketSize,
		NumBuckets:  a.NumBuckets,
		NodeValue:   a.NodeValue,
		UpBuckets:   up,
		DownBuckets: down,
	}
}
