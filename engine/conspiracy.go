package engine

// ConspiracyValue is either a finite Count of leaf re-evaluations needed,
// or Unreachable, meaning no finite number of changes can move the value
// there (a mate or terminal draw bucket). Unreachable is absorbing under
// addition and acts as +infinity under Min.
type ConspiracyValue struct {
	unreachable bool
	count       uint32
}

// Count builds a finite conspiracy value.
func Count(n uint32) ConspiracyValue { return ConspiracyValue{count: n} }

// UnreachableValue is the absorbing "no finite conspiracy" value.
var UnreachableValue = ConspiracyValue{unreachable: true}

func (v ConspiracyValue) IsUnreachable() bool { return v.unreachable }
func (v ConspiracyValue) Count() uint32       { return v.count }

// AddConspiracy sums two conspiracy values; Unreachable absorbs.
func AddConspiracy(a, b ConspiracyValue) ConspiracyValue {
	if a.unreachable || b.unreachable {
		return UnreachableValue
	}
	return Count(a.count + b.count)
}

// SubConspiracy subtracts b from a; used only to difference a monotone
// cumulative sequence back into per-bucket marginal counts, so b is
// never logically greater than a except where both are Unreachable.
func SubConspiracy(a, b ConspiracyValue) ConspiracyValue {
	if b.unreachable {
		return UnreachableValue
	}
	if a.unreachable {
		return UnreachableValue
	}
	if a.count < b.count {
		return Count(0)
	}
	return Count(a.count - b.count)
}

// MinConspiracy returns the smaller of two conspiracy values, treating
// Unreachable as +infinity.
func MinConspiracy(a, b ConspiracyValue) ConspiracyValue {
	if a.unreachable {
		return b
	}
	if b.unreachable {
		return a
	}
	if a.count < b.count {
		return a
	}
	return b
}

// ConspiracyCounter is the bucketed count of leaf re-evaluations needed
// to shift a node's backed-up value into each of a range of centipawn
// buckets, per C7. Buckets partition the value axis into num_buckets
// (odd) contiguous intervals of bucket_size centipawns each, the middle
// one centered on 0; the two extremes absorb mate values.
type ConspiracyCounter struct {
	BucketSize  uint32
	NumBuckets  uint32
	NodeValue   BoardEvaluation
	UpBuckets   []ConspiracyValue
	DownBuckets []ConspiracyValue
}

// NewConspiracyCounter returns an all-zero counter for the given bucket
// geometry and node value.
func NewConspiracyCounter(bucketSize, numBuckets uint32, nodeValue BoardEvaluation) ConspiracyCounter {
	up := make([]ConspiracyValue, numBuckets)
	down := make([]ConspiracyValue, numBuckets)
	for i := range up {
		up[i] = Count(0)
		down[i] = Count(0)
	}
	return ConspiracyCounter{BucketSize: bucketSize, NumBuckets: numBuckets, NodeValue: nodeValue, UpBuckets: up, DownBuckets: down}
}

// WhichBucket resolves OQ-1: the bucket index a BoardEvaluation falls
// into, rounding to the NEAREST bucket center rather than truncating
// toward zero (the source's behavior, which biases negative values by
// one bucket — see SPEC_FULL.md). Mate values absorb into the extremes.
func WhichBucket(v BoardEvaluation, numBuckets, bucketSize uint32) int {
	if v.IsBlackMate() {
		return 0
	}
	if v.IsWhiteMate() {
		return int(numBuckets) - 1
	}
	middle := int(numBuckets) / 2
	score := int64(v.Score())
	half := int64(bucketSize) / 2
	var offset int64
	if score >= 0 {
		offset = (score + half) / int64(bucketSize)
	} else {
		offset = -((-score + half) / int64(bucketSize))
	}
	idx := middle + int(offset)
	if idx < 0 {
		idx = 0
	}
	if idx > int(numBuckets)-1 {
		idx = int(numBuckets) - 1
	}
	return idx
}

// FromLeaf builds the conspiracy counter a single non-terminal leaf
// contributes: its own bucket needs exactly one re-evaluation to already
// be "at" it (Count(1)) in both directions; every other bucket is zero.
func FromLeaf(v BoardEvaluation, bucketSize, numBuckets uint32) ConspiracyCounter {
	c := NewConspiracyCounter(bucketSize, numBuckets, v)
	idx := WhichBucket(v, numBuckets, bucketSize)
	c.UpBuckets[idx] = Count(1)
	c.DownBuckets[idx] = Count(1)
	return c
}

// FromTerminal builds the conspiracy counter a mate or draw leaf
// contributes: no finite number of leaf changes can move a realized
// terminal outcome, so its bucket is Unreachable rather than Count(1).
func FromTerminal(v BoardEvaluation, bucketSize, numBuckets uint32) ConspiracyCounter {
	c := NewConspiracyCounter(bucketSize, numBuckets, v)
	idx := WhichBucket(v, numBuckets, bucketSize)
	c.UpBuckets[idx] = UnreachableValue
	c.DownBuckets[idx] = UnreachableValue
	return c
}

func prefixSumForward(vals []ConspiracyValue) []ConspiracyValue {
	cum := make([]ConspiracyValue, len(vals))
	cum[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		cum[i] = AddConspiracy(cum[i-1], vals[i])
	}
	return cum
}

func prefixSumReverse(vals []ConspiracyValue) []ConspiracyValue {
	n := len(vals)
	cum := make([]ConspiracyValue, n)
	cum[n-1] = vals[n-1]
	for i := n - 2; i >= 0; i-- {
		cum[i] = AddConspiracy(cum[i+1], vals[i])
	}
	return cum
}

func diffForward(cum []ConspiracyValue) []ConspiracyValue {
	out := make([]ConspiracyValue, len(cum))
	out[0] = cum[0]
	for i := 1; i < len(cum); i++ {
		out[i] = SubConspiracy(cum[i], cum[i-1])
	}
	return out
}

func diffReverse(cum []ConspiracyValue) []ConspiracyValue {
	n := len(cum)
	out := make([]ConspiracyValue, n)
	out[n-1] = cum[n-1]
	for i := n - 2; i >= 0; i-- {
		out[i] = SubConspiracy(cum[i], cum[i+1])
	}
	return out
}

// mergeCumulative folds two children's bucket arrays through a cumulative
// pass (forward or reverse), combines the running totals with combine,
// then differences the result back into per-bucket marginal counts.
func mergeCumulative(a, b []ConspiracyValue, forward bool, combine func(x, y ConspiracyValue) ConspiracyValue) []ConspiracyValue {
	var cumA, cumB []ConspiracyValue
	if forward {
		cumA, cumB = prefixSumForward(a), prefixSumForward(b)
	} else {
		cumA, cumB = prefixSumReverse(a), prefixSumReverse(b)
	}
	combined := make([]ConspiracyValue, len(a))
	for i := range combined {
		combined[i] = combine(cumA[i], cumB[i])
	}
	if forward {
		return diffForward(combined)
	}
	return diffReverse(combined)
}

// MergeMaxNodeChildren combines two children's counters at a MAX node:
// up_buckets (values above the node) take the cumulative MIN across
// children, since any one child realizing the higher value suffices;
// down_buckets take the cumulative SUM, since pushing the max down
// requires every child pushed down. The merged node value is the max of
// the two children's node values.
func MergeMaxNodeChildren(a, b ConspiracyCounter) ConspiracyCounter {
	return ConspiracyCounter{
		BucketSize:  a.BucketSize,
		NumBuckets:  a.NumBuckets,
		NodeValue:   Max(a.NodeValue, b.NodeValue),
		UpBuckets:   mergeCumulative(a.UpBuckets, b.UpBuckets, true, MinConspiracy),
		DownBuckets: mergeCumulative(a.DownBuckets, b.DownBuckets, false, AddConspiracy),
	}
}

// MergeMinNodeChildren is MergeMaxNodeChildren's dual for a MIN node:
// down_buckets take the cumulative min, up_buckets the cumulative sum,
// and the merged node value is the min of the two children's.
func MergeMinNodeChildren(a, b ConspiracyCounter) ConspiracyCounter {
	return ConspiracyCounter{
		BucketSize:  a.BucketSize,
		NumBuckets:  a.NumBuckets,
		NodeValue:   Min(a.NodeValue, b.NodeValue),
		UpBuckets:   mergeCumulative(a.UpBuckets, b.UpBuckets, true, AddConspiracy),
		DownBuckets: mergeCumulative(a.DownBuckets, b.DownBuckets, false, MinConspiracy),
	}
}

// BucketBounds returns the centipawn interval [lo, hi) bucket i spans,
// per §3's definition: bucket i covers
// [(i-mid)*bucket_size - bucket_size/2, (i-mid)*bucket_size + bucket_size/2).
func BucketBounds(i int, numBuckets, bucketSize uint32) (lo, hi int64) {
	mid := int(numBuckets) / 2
	center := int64(i-mid) * int64(bucketSize)
	half := int64(bucketSize) / 2
	return center - half, center + half
}
