// Package telemetry defines the three record types the search core may
// emit (spec §6.2) and an optional SQLite sink for them. A core running
// with no sink configured pays nothing beyond the synchronous call to
// record them — no background goroutine, no buffering.
package telemetry

import (
	"fmt"
	"strings"

	"conspire/engine"
)

// SearchAlgorithm names which driver produced a PositionSearch row.
type SearchAlgorithm string

const (
	AlgorithmAlphaBeta SearchAlgorithm = "AlphaBeta"
	AlgorithmMT        SearchAlgorithm = "MT"
	AlgorithmMtdBi     SearchAlgorithm = "MtdBi"
	AlgorithmMtdF      SearchAlgorithm = "MtdF"
	AlgorithmMtdH      SearchAlgorithm = "MtdH"
)

// ConspiracyMergeFn names the cross-probe merge strategy in use, when
// conspiracy tracking is enabled.
type ConspiracyMergeFn string

const MergeRemoveOverwritten ConspiracyMergeFn = "MergeRemoveOverwritten"

// ConfigRecord describes one run's fixed search configuration.
type ConfigRecord struct {
	MaxDepth             uint32
	Algorithm            SearchAlgorithm
	ConspiracyUsed       bool
	BucketSize           *uint32
	NumBuckets           *uint32
	MergeFn              *ConspiracyMergeFn
	TranspositionTableUsed bool
	TTMinimumDepth       *uint32
	Timestamp            int64
}

// PositionSearchRecord describes one iterative-deepening depth's result
// for one root position.
type PositionSearchRecord struct {
	RunID        int64
	UCIPosition  string
	Depth        uint32
	TimeMS       uint32
	Nodes        uint64
	Evaluation   string // engine.BoardEvaluation.String()
	Conspiracy   string // "" when the counter is all-zero or absent
	MoveNum      uint32
	Timestamp    int64
}

// ProbeRecord describes one MT invocation within an MTD iteration.
type ProbeRecord struct {
	PositionSearchID int64
	TestValue        string // engine.BoardEvaluation.String()
	TimeMS           uint32
	Nodes            uint64
	EvalBound        string // engine.EvalBound.String()
	Conspiracy       string
	ProbeIndex       uint32
	Timestamp        int64
}

// zeroedBuckets reports whether every bucket in c is a zero Count, in
// which case the counter is recorded as absent rather than persisted.
func zeroedBuckets(c *engine.ConspiracyCounter) bool {
	if c == nil {
		return true
	}
	for _, v := range c.UpBuckets {
		if v.IsUnreachable() || v.Count() != 0 {
			return false
		}
	}
	for _, v := range c.DownBuckets {
		if v.IsUnreachable() || v.Count() != 0 {
			return false
		}
	}
	return true
}

// ConspiracyString renders c for persistence, or "" if it should be
// recorded as absent (nil, or all buckets zero).
func ConspiracyString(c *engine.ConspiracyCounter) string {
	if zeroedBuckets(c) {
		return ""
	}
	return conspiracyToString(*c)
}

func conspiracyValueString(v engine.ConspiracyValue) string {
	if v.IsUnreachable() {
		return "U"
	}
	return fmt.Sprintf("%d", v.Count())
}

// conspiracyToString renders a counter's buckets as two comma-separated
// runs, up then down, e.g. "up:0,1,U down:U,2,0".
func conspiracyToString(c engine.ConspiracyCounter) string {
	up := make([]string, len(c.UpBuckets))
	for i, v := range c.UpBuckets {
		up[i] = conspiracyValueString(v)
	}
	down := make([]string, len(c.DownBuckets))
	for i, v := range c.DownBuckets {
		down[i] = conspiracyValueString(v)
	}
	return fmt.Sprintf("up:%s down:%s", strings.Join(up, ","), strings.Join(down, ","))
}
