package engine

import "conspire/board"

// SearchResult is the value every search routine (alpha-beta, MT, MTD)
// returns: the best move found, its bound-tagged evaluation, a node
// count, and the principal variation below it. The original research
// code models this as a trait with "debug" and "minimal" implementations
// for different perf/verbosity tradeoffs; Go has no room for that
// generic split without real duplication, and nothing here is perf-
// sensitive enough to need a leaner variant, so SearchResult is one
// concrete, always-populated struct.
type SearchResult struct {
	BestMove      board.Move
	EvalBound     EvalBound
	NodesSearched uint64
	// CriticalPath is the principal variation, stored root-first (index 0
	// is the move played at the node that returned this result). Each
	// level of recursion prepends its own best move via WithMove.
	CriticalPath []board.Move
	// Conspiracy is populated only when the search context is configured
	// with a nonzero bucket geometry (see Config); nil otherwise.
	Conspiracy *ConspiracyCounter
}

// WithMove returns a copy of r with m prepended to the critical path —
// the move the caller's node played to reach the child result r.
func (r SearchResult) WithMove(m board.Move) SearchResult {
	path := make([]board.Move, 0, len(r.CriticalPath)+1)
	path = append(path, m)
	path = append(path, r.CriticalPath...)
	return SearchResult{
		BestMove:      m,
		EvalBound:     r.EvalBound,
		NodesSearched: r.NodesSearched,
		CriticalPath:  path,
		Conspiracy:    r.Conspiracy,
	}
}

// WithNodes returns a copy of r with its node count replaced.
func (r SearchResult) WithNodes(nodes uint64) SearchResult {
	r.NodesSearched = nodes
	return r
}

// Bubbled returns a copy of r with its evaluation's mate distance
// bubbled by one ply, as happens whenever a child's result is absorbed
// one level up the tree.
func (r SearchResult) Bubbled() SearchResult {
	r.EvalBound = r.EvalBound.BubbleMate()
	return r
}
