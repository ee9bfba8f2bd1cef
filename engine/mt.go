package engine

import "conspire/board"

// ttCutoffTestValue applies the §4.3 reuse rule used by MT: a stored
// Exact entry always short-circuits; a LowerBound entry cuts off only
// when White is to move and its value already exceeds t; an UpperBound
// entry cuts off only when Black is to move and its value already falls
// below t. Any other combination is hint-only.
func ttCutoffTestValue(info SearchInfo, t BoardEvaluation, white bool) (SearchResult, bool) {
	switch info.Evaluation.Tag {
	case Exact:
		return SearchResult{
			BestMove:      info.BestMove,
			EvalBound:     info.Evaluation,
			CriticalPath:  info.PrimeVariation,
			NodesSearched: 1,
		}, true
	case LowerBound:
		if white && info.Evaluation.Value.Greater(t) {
			return SearchResult{BestMove: info.BestMove, EvalBound: info.Evaluation, NodesSearched: 1}, true
		}
	case UpperBound:
		if !white && info.Evaluation.Value.Less(t) {
			return SearchResult{BestMove: info.BestMove, EvalBound: info.Evaluation, NodesSearched: 1}, true
		}
	}
	return SearchResult{}, false
}

// MT is the null-window memory-enhanced test: a probe against a single
// test value t rather than an (alpha, beta) window. Its result is a
// LowerBound(v) with v>t when the true value is proven to exceed t, an
// UpperBound(v) with v<t when proven below, or an Exact(v) only when
// the fail-soft bounds collapse onto t itself.
func (sc *SearchContext) MT(pos *board.Position, depthLeft int, t BoardEvaluation) SearchResult {
	sc.Nodes++
	legal := pos.LegalMoves()
	if status := pos.GameStatus(legal); status != board.InProgress {
		eval := StaticEval(pos, legal)
		result := SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(eval), NodesSearched: sc.Nodes}
		if sc.Config.conspiracyEnabled() {
			c := FromTerminal(eval, sc.Config.ConspiracyBucketSize, sc.Config.ConspiracyNumBuckets)
			result.Conspiracy = &c
		}
		return result
	}
	if sc.Visited.IsThreefoldRepetition(pos.Hash) {
		return SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(PieceScoreEval(0)), NodesSearched: sc.Nodes}
	}

	white := pos.SideToMove == board.White
	onPath := sc.Visited.Contains(pos.Hash)
	hint := board.NullMove
	if !onPath {
		reqDepth := Depth(depthLeft)
		if info, ok := sc.TT.Get(pos.Hash, ttDepthPtr(reqDepth)); ok {
			if result, cut := ttCutoffTestValue(info, t, white); cut {
				result.NodesSearched = sc.Nodes
				return result
			}
			hint = info.BestMove
		} else if info, ok := sc.TT.Get(pos.Hash, nil); ok {
			hint = info.BestMove
		}
	}

	if depthLeft <= 0 {
		eval := StaticEval(pos, legal)
		result := SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(eval), NodesSearched: sc.Nodes}
		if sc.Config.conspiracyEnabled() {
			c := FromLeaf(eval, sc.Config.ConspiracyBucketSize, sc.Config.ConspiracyNumBuckets)
			result.Conspiracy = &c
		}
		return result
	}

	ordered := OrderMoves(pos, legal, hint, false)
	sc.Visited.Push(pos.Hash)
	defer sc.Visited.Pop()

	childTest := t.UnbubbleMate()
	best := SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(worstForSide(white))}
	var conspiracy *ConspiracyCounter
	cutoff := false

	for _, m := range ordered {
		child := pos.ApplyMove(m)
		childResult := sc.MT(&child, depthLeft-1, childTest)
		childEval := childResult.EvalBound.Value.BubbleMate()

		if improves(white, childEval, best.EvalBound.Value) {
			best = childResult.WithMove(m)
			best.EvalBound = best.EvalBound.SetValue(childEval)
		}

		if sc.Config.conspiracyEnabled() && childResult.Conspiracy != nil {
			conspiracy = mergeChildConspiracy(conspiracy, childResult.Conspiracy, white)
		}

		if white && childEval.Greater(t) {
			best = childResult.WithMove(m)
			best.EvalBound = Lower(childEval)
			cutoff = true
			break
		}
		if !white && childEval.Less(t) {
			best = childResult.WithMove(m)
			best.EvalBound = Upper(childEval)
			cutoff = true
			break
		}
	}

	if !cutoff {
		if white {
			best.EvalBound = Upper(best.EvalBound.Value)
		} else {
			best.EvalBound = Lower(best.EvalBound.Value)
		}
	}

	if conspiracy != nil {
		conspiracy.NodeValue = best.EvalBound.Value
		best.Conspiracy = conspiracy
	}

	best.NodesSearched = sc.Nodes
	sc.TT.Update(pos.Hash, Depth(depthLeft), best.EvalBound, best.BestMove, best.CriticalPath)
	return best
}

// mergeChildConspiracy folds one more child's conspiracy counter into the
// running merge for the current node, MAX-style if white is to move
// (this node maximizes) or MIN-style otherwise.
func mergeChildConspiracy(running, child *ConspiracyCounter, white bool) *ConspiracyCounter {
	if running == nil {
		c := *child
		return &c
	}
	var merged ConspiracyCounter
	if white {
		merged = MergeMaxNodeChildren(*running, *child)
	} else {
		merged = MergeMinNodeChildren(*running, *child)
	}
	return &merged
}
