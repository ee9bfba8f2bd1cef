package engine

import "conspire/board"

// staticPenaltyCentipawns is the quiescence stand-pat penalty: forfeiting
// the right to capture costs roughly half a pawn, discouraging the
// "must capture or give up the move" blunders a naive captures-only
// quiescence search would otherwise accept.
const staticPenaltyCentipawns = Centipawns(54)

// Config selects the optional quiescence refinements OQ-3 permits
// dropping without violating any invariant, and the conspiracy-counter
// bucket geometry MT records with.
type Config struct {
	UseNullMoveStandPat      bool
	UseStaticPenaltyStandPat bool
	// ConspiracyBucketSize/NumBuckets enable conspiracy-counter tracking
	// in MT when both are nonzero (NumBuckets must be odd, per §3).
	ConspiracyBucketSize uint32
	ConspiracyNumBuckets uint32
}

func (c Config) conspiracyEnabled() bool {
	return c.ConspiracyBucketSize > 0 && c.ConspiracyNumBuckets > 0
}

func DefaultConfig() Config {
	return Config{UseNullMoveStandPat: true, UseStaticPenaltyStandPat: true}
}

// SearchContext is a single search invocation's mutable state: the
// transposition table it exclusively owns, the visited-hash stack for
// the current root-to-leaf path, a node counter, and a cooperative
// cancellation flag polled only at the iterative-deepening boundary
// (§5: "No suspension points exist inside the search tree"). Nothing
// here is shared across concurrent searches — a SearchContext belongs
// to exactly one search thread for exactly one game.
type SearchContext struct {
	TT        TranspositionTable
	Visited   *VisitedStack
	Config    Config
	Nodes     uint64
	Cancelled func() bool
}

// cancelled reports whether the cooperative cancellation flag is set.
// Checked only at the iterative-deepening boundary (§5): nothing inside
// alphaBeta, quiescence, or MT polls it.
func (sc *SearchContext) cancelled() bool {
	return sc.Cancelled != nil && sc.Cancelled()
}

func NewSearchContext(tt TranspositionTable) *SearchContext {
	return &SearchContext{
		TT:      tt,
		Visited: NewVisitedStack(256),
		Config:  DefaultConfig(),
	}
}

func materialScore(pos *board.Position) Centipawns {
	var total Centipawns
	for color := board.White; color <= board.Black; color++ {
		for piece := board.Pawn; piece <= board.King; piece++ {
			bb := pos.Pieces[color][piece]
			for bb != 0 {
				var idx int
				idx, bb = bb.PopLSB()
				total += pieceSquareValue(piece, color, board.Square(idx))
			}
		}
	}
	return total
}

func improves(white bool, candidate, incumbent BoardEvaluation) bool {
	if white {
		return candidate.Greater(incumbent)
	}
	return candidate.Less(incumbent)
}

// worstForSide returns the evaluation no real line can be worse than for
// the side to move: BlackMate(0) for White (White's worst case is "I'm
// already mated"), WhiteMate(0) for Black.
func worstForSide(white bool) BoardEvaluation {
	if white {
		return BlackMateEval(0)
	}
	return WhiteMateEval(0)
}

func ttDepthPtr(d SearchDepth) *SearchDepth { return &d }

// ttCutoffWindow applies the §4.3 reuse rule against an alpha/beta
// window: an Exact entry is returned outright; a Lower/Upper entry cuts
// off only when its value already falls outside the window in the
// direction that would prune. ok reports whether a cutoff applies; when
// it does not, the caller may still use info.BestMove as an ordering
// hint.
func ttCutoffWindow(info SearchInfo, alpha, beta BoardEvaluation) (SearchResult, bool) {
	switch info.Evaluation.Tag {
	case Exact:
		return SearchResult{
			BestMove:      info.BestMove,
			EvalBound:     info.Evaluation,
			CriticalPath:  info.PrimeVariation,
			NodesSearched: 1,
		}, true
	case LowerBound:
		if info.Evaluation.Value.GreaterEq(beta) {
			return SearchResult{BestMove: info.BestMove, EvalBound: info.Evaluation, NodesSearched: 1}, true
		}
	case UpperBound:
		if info.Evaluation.Value.LessEq(alpha) {
			return SearchResult{BestMove: info.BestMove, EvalBound: info.Evaluation, NodesSearched: 1}, true
		}
	}
	return SearchResult{}, false
}

// AlphaBeta is the fail-soft negamax-style search of C4: White maximizes,
// Black minimizes, over the totally-ordered BoardEvaluation. depthLeft
// counts full plies remaining; at depthLeft==0 it descends into
// quiescence. visited repetition and TT reuse are checked before any
// recursion, per §4.3-§4.4.
func (sc *SearchContext) AlphaBeta(pos *board.Position, alpha, beta BoardEvaluation, depthLeft int) SearchResult {
	return sc.alphaBeta(pos, alpha, beta, depthLeft, materialScore(pos))
}

func (sc *SearchContext) alphaBeta(pos *board.Position, alpha, beta BoardEvaluation, depthLeft int, runningScore Centipawns) SearchResult {
	sc.Nodes++
	legal := pos.LegalMoves()
	if status := pos.GameStatus(legal); status != board.InProgress {
		return SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(StaticEval(pos, legal)), NodesSearched: sc.Nodes}
	}
	if sc.Visited.IsThreefoldRepetition(pos.Hash) {
		return SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(PieceScoreEval(0)), NodesSearched: sc.Nodes}
	}

	onPath := sc.Visited.Contains(pos.Hash)
	hint := board.NullMove
	if !onPath {
		reqDepth := Depth(depthLeft)
		if info, ok := sc.TT.Get(pos.Hash, ttDepthPtr(reqDepth)); ok {
			if result, cut := ttCutoffWindow(info, alpha, beta); cut {
				result.NodesSearched = sc.Nodes
				return result
			}
			hint = info.BestMove
		} else if info, ok := sc.TT.Get(pos.Hash, nil); ok {
			hint = info.BestMove
		}
	}

	if depthLeft <= 0 {
		return sc.quiescence(pos, alpha, beta, runningScore, quiescenceSelectiveDepth)
	}

	ordered := OrderMoves(pos, legal, hint, false)
	sc.Visited.Push(pos.Hash)
	defer sc.Visited.Pop()

	white := pos.SideToMove == board.White
	alphaOrig := alpha
	best := SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(worstForSide(white))}

	for _, m := range ordered {
		child := pos.ApplyMove(m)
		childScore := runningScore + IncrementalEval(pos, m)
		childResult := sc.alphaBeta(&child, alpha, beta, depthLeft-1, childScore)
		childEval := childResult.EvalBound.Value.BubbleMate()

		if improves(white, childEval, best.EvalBound.Value) {
			best = childResult.WithMove(m)
			best.EvalBound = best.EvalBound.SetValue(childEval)
		}
		if white {
			if best.EvalBound.Value.Greater(alpha) {
				alpha = best.EvalBound.Value
			}
		} else {
			if best.EvalBound.Value.Less(beta) {
				beta = best.EvalBound.Value
			}
		}
		if beta.Less(alpha) {
			break
		}
	}

	tag := boundTagForAlphaBeta(best.EvalBound.Value, alphaOrig, beta, white)
	best.EvalBound = EvalBound{Tag: tag, Value: best.EvalBound.Value}
	best.NodesSearched = sc.Nodes

	sc.TT.Update(pos.Hash, Depth(depthLeft), best.EvalBound, best.BestMove, best.CriticalPath)
	return best
}

// boundTagForAlphaBeta decides the bound role of the final best value:
// Exact when the window was never exceeded (a genuine minimax value),
// or the tag matching whichever side's pruning produced the cutoff.
func boundTagForAlphaBeta(best, alphaOrig, beta BoardEvaluation, white bool) BoundTag {
	if white && best.GreaterEq(beta) {
		return LowerBound
	}
	if !white && best.LessEq(alphaOrig) {
		return UpperBound
	}
	return Exact
}

// quiescenceSelectiveDepth bounds how many selective plies quiescence may
// extend beyond the nominal search depth.
const quiescenceSelectiveDepth = 16

// quiescence is the captures-only extension of C4, with an optional
// null-move stand-pat (skip a move entirely, since the opponent need not
// capture back) and an optional flat static-penalty stand-pat. Results
// here are never stored in the transposition table (§4.4: "results at
// Quiescent depth are not stored in the TT").
func (sc *SearchContext) quiescence(pos *board.Position, alpha, beta BoardEvaluation, runningScore Centipawns, selDepthLeft int) SearchResult {
	sc.Nodes++
	legal := pos.LegalMoves()
	if status := pos.GameStatus(legal); status != board.InProgress {
		return SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(StaticEval(pos, legal)), NodesSearched: sc.Nodes}
	}
	if sc.Visited.IsThreefoldRepetition(pos.Hash) {
		return SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(PieceScoreEval(0)), NodesSearched: sc.Nodes}
	}

	white := pos.SideToMove == board.White
	best := SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(worstForSide(white))}

	if selDepthLeft > 0 {
		captures := OrderMoves(pos, board.Captures(legal), board.NullMove, true)
		for _, m := range captures {
			child := pos.ApplyMove(m)
			childScore := runningScore + IncrementalEval(pos, m)
			childResult := sc.quiescence(&child, alpha, beta, childScore, selDepthLeft-1)
			if improves(white, childResult.EvalBound.Value, best.EvalBound.Value) {
				best = childResult.WithMove(m)
			}
			if white {
				if best.EvalBound.Value.Greater(alpha) {
					alpha = best.EvalBound.Value
				}
			} else {
				if best.EvalBound.Value.Less(beta) {
					beta = best.EvalBound.Value
				}
			}
			if beta.Less(alpha) {
				break
			}
		}

		if sc.Config.UseNullMoveStandPat {
			if nullPos, ok := sc.tryNullMove(pos); ok {
				childResult := sc.quiescence(&nullPos, alpha, beta, runningScore, selDepthLeft-1)
				if improves(white, childResult.EvalBound.Value, best.EvalBound.Value) {
					best = SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(childResult.EvalBound.Value), NodesSearched: childResult.NodesSearched}
				}
			}
		}
	}

	current := PieceScoreEval(runningScore)
	if improves(white, current, best.EvalBound.Value) {
		best = SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(current)}
	}

	if sc.Config.UseStaticPenaltyStandPat {
		var penalized BoardEvaluation
		if white {
			penalized = PieceScoreEval(runningScore - staticPenaltyCentipawns)
		} else {
			penalized = PieceScoreEval(runningScore + staticPenaltyCentipawns)
		}
		if improves(white, penalized, best.EvalBound.Value) {
			best = SearchResult{BestMove: board.NullMove, EvalBound: ExactBound(penalized)}
		}
	}

	tag := Exact
	if white && best.EvalBound.Value.GreaterEq(beta) {
		tag = LowerBound
	} else if !white && best.EvalBound.Value.LessEq(alpha) {
		tag = UpperBound
	}
	best.EvalBound = EvalBound{Tag: tag, Value: best.EvalBound.Value}
	best.NodesSearched = sc.Nodes
	return best
}

// tryNullMove produces the "pass" position for the null-move stand-pat,
// refusing to do so while in check (a side in check has no legal pass).
func (sc *SearchContext) tryNullMove(pos *board.Position) (board.Position, bool) {
	if pos.InCheck(pos.SideToMove) {
		return board.Position{}, false
	}
	return pos.ApplyNullMove(), true
}
