package engine

import "conspire/board"

// mtdExtremeCentipawns substitutes a finite stand-in for the absolute
// BlackMate(0)/WhiteMate(0) bounds before bisecting, matching the
// original research code's avg_bounds: averaging two mate sentinels
// directly is meaningless, so they are treated as ∓20000cp instead.
const mtdExtremeCentipawns = Centipawns(20000)

func avgBounds(lower, upper BoardEvaluation) BoardEvaluation {
	lo := mateToCentipawns(lower)
	hi := mateToCentipawns(upper)
	mid := (lo.Score() + hi.Score()) / 2
	return PieceScoreEval(mid)
}

// mateToCentipawns substitutes a finite stand-in for a mate evaluation of
// either side before bisecting: a mate bound has no centipawn value to
// average directly, so distance-to-mate is mapped onto the extreme end of
// the centipawn range instead, with a sooner mate (smaller k) mapping
// closer to ±mtdExtremeCentipawns than a farther one. Non-mate values pass
// through unchanged.
func mateToCentipawns(e BoardEvaluation) BoardEvaluation {
	if !e.IsMate() {
		return e
	}
	d := Centipawns(e.MateDistance())
	if d > mtdExtremeCentipawns-1 {
		d = mtdExtremeCentipawns - 1
	}
	magnitude := mtdExtremeCentipawns - d
	if e.IsBlackMate() {
		magnitude = -magnitude
	}
	return PieceScoreEval(magnitude)
}

// StepFunc selects the next test value from the last one tried and the
// current [lower, upper] window.
type StepFunc func(last, lower, upper BoardEvaluation) BoardEvaluation

// MTDBiStep bisects the remaining interval — MTD-bi.
func MTDBiStep(last, lower, upper BoardEvaluation) BoardEvaluation {
	return avgBounds(lower, upper)
}

// mtdfStepSize is MTD-f's fixed probe increment.
const mtdfStepSize = Centipawns(30)

// MTDFStep tries last ± a small fixed step (down when last equals upper,
// up otherwise), falling back to bisection when that step would not land
// strictly inside the current [lower, upper] window — MTD-f.
func MTDFStep(last, lower, upper BoardEvaluation) BoardEvaluation {
	if !last.IsPieceScore() {
		return avgBounds(lower, upper)
	}
	trial := PieceScoreEval(last.Score() + mtdfStepSize)
	if last.Equal(upper) {
		trial = PieceScoreEval(last.Score() - mtdfStepSize)
	}
	if trial.Greater(lower) && trial.Less(upper) {
		return trial
	}
	return avgBounds(lower, upper)
}

// Probe is one MT invocation inside an MTD iteration: the test value
// tried and the result it produced.
type Probe struct {
	TestValue BoardEvaluation
	Result    SearchResult
	Index     int
}

// MTDResult is an MTD driver's outcome: the converged SearchResult, every
// probe taken to get there, and how many bound-inversion ("instability")
// events occurred.
type MTDResult struct {
	SearchResult
	Probes        []Probe
	Instabilities int
}

const maxInstabilityForceExact = 4
const maxInstabilityHardStop = 7

// MTD repeatedly probes MT with successive test values, tightening
// [lower, upper] toward the minimax value, per C6. g is the starting
// test value (typically the previous iterative-deepening depth's
// result); step selects each subsequent test value.
func (sc *SearchContext) MTD(pos *board.Position, depth int, g BoardEvaluation, step StepFunc) MTDResult {
	lower := BlackMateEval(0)
	upper := WhiteMateEval(0)
	t := g
	white := pos.SideToMove == board.White

	var probes []Probe
	instabilities := 0
	var conspiracy *ConspiracyCounter

	for idx := 0; ; idx++ {
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
			// OQ-2: return the first Exact immediately, unwrapped — the
			// simpler of the two contracts the research code exhibits.
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
			if instabilities >= maxInstabilityForceExact && favorable {
				r.EvalBound = ExactBound(r.EvalBound.Value)
				r.Conspiracy = conspiracy
				return MTDResult{SearchResult: r, Probes: probes, Instabilities: instabilities}
			}
			if instabilities >= maxInstabilityHardStop {
				r.EvalBound = ExactBound(r.EvalBound.Value)
				r.Conspiracy = conspiracy
				return MTDResult{SearchResult: r, Probes: probes, Instabilities: instabilities}
			}
		}

		if !lower.Less(upper) {
			r.EvalBound = ExactBound(r.EvalBound.Value)
			r.Conspiracy = conspiracy
			return MTDResult{SearchResult: r, Probes: probes, Instabilities: instabilities}
		}

		t = step(t, lower, upper)
	}
}
