package engine

import (
	"fmt"
	"strings"
	"time"

	"conspire/board"
)

// CalcKind selects which of C8's four termination predicates governs an
// iterative-deepening search.
type CalcKind int

const (
	CalcDepth CalcKind = iota
	CalcMoveTime
	CalcInfinite
	CalcGame
)

// CalculateOptions is the parsed form of a UCI `go` command's time-control
// arguments.
type CalculateOptions struct {
	Kind             CalcKind
	Depth            uint32
	MoveTimeMS       uint64
	WhiteTimeMS      uint64
	BlackTimeMS      uint64
	WhiteIncrementMS uint64
	BlackIncrementMS uint64
}

func DepthOptions(d uint32) CalculateOptions        { return CalculateOptions{Kind: CalcDepth, Depth: d} }
func MoveTimeOptions(ms uint64) CalculateOptions    { return CalculateOptions{Kind: CalcMoveTime, MoveTimeMS: ms} }
func InfiniteOptions() CalculateOptions             { return CalculateOptions{Kind: CalcInfinite} }
func GameOptions(wt, bt, wi, bi uint64) CalculateOptions {
	return CalculateOptions{Kind: CalcGame, WhiteTimeMS: wt, BlackTimeMS: bt, WhiteIncrementMS: wi, BlackIncrementMS: bi}
}

func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// IsStillSearching is C8's termination predicate: whether nextDepth
// should be searched given the elapsed time and side to move.
func IsStillSearching(opts CalculateOptions, white bool, elapsed time.Duration, nextDepth uint32) bool {
	switch opts.Kind {
	case CalcDepth:
		return nextDepth <= opts.Depth
	case CalcInfinite:
		return true
	case CalcMoveTime:
		return uint64(elapsed.Milliseconds()) < opts.MoveTimeMS
	case CalcGame:
		already := uint64(elapsed.Milliseconds())
		extra := 5 * already
		if white {
			return saturatingSub(already+extra, opts.WhiteIncrementMS) < opts.WhiteTimeMS/50
		}
		return saturatingSub(already+extra, opts.BlackIncrementMS) < opts.BlackTimeMS/50
	}
	return false
}

// Driver selects the search algorithm an iterative-deepening loop invokes
// at each depth.
type Driver int

const (
	DriverAlphaBeta Driver = iota
	DriverMTDBi
	DriverMTDF
	DriverMTDHeuristic
)

// IterativeConfig parameterizes one iterative-deepening run.
type IterativeConfig struct {
	Driver     Driver
	Options    CalculateOptions
	MTDHParams []MtdHParams
	// OnIteration, if set, is called synchronously after each completed
	// depth with that depth's result — the hook a UCI adapter uses to
	// emit `info` lines and a telemetry sink uses to log a position
	// search row.
	OnIteration func(IterationResult)
}

// IterationResult is what one completed depth of iterative deepening
// produces: the search result plus the bookkeeping an `info` line needs.
type IterationResult struct {
	SearchResult
	Depth          uint32
	SelectiveDepth uint32
	Elapsed        time.Duration
}

type driverResult struct {
	SearchResult
}

func (sc *SearchContext) runDriver(pos *board.Position, depth int, g BoardEvaluation, driver Driver, params *MtdHParams, trainingCounter *ConspiracyCounter) driverResult {
	switch driver {
	case DriverAlphaBeta:
		r := sc.AlphaBeta(pos, BlackMateEval(0), WhiteMateEval(0), depth)
		return driverResult{r}
	case DriverMTDF:
		r := sc.MTD(pos, depth, g, MTDFStep)
		return driverResult{r.SearchResult}
	case DriverMTDHeuristic:
		if params != nil && trainingCounter != nil {
			r := sc.MTDHeuristic(pos, depth, g, *params, *trainingCounter)
			return driverResult{r.SearchResult}
		}
		r := sc.MTD(pos, depth, g, MTDBiStep)
		return driverResult{r.SearchResult}
	default: // DriverMTDBi
		r := sc.MTD(pos, depth, g, MTDBiStep)
		return driverResult{r.SearchResult}
	}
}

// IterativeDeepening runs C8: the configured driver at depth 1, 2, 3, …,
// feeding each depth's value forward as the next depth's starting test
// point, until the termination predicate for cfg.Options says to stop.
// Conspiracy counters recorded at each depth are kept (indexed by
// depth-1) to feed MTD-heuristic's training-depth lookups at later
// depths, per the heuristic driver's own iterative wrapper in the
// research code.
func (sc *SearchContext) IterativeDeepening(pos *board.Position, cfg IterativeConfig) IterationResult {
	start := time.Now()
	white := pos.SideToMove == board.White

	var conspiracyHistory []ConspiracyCounter

	result := sc.runDriver(pos, 1, PieceScoreEval(0), cfg.Driver, nil, nil)
	if result.Conspiracy != nil {
		conspiracyHistory = append(conspiracyHistory, *result.Conspiracy)
	}
	iter := IterationResult{SearchResult: result.SearchResult, Depth: 1, SelectiveDepth: 1, Elapsed: time.Since(start)}
	if cfg.OnIteration != nil {
		cfg.OnIteration(iter)
	}

	depth := uint32(2)
	for IsStillSearching(cfg.Options, white, time.Since(start), depth) && !sc.cancelled() {
		var params *MtdHParams
		var trainingCounter *ConspiracyCounter
		if cfg.Driver == DriverMTDHeuristic {
			params = FindApplicableParam(cfg.MTDHParams, depth)
			if params != nil && params.TrainingDepth >= 1 && int(params.TrainingDepth) <= len(conspiracyHistory) {
				trainingCounter = &conspiracyHistory[params.TrainingDepth-1]
			}
		}

		result = sc.runDriver(pos, int(depth), iter.EvalBound.Value, cfg.Driver, params, trainingCounter)
		if result.Conspiracy != nil {
			conspiracyHistory = append(conspiracyHistory, *result.Conspiracy)
		}
		iter = IterationResult{SearchResult: result.SearchResult, Depth: depth, SelectiveDepth: depth, Elapsed: time.Since(start)}
		if cfg.OnIteration != nil {
			cfg.OnIteration(iter)
		}
		depth++
	}

	return iter
}

// scoreToken renders a BoardEvaluation as the `cp N` / `mate ±K` token
// of an `info` line, from the perspective of the side to move — the
// internal representation stays White-relative throughout the search.
func scoreToken(eval BoardEvaluation, white bool) string {
	switch {
	case eval.IsPieceScore():
		cp := eval.Score()
		if !white {
			cp = -cp
		}
		return fmt.Sprintf("cp %d", cp)
	case eval.IsWhiteMate():
		plies := eval.MateDistance()
		if white {
			return fmt.Sprintf("mate %d", plies/2)
		}
		return fmt.Sprintf("mate -%d", plies/2)
	default: // IsBlackMate
		plies := eval.MateDistance()
		if white {
			return fmt.Sprintf("mate -%d", plies/2)
		}
		return fmt.Sprintf("mate %d", plies/2)
	}
}

// FormatInfoLines renders §6.3's `info` line (and, when time has passed,
// a preceding `info nps N` line) for one completed iteration.
func FormatInfoLines(iter IterationResult, white bool) []string {
	var lines []string
	millis := iter.Elapsed.Milliseconds()
	if millis > 0 {
		nps := int64(iter.NodesSearched) * 1000 / millis
		lines = append(lines, fmt.Sprintf("info nps %d", nps))
	}

	var pv string
	if len(iter.CriticalPath) > 0 {
		moves := make([]string, len(iter.CriticalPath))
		for i, m := range iter.CriticalPath {
			moves[i] = m.UCI()
		}
		pv = " pv " + strings.Join(moves, " ")
	}

	nodes := ""
	if iter.NodesSearched > 0 {
		nodes = fmt.Sprintf("nodes %d ", iter.NodesSearched)
	}

	lines = append(lines, fmt.Sprintf(
		"info score %s depth %d seldepth %d %stime %d%s",
		scoreToken(iter.EvalBound.Value, white), iter.Depth, iter.SelectiveDepth, nodes, millis, pv,
	))
	return lines
}
