package engine

import (
	"sync/atomic"

	"conspire/board"
)

// Session is the long-lived, per-game state a UCI adapter drives: the
// transposition table (reset on `ucinewgame`, never touched mid-search
// by anything else), the driver/config selection, and the cooperative
// cancellation flag `stop` sets. Exactly one search runs at a time; the
// adapter is responsible for processing commands to completion before
// dequeueing the next, per §5's ordering rule.
type Session struct {
	TT         TranspositionTable
	Config     Config
	Driver     Driver
	MTDHParams []MtdHParams
	Logger     *Logger

	cancel atomic.Bool
}

// NewSession builds a session around an already-constructed
// transposition table, ready to search with DefaultConfig and
// DriverMTDBi.
func NewSession(tt TranspositionTable) *Session {
	return &Session{
		TT:     tt,
		Config: DefaultConfig(),
		Driver: DriverMTDBi,
	}
}

// NewGame resets the transposition table and any per-game state, per the
// `ucinewgame` command.
func (s *Session) NewGame() {
	s.TT.Clear()
	if s.Logger != nil {
		s.Logger.LogGameStart("ucinewgame")
	}
}

// Stop sets the cooperative cancellation flag. It is advisory: the
// in-flight search finishes its current depth before noticing.
func (s *Session) Stop() {
	s.cancel.Store(true)
}

// Search runs iterative deepening from pos until options' termination
// predicate (or a Stop) ends it, returning the last completed depth's
// result. visitedHashes seeds the repetition-detection stack with the
// game history leading to pos. onIteration, if non-nil, is called after
// every completed depth (the UCI adapter's `info` line hook).
func (s *Session) Search(pos *board.Position, visitedHashes []uint64, opts CalculateOptions, onIteration func(IterationResult)) SearchResult {
	s.cancel.Store(false)

	sc := NewSearchContext(s.TT)
	sc.Config = s.Config
	sc.Visited = NewVisitedStack(len(visitedHashes) + 64)
	for _, h := range visitedHashes {
		sc.Visited.Push(h)
	}
	sc.Cancelled = func() bool { return s.cancel.Load() }

	cfg := IterativeConfig{
		Driver:      s.Driver,
		Options:     opts,
		MTDHParams:  s.MTDHParams,
		OnIteration: onIteration,
	}
	result := sc.IterativeDeepening(pos, cfg)
	return result.SearchResult
}
