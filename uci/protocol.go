// Package uci implements the UCI protocol subset of spec §6.1: enough
// of the command set to drive the search core from a GUI or script,
// over an input-reader thread feeding a single-producer single-consumer
// queue into the dedicated search thread (§5).
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"conspire/board"
	"conspire/config"
	"conspire/engine"
	"conspire/telemetry"
)

// command is one parsed inbound line.
type command struct {
	name string
	args []string
}

// Adapter owns the engine identity, the current root position and its
// visited-hash history, and the Session that actually searches. It is
// the single consumer of the command queue; a go command runs to
// completion (per §5's ordering rule) before the next command is
// dequeued, except stop, which is applied directly to the Session's
// cancellation flag rather than queued.
type Adapter struct {
	cfg     config.Config
	session *engine.Session
	pos     board.Position
	visited []uint64
	moveNum uint32

	sink  *telemetry.SQLiteSink
	runID int64

	out *bufio.Writer
}

// NewAdapter builds an Adapter from cfg, constructing the transposition
// table and driver the config selects. When cfg.Telemetry.Enabled, it
// also opens the SQLite sink and records this run's ConfigRecord; a
// sink that fails to open is logged and otherwise ignored, since
// telemetry is diagnostic and must never block play. When
// cfg.Logging.MoveLogFile is set, it opens the engine's async per-move
// debug sink the same way.
func NewAdapter(cfg config.Config, out io.Writer) *Adapter {
	a := &Adapter{
		cfg:     cfg,
		session: engine.NewSession(newTranspositionTable(cfg)),
		pos:     board.StartPosition(),
		out:     bufio.NewWriter(out),
	}
	a.session.Config = engine.Config{
		UseNullMoveStandPat:      cfg.Search.UseNullMoveStandPat,
		UseStaticPenaltyStandPat: cfg.Search.UseStaticPenaltyStandPat,
		ConspiracyBucketSize:     cfg.Conspiracy.BucketSize,
		ConspiracyNumBuckets:     cfg.Conspiracy.NumBuckets,
	}
	a.session.Driver = toEngineDriver(cfg.Search.Driver)
	a.session.MTDHParams = toEngineMTDHParams(cfg.Conspiracy.MTDH)

	if cfg.Logging.MoveLogFile != "" {
		moveLogger, err := engine.NewLogger(cfg.Logging.MoveLogFile)
		if err != nil {
			log.Warningf("move log disabled: %v", err)
		} else {
			a.session.Logger = moveLogger
		}
	}

	if cfg.Telemetry.Enabled {
		sink, err := telemetry.OpenSQLiteSink(cfg.Telemetry.DSN)
		if err != nil {
			log.Warningf("telemetry disabled: %v", err)
			fmt.Fprintf(a.out, "info string telemetry disabled: %v\n", err)
			a.out.Flush()
		} else {
			a.sink = sink
			runID, err := sink.InsertConfig(telemetry.ConfigRecord{
				MaxDepth:       cfg.Search.MaxDepth,
				Algorithm:      toTelemetryAlgorithm(cfg.Search.Driver),
				ConspiracyUsed: cfg.Conspiracy.NumBuckets > 0,
				TranspositionTableUsed: cfg.TranspositionTable.Variant != config.TableNone,
				Timestamp:      time.Now().Unix(),
			})
			if err != nil {
				log.Warningf("telemetry disabled: %v", err)
				fmt.Fprintf(a.out, "info string telemetry disabled: %v\n", err)
				a.out.Flush()
				sink.Close()
				a.sink = nil
			} else {
				a.runID = runID
			}
		}
	}
	return a
}

func newTranspositionTable(cfg config.Config) engine.TranspositionTable {
	switch cfg.TranspositionTable.Variant {
	case config.TableNone:
		return engine.NoTable{}
	case config.TableHighDepth:
		return engine.NewHighDepthTable(cfg.TranspositionTable.SizeMB, engine.Depth(int(cfg.TranspositionTable.MinimalDepth)))
	default:
		return engine.NewHashTable(cfg.TranspositionTable.SizeMB)
	}
}

func toTelemetryAlgorithm(d config.Driver) telemetry.SearchAlgorithm {
	switch d {
	case config.DriverAlphaBeta:
		return telemetry.AlgorithmAlphaBeta
	case config.DriverMT:
		return telemetry.AlgorithmMT
	case config.DriverMTDF:
		return telemetry.AlgorithmMtdF
	case config.DriverMTDHeuristic:
		return telemetry.AlgorithmMtdH
	default:
		return telemetry.AlgorithmMtdBi
	}
}

func toEngineDriver(d config.Driver) engine.Driver {
	switch d {
	case config.DriverAlphaBeta:
		return engine.DriverAlphaBeta
	case config.DriverMTDF:
		return engine.DriverMTDF
	case config.DriverMTDHeuristic:
		return engine.DriverMTDHeuristic
	default:
		return engine.DriverMTDBi
	}
}

func toEngineMTDHParams(params []config.MTDHParam) []engine.MtdHParams {
	out := make([]engine.MtdHParams, len(params))
	for i, p := range params {
		out[i] = engine.MtdHParams{
			TrainingDepth: p.TrainingDepth,
			TargetDepth:   p.TargetDepth,
			P:             p.P,
			WSideDown:     p.WSideDown,
			WSideUp:       p.WSideUp,
			C:             p.C,
		}
	}
	return out
}

// Run reads commands from in until EOF or `quit`, writing responses to
// the Adapter's configured output. Lines are split onto a buffered
// channel by a dedicated reader goroutine; `stop` is applied immediately
// (bypassing the queue, since Session.Stop is safe to call concurrently)
// so it reaches an in-progress search without waiting for that search to
// finish.
func (a *Adapter) Run(in io.Reader) {
	cmds := make(chan command, 64)
	quit := make(chan struct{})

	go func() {
		defer close(cmds)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			fields := strings.Fields(line)
			cmd := command{name: fields[0], args: fields[1:]}
			if cmd.name == "stop" {
				a.session.Stop()
				continue
			}
			select {
			case cmds <- cmd:
			case <-quit:
				return
			}
			if cmd.name == "quit" {
				return
			}
		}
	}()

	for cmd := range cmds {
		switch cmd.name {
		case "uci":
			a.respondf("id name %s", a.cfg.UCI.Name)
			a.respondf("id author %s", a.cfg.UCI.Author)
			a.respond("uciok")
		case "isready":
			a.respond("readyok")
		case "ucinewgame":
			a.session.NewGame()
			a.pos = board.StartPosition()
			a.visited = nil
			a.moveNum = 0
		case "position":
			a.handlePosition(cmd.args)
		case "go":
			a.handleGo(cmd.args)
		case "quit":
			close(quit)
			a.out.Flush()
			a.closeSinks()
			return
		}
		a.out.Flush()
	}
	a.out.Flush()
	a.closeSinks()
}

// closeSinks flushes and closes whichever optional sinks NewAdapter
// opened; Logger.Close tolerates a nil *Logger.
func (a *Adapter) closeSinks() {
	if a.sink != nil {
		a.sink.Close()
	}
	a.session.Logger.Close()
}

func (a *Adapter) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	var pos board.Position
	rest := args

	switch args[0] {
	case "startpos":
		pos = board.StartPosition()
		rest = args[1:]
	case "fen":
		movesIdx := len(args)
		for i, tok := range args {
			if tok == "moves" {
				movesIdx = i
				break
			}
		}
		fen := strings.Join(args[1:movesIdx], " ")
		p, err := board.FromFEN(fen)
		if err != nil {
			log.Warningf("rejecting malformed position command, fen %q: %v", fen, err)
			return
		}
		pos = p
		rest = args[movesIdx:]
	default:
		log.Warningf("rejecting unrecognized position command %q", args[0])
		return
	}

	visited := []uint64{pos.Hash}
	if len(rest) > 0 && rest[0] == "moves" {
		for _, mv := range rest[1:] {
			next, err := pos.ApplyUCIMove(mv)
			if err != nil {
				log.Warningf("rejecting malformed position command, move %q: %v", mv, err)
				return
			}
			pos = next
			visited = append(visited, pos.Hash)
		}
	}

	a.pos = pos
	a.visited = visited
}

func (a *Adapter) handleGo(args []string) {
	opts := parseCalculateOptions(args, a.cfg.Search.MaxDepth)
	uciPosition := a.pos.FEN()
	start := time.Now()
	var last engine.IterationResult
	result := a.session.Search(&a.pos, a.visited, opts, func(iter engine.IterationResult) {
		last = iter
		for _, line := range engine.FormatInfoLines(iter, a.pos.SideToMove == board.White) {
			a.respond(line)
		}
		a.out.Flush()
		if a.sink != nil {
			_, err := a.sink.InsertPositionSearch(telemetry.PositionSearchRecord{
				RunID:       a.runID,
				UCIPosition: uciPosition,
				Depth:       iter.Depth,
				TimeMS:      uint32(iter.Elapsed.Milliseconds()),
				Nodes:       iter.NodesSearched,
				Evaluation:  iter.EvalBound.Value.String(),
				Conspiracy:  telemetry.ConspiracyString(iter.Conspiracy),
				MoveNum:     a.moveNum,
				Timestamp:   time.Now().Unix(),
			})
			if err != nil {
				log.Warningf("telemetry write failed: %v", err)
				fmt.Fprintf(a.out, "info string telemetry write failed: %v\n", err)
				a.out.Flush()
			}
		}
	})
	a.session.Logger.Log(engine.MoveLogEntry{
		Timestamp: start,
		FEN:       uciPosition,
		Move:      result.BestMove.UCI(),
		Driver:    a.session.Driver,
		Score:     result.EvalBound.String(),
		Depth:     last.Depth,
		Nodes:     result.NodesSearched,
		Duration:  time.Since(start),
		GoParams:  strings.Join(args, " "),
	})
	a.moveNum++
	a.respondf("bestmove %s", result.BestMove.UCI())
}

func parseCalculateOptions(args []string, defaultDepth uint32) engine.CalculateOptions {
	var wtime, btime, winc, binc uint64
	haveGameClock := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				if d, err := strconv.Atoi(args[i+1]); err == nil {
					i++
					return engine.DepthOptions(uint32(d))
				}
			}
		case "movetime":
			if i+1 < len(args) {
				if ms, err := strconv.ParseUint(args[i+1], 10, 64); err == nil {
					i++
					return engine.MoveTimeOptions(ms)
				}
			}
		case "infinite":
			return engine.InfiniteOptions()
		case "wtime":
			if i+1 < len(args) {
				wtime, _ = strconv.ParseUint(args[i+1], 10, 64)
				haveGameClock = true
				i++
			}
		case "btime":
			if i+1 < len(args) {
				btime, _ = strconv.ParseUint(args[i+1], 10, 64)
				haveGameClock = true
				i++
			}
		case "winc":
			if i+1 < len(args) {
				winc, _ = strconv.ParseUint(args[i+1], 10, 64)
				i++
			}
		case "binc":
			if i+1 < len(args) {
				binc, _ = strconv.ParseUint(args[i+1], 10, 64)
				i++
			}
		}
	}
	if haveGameClock {
		return engine.GameOptions(wtime, btime, winc, binc)
	}
	return engine.DepthOptions(defaultDepth)
}

func (a *Adapter) respond(line string) {
	fmt.Fprintln(a.out, line)
}

func (a *Adapter) respondf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
