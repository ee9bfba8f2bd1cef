package engine

import (
	"fmt"
	"os"
	"time"

	golog "log"

	"github.com/op/go-logging"
)

// log is the package-level logger ordinary engine operational messages
// (queue-full warnings, game-start boundaries) go through. It logs
// nowhere until ConfigureLogging attaches a backend — matching
// go-logging's MustGetLogger default of a silent no-op backend, so
// calling Warning/Infof before main.go configures logging is harmless.
var log = logging.MustGetLogger("engine")

// ConfigureLogging attaches a leveled, colorized stderr backend to the
// engine package's logger, the way frankkopp-FrankyGo's
// getSearchTraceLog builds its trace logger. main.go calls this once at
// startup with the configured level; invalid levels fall back to INFO.
func ConfigureLogging(level string) {
	log.SetBackend(stderrBackend(level))
}

func stderrBackend(level string) logging.LeveledBackend {
	format := logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{level:-7.7s}%{color:reset} %{message}`,
	)
	backend := logging.NewLogBackend(os.Stderr, "", golog.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, "")
	return leveled
}

// MoveLogEntry is what one completed search (one bestmove decision)
// contributes to the engine's operational log.
type MoveLogEntry struct {
	Timestamp time.Time
	FEN       string
	Move      string
	Driver    Driver
	Score     string
	Depth     uint32
	Nodes     uint64
	Duration  time.Duration
	GoParams  string
}

// Logger is a queue-backed async sink for MoveLogEntry values, so the search
// thread's bestmove emission is never held up by log I/O. The queue and
// background writer are the teacher's shape; it writes its own dedicated
// file directly (via the stdlib logger) rather than through the package's
// go-logging instance, so this per-move record stays out of whatever
// stderr backend ConfigureLogging attaches to ordinary operational logs.
type Logger struct {
	file   *os.File
	writer *golog.Logger
	queue  chan MoveLogEntry
	done   chan struct{}
}

// NewLogger opens filename for append and starts the background writer.
// A nil *Logger is valid and silently drops every call, so engine code
// need not special-case "no logging configured."
func NewLogger(filename string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		file:   file,
		writer: golog.New(file, "", golog.Ldate|golog.Ltime|golog.Lmsgprefix),
		queue:  make(chan MoveLogEntry, 100),
		done:   make(chan struct{}),
	}
	go l.writeLoop()
	return l, nil
}

// Log enqueues an entry for the background writer, dropping it rather
// than blocking the search thread if the queue is full.
func (l *Logger) Log(entry MoveLogEntry) {
	if l == nil {
		return
	}
	select {
	case l.queue <- entry:
	default:
		log.Warning("move log queue full, dropping entry")
	}
}

// LogGameStart records a `ucinewgame` boundary.
func (l *Logger) LogGameStart(params string) {
	if l == nil {
		return
	}
	log.Infof("=== NEW GAME === %s", params)
}

// Close drains the queue, stops the background writer, and closes the
// underlying file.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	close(l.queue)
	<-l.done
	l.file.Close()
}

func (l *Logger) writeLoop() {
	for entry := range l.queue {
		goParams := ""
		if entry.GoParams != "" {
			goParams = " | " + entry.GoParams
		}
		l.writer.Printf(
			"driver %-13s move %-7s score %-8s depth %-3d nodes %-10d time %-8s fen %s%s",
			driverName(entry.Driver),
			entry.Move,
			entry.Score,
			entry.Depth,
			entry.Nodes,
			entry.Duration.Round(10*time.Millisecond),
			entry.FEN,
			goParams,
		)
	}
	close(l.done)
}

func driverName(d Driver) string {
	switch d {
	case DriverAlphaBeta:
		return "alphabeta"
	case DriverMTDBi:
		return "mtd-bi"
	case DriverMTDF:
		return "mtd-f"
	case DriverMTDHeuristic:
		return "mtd-h"
	default:
		return fmt.Sprintf("driver(%d)", d)
	}
}
