package uci

import (
	"os"

	golog "log"

	"github.com/op/go-logging"
)

// log is uci's package-level logger for protocol-level operational
// messages (malformed commands rejected, telemetry sink failures). It
// logs nowhere until ConfigureLogging attaches a backend.
var log = logging.MustGetLogger("uci")

// ConfigureLogging attaches a leveled, colorized stderr backend to the
// uci package's logger; main.go calls this once at startup alongside
// engine.ConfigureLogging. Invalid levels fall back to INFO.
func ConfigureLogging(level string) {
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
	log.SetBackend(leveled)
}
