// Package config loads conspire's TOML configuration file: which search
// driver iterative deepening should run, the transposition-table
// variant and size, conspiracy-counter bucket geometry, MTD-heuristic
// training parameters, the optional telemetry sink, the logging level
// and optional move-log file, and the engine's UCI identity strings.
package config

import (
	"flag"

	"github.com/BurntSushi/toml"
)

// Driver names the search algorithm iterative deepening dispatches to,
// as written in the TOML file. There is no MT-only engine driver: the UCI
// adapter runs MTD-bi for "mt" (as for any unrecognized name), while its
// telemetry config row records the algorithm as MT.
type Driver string

const (
	DriverAlphaBeta Driver = "alphabeta"
	DriverMT        Driver = "mt"
	DriverMTDBi     Driver = "mtdbi"
	DriverMTDF      Driver = "mtdf"
	DriverMTDHeuristic Driver = "mtdh"
)

// TableVariant names which TranspositionTable implementation to build.
type TableVariant string

const (
	TableNone     TableVariant = "none"
	TableHash     TableVariant = "hash"
	TableHighDepth TableVariant = "highdepth"
)

// MTDHParam mirrors engine.MtdHParams in TOML-loadable form.
type MTDHParam struct {
	TrainingDepth uint32  `toml:"training_depth"`
	TargetDepth   uint32  `toml:"target_depth"`
	P             float64 `toml:"p"`
	WSideDown     float64 `toml:"w_side_down"`
	WSideUp       float64 `toml:"w_side_up"`
	C             float64 `toml:"c"`
}

// Telemetry configures the optional SQLite sink of §6.2.
type Telemetry struct {
	Enabled bool   `toml:"enabled"`
	DSN     string `toml:"dsn"`
}

// Logging configures conspire's two logging facilities: the op/go-logging
// level that gates the `engine`/`uci` package loggers' stderr output, and
// the optional file path for the async per-move debug sink
// (`engine.Logger`). An empty MoveLogFile leaves that sink disabled.
type Logging struct {
	Level       string `toml:"level"`
	MoveLogFile string `toml:"move_log_file"`
}

// Config is conspire's full configuration surface.
type Config struct {
	Search struct {
		Driver               Driver       `toml:"driver"`
		MaxDepth             uint32       `toml:"max_depth"`
		UseNullMoveStandPat  bool         `toml:"null_move_stand_pat"`
		UseStaticPenaltyStandPat bool     `toml:"static_penalty_stand_pat"`
	} `toml:"search"`

	TranspositionTable struct {
		Variant      TableVariant `toml:"variant"`
		SizeMB       int          `toml:"size_mb"`
		MinimalDepth uint32       `toml:"minimal_depth"`
	} `toml:"transposition_table"`

	Conspiracy struct {
		BucketSize uint32      `toml:"bucket_size"`
		NumBuckets uint32      `toml:"num_buckets"`
		MTDH       []MTDHParam `toml:"mtdh_params"`
	} `toml:"conspiracy"`

	Telemetry Telemetry `toml:"telemetry"`

	Logging Logging `toml:"logging"`

	UCI struct {
		Name   string `toml:"name"`
		Author string `toml:"author"`
	} `toml:"uci"`
}

// Default returns the configuration conspire runs with absent a config
// file: MTD-bi driver, a 64MB depth-preferring hash table, both
// quiescence stand-pats enabled, conspiracy counters and telemetry off.
func Default() Config {
	var c Config
	c.Search.Driver = DriverMTDBi
	c.Search.MaxDepth = 6
	c.Search.UseNullMoveStandPat = true
	c.Search.UseStaticPenaltyStandPat = true
	c.TranspositionTable.Variant = TableHash
	c.TranspositionTable.SizeMB = 64
	c.Logging.Level = "INFO"
	c.UCI.Name = "conspire"
	c.UCI.Author = "conspire contributors"
	return c
}

// Load reads and parses the TOML file at path, starting from Default and
// overwriting whatever the file specifies.
func Load(path string) (Config, error) {
	c := Default()
	_, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, err
	}
	return c, nil
}

// ParseFlags reads the `-config` flag (the only CLI surface conspire
// exposes — full argument parsing is out of scope) and loads that file,
// falling back to Default when the flag is empty.
func ParseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("conspire", flag.ContinueOnError)
	path := fs.String("config", "", "path to a TOML configuration file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *path == "" {
		return Default(), nil
	}
	return Load(*path)
}
