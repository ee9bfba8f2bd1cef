package main

import (
	"os"

	"conspire/config"
	"conspire/engine"
	"conspire/uci"
)

func main() {
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		panic(err)
	}
	engine.ConfigureLogging(cfg.Logging.Level)
	uci.ConfigureLogging(cfg.Logging.Level)
	uci.NewAdapter(cfg, os.Stdout).Run(os.Stdin)
}
