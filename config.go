package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// Config holds the settings for one run of the detonator
type Config struct {
	Addr      string // listen address of the HTTP server
	BombsPath string // optional .json/.geojson/.hcl file preloaded into the session
	SolveOnly bool   // print the result for BombsPath and exit
}

// NewConfig validates a configuration
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Addr == "" && !cfg.SolveOnly {
		return nil, errMissingListenAddr
	}
	if cfg.SolveOnly && cfg.BombsPath == "" {
		return nil, errors.New("-solve requires a bombs file")
	}
	return &cfg, nil
}

// ParseFlags processes command-line arguments. It returns shouldExit=true
// when only help was requested.
func ParseFlags(args []string, output io.Writer) (cfg *Config, shouldExit bool, err error) {
	flagSet := flag.NewFlagSet("chain-detonator", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Chain Detonator - finds the single bomb whose chain reaction detonates the most bombs.

Usage:
  chain-detonator [options] [BOMBS_FILE]

Arguments:
  BOMBS_FILE
    Optional .json, .geojson or .hcl file with bomb definitions.

Options:
`)
		flagSet.PrintDefaults()
	}

	addrFlag := flagSet.String("addr", ":8080", "Listen address of the HTTP server.")
	bombsFlag := flagSet.String("bombs", "", "Bomb file to preload into the session.")
	solveFlag := flagSet.Bool("solve", false, "Print the maximum detonation for the bomb file and exit.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, err
	}

	path := *bombsFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	cfg, err = NewConfig(Config{
		Addr:      *addrFlag,
		BombsPath: path,
		SolveOnly: *solveFlag,
	})
	return cfg, false, err
}
