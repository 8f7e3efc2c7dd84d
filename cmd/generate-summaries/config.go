package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	ConfigPath string
	DBPath     string
	LimitArg   string
	Limit      int
	Force      bool
}

func (c Config) Validate() error {
	if c.Limit < 0 {
		return errors.New("limit must be a positive number or \"all\"")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		LimitArg: "10",
		Limit:    10,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to the YAML config file (default: built-in defaults)")
	fs.StringVar(&cfg.DBPath, "db", "", "Path to the meetings database (overrides config)")
	fs.StringVar(&cfg.LimitArg, "limit", cfg.LimitArg, "Max meetings to process this run, or \"all\"")
	fs.BoolVar(&cfg.Force, "force-ai-refresh", false, "Regenerate summaries even for meetings that already have one")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	limit, err := parseLimit(cfg.LimitArg)
	if err != nil {
		return Config{}, err
	}
	cfg.Limit = limit

	if cfg.ConfigPath != "" {
		cfg.ConfigPath = filepath.Clean(cfg.ConfigPath)
	}
	if cfg.DBPath != "" {
		cfg.DBPath = filepath.Clean(cfg.DBPath)
	}
	return cfg, nil
}

// parseLimit accepts a positive count or "all" (no limit).
func parseLimit(arg string) (int, error) {
	if strings.EqualFold(strings.TrimSpace(arg), "all") {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid -limit %q (want a positive number or \"all\")", arg)
	}
	return n, nil
}
