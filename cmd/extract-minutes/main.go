// Command extract-minutes runs document extraction without any AI calls and
// prints the normalized minutes markdown. Useful for checking what the
// summary worker would actually send.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/theimaginaryfoundation/minutes-mill/config"
	"github.com/theimaginaryfoundation/minutes-mill/minutes"
)

type Config struct {
	ConfigPath string
	FilePath   string
	URL        string
	Paste      string
}

func (c Config) Validate() error {
	set := 0
	for _, v := range []string{c.FilePath, c.URL, c.Paste} {
		if v != "" {
			set++
		}
	}
	if set == 0 {
		return errors.New("one of -file, -url or -paste is required")
	}
	if set > 1 {
		return errors.New("-file, -url and -paste are mutually exclusive")
	}
	return nil
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to the YAML config file (default: built-in defaults)")
	fs.StringVar(&cfg.FilePath, "file", "", "Document file to extract, relative to the upload dir")
	fs.StringVar(&cfg.URL, "url", "", "Document URL to fetch and extract")
	fs.StringVar(&cfg.Paste, "paste", "", "Pasted content to normalize ('-' reads stdin)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.FilePath != "" {
		cfg.FilePath = filepath.Clean(cfg.FilePath)
	}
	return cfg, nil
}

func (c Config) source() (minutes.Source, error) {
	switch {
	case c.FilePath != "":
		return minutes.Source{Kind: minutes.SourceFile, FilePath: c.FilePath}, nil
	case c.URL != "":
		return minutes.Source{Kind: minutes.SourceURL, URL: c.URL}, nil
	default:
		paste := c.Paste
		if paste == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return minutes.Source{}, fmt.Errorf("read stdin: %w", err)
			}
			paste = string(data)
		}
		return minutes.Source{Kind: minutes.SourcePaste, PastedText: paste}, nil
	}
}

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	appCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	logger := config.NewLogger(os.Stderr, appCfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := cfg.source()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fetcher := minutes.NewFetcher(minutes.FetchConfig{
		Timeout:      appCfg.Fetch.Timeout(),
		MaxBytes:     appCfg.Fetch.MaxBytes,
		MaxRedirects: appCfg.Fetch.MaxRedirects,
		UserAgent:    appCfg.Fetch.UserAgent,
	}, logger)
	resolver := minutes.NewResolver(appCfg.Upload.Dir, fetcher, logger)

	res := resolver.Resolve(ctx, src)
	if !res.OK {
		fmt.Fprintln(os.Stderr, res.Reason)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, res.Text)
}
