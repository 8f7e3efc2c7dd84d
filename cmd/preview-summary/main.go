// Command preview-summary runs the synchronous file-grounded summarization
// flow over one document: upload, index into a vector store, run a
// file-search assistant, print the answer. A timeout is reported as its own
// outcome since the caller may simply retry.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/theimaginaryfoundation/minutes-mill/config"
	"github.com/theimaginaryfoundation/minutes-mill/summarize"
)

type Config struct {
	ConfigPath string
	FilePath   string
	Deadline   time.Duration
}

func (c Config) Validate() error {
	if c.FilePath == "" {
		return errors.New("missing -file")
	}
	if c.Deadline <= 0 {
		return errors.New("deadline must be positive")
	}
	return nil
}

func defaultConfig() Config {
	return Config{Deadline: 30 * time.Second}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to the YAML config file (default: built-in defaults)")
	fs.StringVar(&cfg.FilePath, "file", "", "Document to summarize")
	fs.DurationVar(&cfg.Deadline, "deadline", cfg.Deadline, "Wall-clock budget for the whole flow")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.FilePath != "" {
		cfg.FilePath = filepath.Clean(cfg.FilePath)
	}
	return cfg, nil
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
	if err := appCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	logger := config.NewLogger(os.Stderr, appCfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(cfg.FilePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer f.Close()

	client := summarize.NewAssistantClient(summarize.AssistantConfig{
		APIKey:         appCfg.OpenAI.APIKey,
		BaseURL:        appCfg.OpenAI.BaseURL,
		Model:          appCfg.OpenAI.Model,
		Instructions:   appCfg.OpenAI.AssistantInstructions,
		Prompt:         appCfg.OpenAI.AssistantPrompt,
		RequestTimeout: appCfg.OpenAI.RequestTimeout(),
	})
	previewer := summarize.NewPreviewer(client, summarize.PreviewConfig{
		Deadline:        cfg.Deadline,
		VectorStoreWait: appCfg.Summary.VectorStoreWait(),
	}, logger)

	out := previewer.Summarize(ctx, filepath.Base(cfg.FilePath), f)
	if out.TimedOut {
		fmt.Fprintln(os.Stderr, "timed out waiting for the summary")
		os.Exit(1)
	}
	if out.Err != nil {
		fmt.Fprintln(os.Stderr, out.Err.Error())
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, out.Summary)
}
