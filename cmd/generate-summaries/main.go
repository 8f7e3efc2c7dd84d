// Command generate-summaries fills in missing AI summaries for stored
// meetings. It extracts each meeting's minutes from its document source
// (uploaded file, web link, or pasted text) and sends them through chat
// completions, storing both the minutes markdown and the summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/theimaginaryfoundation/minutes-mill/config"
	"github.com/theimaginaryfoundation/minutes-mill/minutes"
	"github.com/theimaginaryfoundation/minutes-mill/store"
	"github.com/theimaginaryfoundation/minutes-mill/summarize"
	"github.com/theimaginaryfoundation/minutes-mill/worker"
)

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
	if cfg.DBPath != "" {
		appCfg.DB.Path = cfg.DBPath
	}
	logger := config.NewLogger(os.Stderr, appCfg.Log.Level)

	if !appCfg.Summary.Enabled {
		logger.Info().Msg("AI summaries are disabled in config, nothing to do")
		return
	}
	if err := appCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(appCfg.DB.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer st.Close()

	fetcher := minutes.NewFetcher(minutes.FetchConfig{
		Timeout:      appCfg.Fetch.Timeout(),
		MaxBytes:     appCfg.Fetch.MaxBytes,
		MaxRedirects: appCfg.Fetch.MaxRedirects,
		UserAgent:    appCfg.Fetch.UserAgent,
	}, logger)

	w := &worker.Worker{
		Store:    st,
		Resolver: minutes.NewResolver(appCfg.Upload.Dir, fetcher, logger),
		Summarizer: summarize.NewSummarizer(summarize.CompletionConfig{
			APIKey:      appCfg.OpenAI.APIKey,
			BaseURL:     appCfg.OpenAI.BaseURL,
			Model:       appCfg.OpenAI.Model,
			Prompt:      appCfg.OpenAI.SummaryPrompt,
			MaxTokens:   appCfg.OpenAI.MaxTokens,
			Temperature: appCfg.OpenAI.Temperature,
		}),
		Logger:    logger,
		MinLength: appCfg.Summary.MinMinutesLength,
	}

	res, err := w.Run(ctx, cfg.Limit, cfg.Force)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "updated=%d attempted=%d\n", res.Updated, res.Attempted)
}
