// Package worker drives batch summary generation over stored meetings.
package worker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/theimaginaryfoundation/minutes-mill/minutes"
	"github.com/theimaginaryfoundation/minutes-mill/store"
)

// Resolver turns a meeting's document source into minutes markdown.
type Resolver interface {
	Resolve(ctx context.Context, src minutes.Source) minutes.ExtractionResult
}

// Summarizer produces a summary from minutes markdown.
type Summarizer interface {
	Summarize(ctx context.Context, minutesMD string) (string, error)
}

// MeetingStore is the store surface the worker needs.
type MeetingStore interface {
	SelectCandidates(ctx context.Context, limit int, force bool) ([]store.Meeting, error)
	UpdateSummary(ctx context.Context, id int64, minutesMD, summary string) error
}

// Worker processes meetings one at a time. A failed record is logged and
// skipped; it never aborts the batch.
type Worker struct {
	Store      MeetingStore
	Resolver   Resolver
	Summarizer Summarizer
	Logger     zerolog.Logger

	// MinLength is the minimum extracted-minutes length worth summarizing.
	// Zero means minutes.MinMinutesLength.
	MinLength int
}

// Result counts one batch.
type Result struct {
	Attempted int
	Updated   int
}

// Run selects candidate meetings and processes each. Context cancellation
// stops the batch between records.
func (w *Worker) Run(ctx context.Context, limit int, force bool) (Result, error) {
	meetings, err := w.Store.SelectCandidates(ctx, limit, force)
	if err != nil {
		return Result{}, err
	}
	w.Logger.Info().Int("candidates", len(meetings)).Bool("force", force).Msg("batch started")

	var res Result
	for _, m := range meetings {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Attempted++
		if w.Process(ctx, m, force) {
			res.Updated++
		}
	}
	w.Logger.Info().Int("updated", res.Updated).Int("attempted", res.Attempted).Msg("batch finished")
	return res, nil
}

// Process handles one meeting and reports whether it was updated.
func (w *Worker) Process(ctx context.Context, m store.Meeting, force bool) bool {
	log := w.Logger.With().Int64("meeting_id", m.ID).Str("title", m.Title).Logger()

	if m.AISummary.Valid && m.AISummary.String != "" && !force {
		log.Debug().Msg("summary already present, skipping")
		return false
	}

	res := w.Resolver.Resolve(ctx, recordSource(m))
	if !res.OK {
		log.Warn().Str("reason", res.Reason).Msg("could not extract minutes")
		return false
	}

	minLen := w.MinLength
	if minLen <= 0 {
		minLen = minutes.MinMinutesLength
	}
	if len(res.Text) < minLen {
		log.Warn().Int("length", len(res.Text)).Msg("extracted minutes too short, skipping")
		return false
	}

	summary, err := w.Summarizer.Summarize(ctx, res.Text)
	if err != nil {
		log.Warn().Err(err).Msg("summary generation failed")
		return false
	}

	if err := w.Store.UpdateSummary(ctx, m.ID, res.Text, summary); err != nil {
		log.Error().Err(err).Msg("could not store summary")
		return false
	}
	log.Info().Msg("ai_summary and minutes_md updated")
	return true
}

// recordSource maps a meeting row's document columns to a Source.
func recordSource(m store.Meeting) minutes.Source {
	switch m.DocumentType {
	case "file":
		return minutes.Source{Kind: minutes.SourceFile, FilePath: m.FilePath.String}
	case "url":
		return minutes.Source{Kind: minutes.SourceURL, URL: m.DocumentURL.String}
	case "paste":
		return minutes.Source{Kind: minutes.SourcePaste, PastedText: m.PastedText.String}
	default:
		return minutes.Source{Kind: minutes.SourceNone}
	}
}
