package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// PreviewConfig bounds the file-grounded preview flow.
type PreviewConfig struct {
	// Deadline is the wall-clock budget for the whole flow, upload through
	// answer. Default: 10s.
	Deadline time.Duration

	// VectorStoreWait caps how long indexing may take before the flow
	// proceeds anyway. Default: 60s (the outer deadline usually wins).
	VectorStoreWait         time.Duration
	VectorStorePollInterval time.Duration // Default: 500ms.
	RunPollInterval         time.Duration // Default: 800ms.
}

func (c *PreviewConfig) defaults() {
	if c.Deadline <= 0 {
		c.Deadline = 10 * time.Second
	}
	if c.VectorStoreWait <= 0 {
		c.VectorStoreWait = 60 * time.Second
	}
	if c.VectorStorePollInterval <= 0 {
		c.VectorStorePollInterval = 500 * time.Millisecond
	}
	if c.RunPollInterval <= 0 {
		c.RunPollInterval = 800 * time.Millisecond
	}
}

// Previewer runs the synchronous file-grounded summarization flow: upload the
// document, index it into a vector store, run a file-search assistant over
// it, and read back the answer. The uploaded file is deleted afterwards no
// matter how the flow ends.
type Previewer struct {
	client *AssistantClient
	cfg    PreviewConfig
	logger zerolog.Logger
}

// NewPreviewer creates a Previewer.
func NewPreviewer(client *AssistantClient, cfg PreviewConfig, logger zerolog.Logger) *Previewer {
	cfg.defaults()
	return &Previewer{client: client, cfg: cfg, logger: logger}
}

// Summarize runs the preview flow over one document under the configured
// deadline and classifies the outcome.
func (p *Previewer) Summarize(ctx context.Context, filename string, r io.Reader) Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Deadline)
	defer cancel()

	var fileID string
	defer func() {
		if fileID != "" {
			p.cleanup(fileID)
		}
	}()

	summary, err := p.run(ctx, filename, r, &fileID)
	if err != nil {
		if isTimeout(ctx, err) {
			return Outcome{TimedOut: true, Err: err}
		}
		return Outcome{Err: err}
	}
	return Outcome{Summary: summary}
}

func (p *Previewer) run(ctx context.Context, filename string, r io.Reader, fileID *string) (string, error) {
	id, err := p.client.UploadFile(ctx, filename, r)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	*fileID = id
	p.logger.Debug().Str("file_id", id).Msg("file uploaded")

	vs, err := p.client.CreateVectorStore(ctx, id)
	if err != nil {
		return "", fmt.Errorf("create vector store: %w", err)
	}
	if err := p.waitVectorStore(ctx, vs); err != nil {
		return "", err
	}

	assistantID, err := p.client.CreateAssistant(ctx, vs.ID)
	if err != nil {
		return "", fmt.Errorf("create assistant: %w", err)
	}
	threadID, err := p.client.CreateThread(ctx)
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	if err := p.client.AddMessage(ctx, threadID, p.client.cfg.Prompt); err != nil {
		return "", fmt.Errorf("add message: %w", err)
	}

	run, err := p.client.CreateRun(ctx, threadID, assistantID)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	if err := p.waitRun(ctx, threadID, run.ID); err != nil {
		return "", err
	}

	summary, err := p.client.LatestMessageText(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("read answer: %w", err)
	}
	if summary == "" {
		return "", errors.New("AI did not return a summary")
	}
	return summary, nil
}

// waitVectorStore polls until indexing finishes. If the indexing window
// elapses while the outer deadline is still alive the flow proceeds with
// whatever got indexed; a failed file aborts.
func (p *Previewer) waitVectorStore(ctx context.Context, vs *VectorStore) error {
	waitCtx, cancel := context.WithTimeout(ctx, p.cfg.VectorStoreWait)
	defer cancel()

	err := pollUntil(waitCtx, p.cfg.VectorStorePollInterval, func(ctx context.Context) (bool, error) {
		cur, err := p.client.GetVectorStore(ctx, vs.ID)
		if err != nil {
			return false, fmt.Errorf("poll vector store: %w", err)
		}
		if cur.FileCounts.Failed > 0 {
			return false, fmt.Errorf("vector store indexing failed for %d file(s)", cur.FileCounts.Failed)
		}
		return cur.Status == "completed", nil
	})
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		p.logger.Warn().Str("vector_store_id", vs.ID).Msg("indexing window elapsed, proceeding")
		return nil
	}
	return err
}

// waitRun polls the run until it reaches a terminal status.
func (p *Previewer) waitRun(ctx context.Context, threadID, runID string) error {
	return pollUntil(ctx, p.cfg.RunPollInterval, func(ctx context.Context) (bool, error) {
		run, err := p.client.GetRun(ctx, threadID, runID)
		if err != nil {
			return false, fmt.Errorf("poll run: %w", err)
		}
		switch run.Status {
		case "completed":
			return true, nil
		case "failed", "cancelled", "expired":
			if run.LastError != nil && run.LastError.Message != "" {
				return false, fmt.Errorf("run %s: %s", run.Status, run.LastError.Message)
			}
			return false, fmt.Errorf("run %s", run.Status)
		default:
			return false, nil
		}
	})
}

// cleanup deletes the uploaded file on a fresh context, since the preview
// context is usually already expired by the time cleanup runs.
func (p *Previewer) cleanup(fileID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.client.DeleteFile(ctx, fileID); err != nil {
		p.logger.Warn().Err(err).Str("file_id", fileID).Msg("file cleanup failed")
		return
	}
	p.logger.Debug().Str("file_id", fileID).Msg("file deleted")
}

// isTimeout classifies an error as the deadline firing, either directly or
// surfaced as a timeout message from a lower layer.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timed out") || strings.Contains(msg, "timeout")
}
