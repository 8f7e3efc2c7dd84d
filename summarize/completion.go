package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompletionConfig configures the chat-completion summarizer used by the
// batch flow.
type CompletionConfig struct {
	APIKey  string
	BaseURL string // Default: the SDK's standard endpoint.
	Model   string
	Prompt  string

	MaxTokens   int64   // Default: 1500.
	Temperature float64 // Default: 0.3.
}

func (c *CompletionConfig) defaults() {
	if c.MaxTokens <= 0 {
		c.MaxTokens = 1500
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.3
	}
}

// Summarizer sends extracted minutes markdown through chat completions. One
// request per document, no retries: a failed record is logged and skipped by
// the caller.
type Summarizer struct {
	client *openai.Client
	cfg    CompletionConfig
}

// NewSummarizer creates a Summarizer.
func NewSummarizer(cfg CompletionConfig) *Summarizer {
	cfg.defaults()
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, option.WithBaseURL(base))
	}
	client := openai.NewClient(opts...)
	return &Summarizer{client: &client, cfg: cfg}
}

// Summarize produces a summary of the given minutes markdown.
func (s *Summarizer) Summarize(ctx context.Context, minutesMD string) (string, error) {
	content := s.cfg.Prompt + "\n\n---\n\n" + minutesMD
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(content),
		},
		MaxTokens:   openai.Int(s.cfg.MaxTokens),
		Temperature: openai.Float(s.cfg.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", errors.New("chat completion returned an empty summary")
	}
	return summary, nil
}
