// Package config loads the YAML application configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration. Durations are expressed in
// seconds in the file; the accessor methods convert them.
type Config struct {
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Upload  UploadConfig  `yaml:"upload"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Summary SummaryConfig `yaml:"summary"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
}

// OpenAIConfig covers both API paths: chat completions for the batch worker
// and the assistants API for file-grounded previews.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`

	SummaryPrompt         string `yaml:"summary_prompt"`
	AssistantInstructions string `yaml:"assistant_instructions"`
	AssistantPrompt       string `yaml:"assistant_prompt"`

	MaxTokens   int64   `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`

	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

// UploadConfig locates uploaded meeting documents.
type UploadConfig struct {
	Dir string `yaml:"dir"`
}

// FetchConfig bounds remote document retrieval.
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxBytes       int64  `yaml:"max_bytes"`
	MaxRedirects   int    `yaml:"max_redirects"`
	UserAgent      string `yaml:"user_agent"`
}

// SummaryConfig controls summary generation.
type SummaryConfig struct {
	// Enabled is the kill switch: when false no AI calls are made at all.
	Enabled bool `yaml:"enabled"`

	MinMinutesLength int `yaml:"min_minutes_length"`

	PreviewDeadlineSeconds int `yaml:"preview_deadline_seconds"`
	VectorStoreWaitSeconds int `yaml:"vector_store_wait_seconds"`
}

// DBConfig locates the meetings database.
type DBConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OpenAI: OpenAIConfig{
			Model:                 "gpt-4o-mini",
			SummaryPrompt:         "Summarize the following meeting minutes in exactly 3 bullet points in English. The content may be in Chinese or English; output only the 3 bullet points, no heading or extra text.",
			AssistantInstructions: "You summarize meeting minutes. Output exactly 3-5 bullet points in English only. The document may be in Chinese or English; always respond in English. Output only the bullet points, no heading or extra text.",
			AssistantPrompt:       "Summarize the meeting minutes document in 3-5 bullet points in English. The document may be in Chinese or English; output in English only. Output only the bullet points.",
			MaxTokens:             1500,
			Temperature:           0.3,
			RequestTimeoutSeconds: 90,
		},
		Upload: UploadConfig{Dir: "uploads"},
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
			MaxBytes:       512 * 1024,
			MaxRedirects:   5,
		},
		Summary: SummaryConfig{
			Enabled:                true,
			MinMinutesLength:       20,
			PreviewDeadlineSeconds: 10,
			VectorStoreWaitSeconds: 60,
		},
		DB:  DBConfig{Path: "meetings.db"},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults. The OPENAI_API_KEY environment variable fills in a missing
// api_key.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the program assumes.
func (c Config) Validate() error {
	if c.OpenAI.Model == "" {
		return fmt.Errorf("openai.model must be set")
	}
	if c.Summary.Enabled && c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key must be set (or OPENAI_API_KEY exported) when summaries are enabled")
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db.path must be set")
	}
	return nil
}

func (c OpenAIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c SummaryConfig) PreviewDeadline() time.Duration {
	return time.Duration(c.PreviewDeadlineSeconds) * time.Second
}

func (c SummaryConfig) VectorStoreWait() time.Duration {
	return time.Duration(c.VectorStoreWaitSeconds) * time.Second
}
