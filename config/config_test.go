package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("Model=%q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.MaxTokens != 1500 || cfg.OpenAI.Temperature != 0.3 {
		t.Fatalf("MaxTokens=%d Temperature=%v", cfg.OpenAI.MaxTokens, cfg.OpenAI.Temperature)
	}
	if !strings.Contains(cfg.OpenAI.SummaryPrompt, "3 bullet points") {
		t.Fatalf("SummaryPrompt=%q", cfg.OpenAI.SummaryPrompt)
	}
	if !cfg.Summary.Enabled {
		t.Fatal("Summary.Enabled=false")
	}
	if cfg.Summary.PreviewDeadline() != 10*time.Second {
		t.Fatalf("PreviewDeadline=%v", cfg.Summary.PreviewDeadline())
	}
	if cfg.Fetch.Timeout() != 30*time.Second {
		t.Fatalf("Fetch.Timeout=%v", cfg.Fetch.Timeout())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
openai:
  api_key: file-key
  model: gpt-4.1
summary:
  enabled: false
  preview_deadline_seconds: 25
db:
  path: /var/lib/meetings.db
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAI.APIKey != "file-key" || cfg.OpenAI.Model != "gpt-4.1" {
		t.Fatalf("OpenAI=%+v", cfg.OpenAI)
	}
	if cfg.Summary.Enabled {
		t.Fatal("Summary.Enabled=true, want override to false")
	}
	if cfg.Summary.PreviewDeadline() != 25*time.Second {
		t.Fatalf("PreviewDeadline=%v", cfg.Summary.PreviewDeadline())
	}
	if cfg.DB.Path != "/var/lib/meetings.db" {
		t.Fatalf("DB.Path=%q", cfg.DB.Path)
	}
	// Untouched keys keep their defaults.
	if cfg.OpenAI.MaxTokens != 1500 {
		t.Fatalf("MaxTokens=%d", cfg.OpenAI.MaxTokens)
	}
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAI.APIKey != "env-key" {
		t.Fatalf("APIKey=%q", cfg.OpenAI.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("want error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.OpenAI.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	noKey := Default()
	if err := noKey.Validate(); err == nil {
		t.Fatal("want error when summaries enabled without api key")
	}

	disabled := Default()
	disabled.Summary.Enabled = false
	if err := disabled.Validate(); err != nil {
		t.Fatalf("Validate with summaries disabled: %v", err)
	}

	noModel := Default()
	noModel.OpenAI.APIKey = "k"
	noModel.OpenAI.Model = ""
	if err := noModel.Validate(); err == nil {
		t.Fatal("want error for empty model")
	}
}
