package main

import (
	"flag"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("generate-summaries", flag.ContinueOnError)
	cfg, err := parseFlags(fs, nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Limit != 10 {
		t.Fatalf("Limit=%d, want 10", cfg.Limit)
	}
	if cfg.Force {
		t.Fatal("Force=true by default")
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("generate-summaries", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"-config", "etc/app.yaml",
		"-db", "data/meetings.db",
		"-limit", "50",
		"-force-ai-refresh",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.ConfigPath != "etc/app.yaml" {
		t.Fatalf("ConfigPath=%q", cfg.ConfigPath)
	}
	if cfg.DBPath != "data/meetings.db" {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.Limit != 50 {
		t.Fatalf("Limit=%d", cfg.Limit)
	}
	if !cfg.Force {
		t.Fatal("Force=false")
	}
}

func TestParseLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"10", 10, false},
		{"1", 1, false},
		{"all", 0, false},
		{"ALL", 0, false},
		{" all ", 0, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"many", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := parseLimit(tc.arg)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseLimit(%q): want error", tc.arg)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseLimit(%q): %v", tc.arg, err)
		}
		if got != tc.want {
			t.Fatalf("parseLimit(%q)=%d, want %d", tc.arg, got, tc.want)
		}
	}
}
