package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileIsEmptyConfig(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.OpenReview.Username != "" || len(cfg.Venues) != 0 {
		t.Errorf("LoadFrom() = %+v, want zero config", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yml")

	cfg := &Config{}
	cfg.OpenReview.Username = "me@example.com"
	cfg.Style.YearOffset = 1
	cfg.Venues = []VenueEntry{{Abbrev: "ICLR", Full: "International Conference on Learning Representations (ICLR)"}}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if got.OpenReview.Username != "me@example.com" {
		t.Errorf("Username = %q", got.OpenReview.Username)
	}
	if got.Style.YearOffset != 1 {
		t.Errorf("YearOffset = %d, want 1", got.Style.YearOffset)
	}
	if len(got.Venues) != 1 || got.Venues[0].Abbrev != "ICLR" {
		t.Errorf("Venues = %+v", got.Venues)
	}
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("OPENREVIEW_USERNAME", "env@example.com")
	t.Setenv("DEEPSEEK_API_KEY", "sk-env")

	cfg := &Config{}
	cfg.OpenReview.Username = "file@example.com"
	cfg.ApplyEnv()

	if cfg.OpenReview.Username != "env@example.com" {
		t.Errorf("Username = %q, want env override", cfg.OpenReview.Username)
	}
	if cfg.LLM.APIKey != "sk-env" {
		t.Errorf("APIKey = %q", cfg.LLM.APIKey)
	}
}

func TestApplyEnv_EmptyVarsIgnored(t *testing.T) {
	os.Unsetenv("OPENREVIEW_USERNAME")

	cfg := &Config{}
	cfg.OpenReview.Username = "keep@example.com"
	cfg.ApplyEnv()

	if cfg.OpenReview.Username != "keep@example.com" {
		t.Errorf("Username = %q, want file value kept", cfg.OpenReview.Username)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.LLMBaseURL() != DefaultLLMBaseURL {
		t.Errorf("LLMBaseURL() = %q", cfg.LLMBaseURL())
	}
	if cfg.LLMModel() != DefaultLLMModel {
		t.Errorf("LLMModel() = %q", cfg.LLMModel())
	}

	opts := cfg.CitationOptions()
	if opts.URLBase != "https://openreview.net/forum" {
		t.Errorf("URLBase = %q", opts.URLBase)
	}
	if opts.ProseVenuePrefix != "in Proceedings of the " {
		t.Errorf("ProseVenuePrefix = %q", opts.ProseVenuePrefix)
	}

	if len(cfg.VenueTable()) == 0 {
		t.Error("VenueTable() should fall back to the built-in table")
	}
}

func TestVenueTable_ConfiguredOrderPreserved(t *testing.T) {
	cfg := &Config{Venues: []VenueEntry{
		{Abbrev: "B", Full: "Second (B)"},
		{Abbrev: "A", Full: "First (A)"},
	}}

	table := cfg.VenueTable()
	if len(table) != 2 || table[0].Abbrev != "B" || table[1].Abbrev != "A" {
		t.Errorf("VenueTable() = %+v, want declaration order preserved", table)
	}
}
