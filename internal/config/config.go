// Package config handles paperdeck's global configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"paperdeck/internal/citation"
	"paperdeck/internal/venue"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "paperdeck"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// DefaultLLMBaseURL targets the DeepSeek OpenAI-compatible API.
	DefaultLLMBaseURL = "https://api.deepseek.com"
	// DefaultLLMModel is the chat model used for summaries.
	DefaultLLMModel = "deepseek-chat"
)

// Config is the global configuration stored in
// ~/.config/paperdeck/config.yml. Every field is optional; the zero
// config works for public venues with default styling.
type Config struct {
	OpenReview OpenReviewConfig `yaml:"openreview,omitempty"`
	LLM        LLMConfig        `yaml:"llm,omitempty"`
	Style      StyleConfig      `yaml:"style,omitempty"`
	// Venues replaces the built-in venue expansion table when set.
	// Order matters: the first matching abbreviation wins.
	Venues []VenueEntry `yaml:"venues,omitempty"`
}

// OpenReviewConfig carries API credentials.
type OpenReviewConfig struct {
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// LLMConfig configures the summarization backend.
type LLMConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// StyleConfig pins the citation-style parameters that drifted across
// historical script versions.
type StyleConfig struct {
	URLBase          string `yaml:"url_base,omitempty"`
	ProseVenuePrefix string `yaml:"prose_venue_prefix,omitempty"`
	// YearOffset is added to years derived from creation timestamps.
	// Default 0; set 1 for venues whose review cycle runs the year
	// before publication.
	YearOffset int `yaml:"year_offset,omitempty"`
}

// VenueEntry is one abbreviation -> full display name pair.
type VenueEntry struct {
	Abbrev string `yaml:"abbrev"`
	Full   string `yaml:"full"`
}

// Path returns the config file location, respecting XDG_CONFIG_HOME.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the global config. A missing file yields an empty config,
// not an error.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config, creating the directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto the config. Variables
// win over file values so one-off runs can override credentials.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENREVIEW_USERNAME"); v != "" {
		c.OpenReview.Username = v
	}
	if v := os.Getenv("OPENREVIEW_PASSWORD"); v != "" {
		c.OpenReview.Password = v
	}
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("PAPERDECK_LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("PAPERDECK_LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
}

// LLMBaseURL returns the configured or default LLM endpoint.
func (c *Config) LLMBaseURL() string {
	if c.LLM.BaseURL != "" {
		return c.LLM.BaseURL
	}
	return DefaultLLMBaseURL
}

// LLMModel returns the configured or default chat model.
func (c *Config) LLMModel() string {
	if c.LLM.Model != "" {
		return c.LLM.Model
	}
	return DefaultLLMModel
}

// CitationOptions builds citation options from the style config,
// falling back to the canonical defaults per field.
func (c *Config) CitationOptions() citation.Options {
	opts := citation.DefaultOptions()
	if c.Style.URLBase != "" {
		opts.URLBase = c.Style.URLBase
	}
	if c.Style.ProseVenuePrefix != "" {
		opts.ProseVenuePrefix = c.Style.ProseVenuePrefix
	}
	return opts
}

// VenueTable builds the venue expansion table: the configured table if
// present, the built-in default otherwise.
func (c *Config) VenueTable() []venue.Entry {
	if len(c.Venues) == 0 {
		return venue.DefaultTable()
	}
	table := make([]venue.Entry, len(c.Venues))
	for i, v := range c.Venues {
		table[i] = venue.Entry{Abbrev: v.Abbrev, Full: v.Full}
	}
	return table
}
