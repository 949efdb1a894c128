package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paperdeck/internal/config"
)

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect paperdeck configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path()
		if humanOutput {
			fmt.Println(path)
		} else {
			outputJSON(StatusResponse{Status: "ok", Path: path})
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets redacted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}
		cfg.ApplyEnv()

		view := configView{
			ConfigFile:       config.Path(),
			Username:         cfg.OpenReview.Username,
			PasswordSet:      cfg.OpenReview.Password != "",
			LLMAPIKeySet:     cfg.LLM.APIKey != "",
			LLMBaseURL:       cfg.LLMBaseURL(),
			LLMModel:         cfg.LLMModel(),
			URLBase:          cfg.CitationOptions().URLBase,
			ProseVenuePrefix: cfg.CitationOptions().ProseVenuePrefix,
			YearOffset:       cfg.Style.YearOffset,
			VenueEntries:     len(cfg.VenueTable()),
		}

		if humanOutput {
			fmt.Printf("config file:        %s\n", view.ConfigFile)
			fmt.Printf("openreview user:    %s\n", orUnset(view.Username))
			fmt.Printf("openreview pass:    %s\n", setOrUnset(view.PasswordSet))
			fmt.Printf("llm api key:        %s\n", setOrUnset(view.LLMAPIKeySet))
			fmt.Printf("llm base url:       %s\n", view.LLMBaseURL)
			fmt.Printf("llm model:          %s\n", view.LLMModel)
			fmt.Printf("url base:           %s\n", view.URLBase)
			fmt.Printf("prose venue prefix: %q\n", view.ProseVenuePrefix)
			fmt.Printf("year offset:        %d\n", view.YearOffset)
			fmt.Printf("venue table:        %d entries\n", view.VenueEntries)
		} else {
			outputJSON(view)
		}
		return nil
	},
}

type configView struct {
	ConfigFile       string `json:"config_file"`
	Username         string `json:"openreview_username,omitempty"`
	PasswordSet      bool   `json:"openreview_password_set"`
	LLMAPIKeySet     bool   `json:"llm_api_key_set"`
	LLMBaseURL       string `json:"llm_base_url"`
	LLMModel         string `json:"llm_model"`
	URLBase          string `json:"url_base"`
	ProseVenuePrefix string `json:"prose_venue_prefix"`
	YearOffset       int    `json:"year_offset"`
	VenueEntries     int    `json:"venue_entries"`
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func setOrUnset(set bool) string {
	if set {
		return "(set)"
	}
	return "(unset)"
}
