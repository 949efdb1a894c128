// Package main provides the paperdeck CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose raises the log level of the pipeline progress log
var verbose bool

// log is the pipeline progress logger, writing to stderr so document
// output on stdout stays clean.
var log zerolog.Logger

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paperdeck",
	Short: "Harvest papers, build reference lists, summarize, and render decks",
	Long: `paperdeck downloads papers from OpenReview that match a keyword,
writes reference lists in several citation styles (GB/T 7714 numeric,
IEEE, RIS, BibTeX), summarizes the PDFs through an OpenAI-compatible
chat model, and renders the summaries into slide text.

Harvested papers are indexed in a SQLite database inside the output
directory, so reference lists can be regenerated in any style without
re-fetching.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()
	},
}

func init() {
	// .env is optional; missing files are fine.
	godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose progress logging")
	rootCmd.Version = Version
}
