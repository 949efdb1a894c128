package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"paperdeck/internal/citation"
	"paperdeck/internal/config"
	"paperdeck/internal/store"
)

var (
	referencesDir   string
	referencesStyle string
	referencesOut   string
)

func init() {
	referencesCmd.Flags().StringVar(&referencesDir, "dir", "papers", "Papers directory from a previous harvest")
	referencesCmd.Flags().StringVar(&referencesStyle, "style", string(citation.StyleGB7714), "Reference style: gb7714, ieee, ris, bibtex")
	referencesCmd.Flags().StringVar(&referencesOut, "out", "", "Output file (default <dir>/references_<style>.txt, \"-\" for stdout)")
	rootCmd.AddCommand(referencesCmd)
}

var referencesCmd = &cobra.Command{
	Use:   "references",
	Short: "Regenerate a reference list from the paper index",
	Long: `Rebuild a reference list in any citation style from the SQLite paper
index written by harvest, without contacting OpenReview again.
Sequence numbers follow the order papers were first harvested in.`,
	RunE: runReferences,
}

func runReferences(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg.ApplyEnv()

	style, err := citation.ParseStyle(referencesStyle)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	dbPath := filepath.Join(referencesDir, store.DBFile)
	if !fileExists(dbPath) {
		exitWithError(ExitDataError, "no paper index at %s; run harvest first", dbPath)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		exitWithError(ExitError, "opening store: %v", err)
	}
	defer st.Close()

	recs, err := st.ListAll()
	if err != nil {
		exitWithError(ExitError, "reading paper index: %v", err)
	}
	if len(recs) == 0 {
		exitWithError(ExitDataError, "paper index at %s is empty", dbPath)
	}

	opts := cfg.CitationOptions()
	references := make([]string, len(recs))
	for i, rec := range recs {
		formatted, err := citation.Format(style, rec, rec.Pages, i+1, opts)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		references[i] = formatted
	}

	content := strings.Join(references, style.Separator()) + "\n"

	outPath := referencesOut
	if outPath == "" {
		outPath = filepath.Join(referencesDir, fmt.Sprintf("references_%s.txt", style))
	}
	if outPath == "-" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		exitWithError(ExitError, "writing reference list: %v", err)
	}

	if humanOutput {
		fmt.Printf("Saved %d references to %s\n", len(references), outPath)
	} else {
		outputJSON(StatusResponse{Status: "ok", Path: outPath, Count: len(references)})
	}
	return nil
}
