package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"paperdeck/internal/citation"
	"paperdeck/internal/deck"
)

var (
	deckDir        string
	deckSummaries  string
	deckReferences string
	deckTemplate   string
	deckOut        string
	deckStyle      string
)

func init() {
	deckCmd.Flags().StringVar(&deckDir, "dir", "papers", "Papers directory from a previous harvest")
	deckCmd.Flags().StringVar(&deckSummaries, "summaries", "", "Summaries directory (default <dir>/summaries)")
	deckCmd.Flags().StringVar(&deckReferences, "references", "", "Reference list file (default <dir>/references_<style>.txt)")
	deckCmd.Flags().StringVar(&deckTemplate, "template", "", "Slide template file; built-in template when omitted")
	deckCmd.Flags().StringVar(&deckOut, "out", "", "Output file (default <dir>/deck.md, \"-\" for stdout)")
	deckCmd.Flags().StringVar(&deckStyle, "style", string(citation.StyleGB7714), "Style of the reference list to cite from")
	rootCmd.AddCommand(deckCmd)
}

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Render summaries into slide text",
	Long: `Turn the summary JSON files from a previous summarize run into one
slide of text per paper. Each slide cites the paper's reference line,
matched against the harvested reference list by fuzzy title lookup.`,
	RunE: runDeck,
}

func runDeck(cmd *cobra.Command, args []string) error {
	style, err := citation.ParseStyle(deckStyle)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	summariesDir := deckSummaries
	if summariesDir == "" {
		summariesDir = filepath.Join(deckDir, "summaries")
	}
	refPath := deckReferences
	if refPath == "" {
		refPath = filepath.Join(deckDir, fmt.Sprintf("references_%s.txt", style))
	}

	docs, err := loadSummaries(summariesDir)
	if err != nil {
		exitWithError(ExitError, "loading summaries: %v", err)
	}
	if len(docs) == 0 {
		exitWithError(ExitDataError, "no summaries found under %s", summariesDir)
	}

	var corpus []string
	if data, err := os.ReadFile(refPath); err == nil {
		for _, entry := range strings.Split(string(data), style.Separator()) {
			if entry = strings.TrimSpace(entry); entry != "" {
				corpus = append(corpus, entry)
			}
		}
	} else {
		log.Warn().Str("path", refPath).Msg("no reference list, slides will cite nothing")
	}

	template := deck.DefaultTemplate
	if deckTemplate != "" {
		data, err := os.ReadFile(deckTemplate)
		if err != nil {
			exitWithError(ExitError, "reading template: %v", err)
		}
		template = string(data)
	}

	slides := make([]deck.Slide, len(docs))
	for i, doc := range docs {
		ref, found := citation.FindReference(doc.Title, corpus)
		if !found {
			log.Debug().Str("title", doc.Title).Msg("no reference line matched")
		}
		slides[i] = deck.Slide{
			Title:     doc.Title,
			Num:       i + 1,
			Summary:   doc.Summary,
			Reference: ref,
		}
	}

	rendered := deck.RenderDeck(template, slides) + "\n"

	outPath := deckOut
	if outPath == "" {
		outPath = filepath.Join(deckDir, "deck.md")
	}
	if outPath == "-" {
		fmt.Print(rendered)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(rendered), 0644); err != nil {
		exitWithError(ExitError, "writing deck: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rendered %d slides to %s\n", len(slides), outPath)
	} else {
		outputJSON(StatusResponse{Status: "ok", Path: outPath, Count: len(slides)})
	}
	return nil
}

// loadSummaries reads every summary JSON in a directory, in lexical
// filename order so deck order is stable across runs.
func loadSummaries(dir string) ([]summaryDoc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []summaryDoc
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var doc summaryDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
