package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	openai "github.com/sashabaranov/go-openai"

	"paperdeck/internal/config"
	"paperdeck/internal/store"
	"paperdeck/internal/summarize"
)

var (
	summarizeDir   string
	summarizeOut   string
	summarizeModel string
	summarizeForce bool
)

func init() {
	summarizeCmd.Flags().StringVar(&summarizeDir, "dir", "papers", "Directory containing harvested PDFs")
	summarizeCmd.Flags().StringVar(&summarizeOut, "out", "", "Directory for summary JSON files (default <dir>/summaries)")
	summarizeCmd.Flags().StringVar(&summarizeModel, "model", "", "Chat model name (overrides config)")
	summarizeCmd.Flags().BoolVar(&summarizeForce, "force", false, "Re-summarize papers that already have a summary file")
	rootCmd.AddCommand(summarizeCmd)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize harvested PDFs through a chat model",
	Long: `Extract text from every PDF under the papers directory and ask an
OpenAI-compatible chat model for a structured summary (phenomenon,
problems, mechanisms, results). One JSON file is written per paper;
papers that already have one are skipped unless --force is given.`,
	RunE: runSummarize,
}

// summaryDoc is the on-disk shape of one summary file. The title rides
// along so deck rendering can match slides to reference lines without
// reparsing filenames.
type summaryDoc struct {
	Title   string            `json:"title"`
	PDF     string            `json:"pdf"`
	Summary summarize.Summary `json:"summary"`
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg.ApplyEnv()
	if cfg.LLM.APIKey == "" {
		exitWithError(ExitConfigError, "no LLM API key: set llm.api_key in config or DEEPSEEK_API_KEY")
	}

	model := summarizeModel
	if model == "" {
		model = cfg.LLMModel()
	}

	outDir := summarizeOut
	if outDir == "" {
		outDir = filepath.Join(summarizeDir, "summaries")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		exitWithError(ExitError, "creating summaries directory: %v", err)
	}

	clientCfg := openai.DefaultConfig(cfg.LLM.APIKey)
	clientCfg.BaseURL = cfg.LLMBaseURL()
	summarizer := summarize.NewSummarizer(openai.NewClientWithConfig(clientCfg), model, log)

	titles := titlesByPDFPath(filepath.Join(summarizeDir, store.DBFile))

	pdfs, err := findPDFs(summarizeDir)
	if err != nil {
		exitWithError(ExitError, "scanning %s: %v", summarizeDir, err)
	}
	if len(pdfs) == 0 {
		exitWithError(ExitDataError, "no PDFs found under %s", summarizeDir)
	}

	ctx := context.Background()
	written := 0

	for _, pdfPath := range pdfs {
		stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
		target := filepath.Join(outDir, stem+".json")
		if !summarizeForce && fileExists(target) {
			log.Debug().Str("pdf", pdfPath).Msg("summary exists, skipping")
			continue
		}

		text, err := summarize.ExtractText(pdfPath)
		if err != nil {
			log.Error().Err(err).Str("pdf", pdfPath).Msg("cannot read pdf")
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Warn().Str("pdf", pdfPath).Msg("no extractable text, skipping")
			continue
		}

		log.Info().Str("pdf", pdfPath).Msg("summarizing")
		sum, err := summarizer.Summarize(ctx, text)
		if err != nil {
			log.Error().Err(err).Str("pdf", pdfPath).Msg("summarization failed")
			continue
		}

		doc := summaryDoc{
			Title:   titleFor(titles, pdfPath, stem),
			PDF:     pdfPath,
			Summary: sum,
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			exitWithError(ExitError, "encoding summary: %v", err)
		}
		if err := os.WriteFile(target, append(data, '\n'), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", target, err)
		}
		written++
	}

	if humanOutput {
		fmt.Printf("Wrote %d summaries to %s\n", written, outDir)
	} else {
		outputJSON(StatusResponse{Status: "ok", Path: outDir, Count: written})
	}
	return nil
}

// findPDFs returns every .pdf under root, in lexical walk order.
func findPDFs(root string) ([]string, error) {
	var pdfs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			pdfs = append(pdfs, path)
		}
		return nil
	})
	return pdfs, err
}

// titlesByPDFPath maps harvested PDF paths to their real titles. A
// missing or unreadable database just means titles fall back to the
// filename stem.
func titlesByPDFPath(dbPath string) map[string]string {
	if !fileExists(dbPath) {
		return nil
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Warn().Err(err).Msg("cannot open paper index, titles fall back to filenames")
		return nil
	}
	defer st.Close()

	recs, err := st.ListAll()
	if err != nil {
		return nil
	}
	titles := make(map[string]string, len(recs))
	for _, rec := range recs {
		if rec.PDFPath != "" {
			titles[rec.PDFPath] = rec.Title
		}
	}
	return titles
}

var stemNumberRe = regexp.MustCompile(`^\d+_`)

func titleFor(titles map[string]string, pdfPath, stem string) string {
	if title, ok := titles[pdfPath]; ok {
		return title
	}
	return stemNumberRe.ReplaceAllString(stem, "")
}
