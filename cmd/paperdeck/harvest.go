package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"paperdeck/internal/citation"
	"paperdeck/internal/config"
	"paperdeck/internal/openreview"
	"paperdeck/internal/pages"
	"paperdeck/internal/reference"
	"paperdeck/internal/store"
	"paperdeck/internal/venue"
)

var (
	harvestQuery      string
	harvestVenues     []string
	harvestConference string
	harvestYear       int
	harvestOut        string
	harvestStyle      string
	harvestMax        int
)

func init() {
	harvestCmd.Flags().StringVar(&harvestQuery, "query", "", "Keyword (regex, case-insensitive) to match against title and abstract")
	harvestCmd.Flags().StringSliceVar(&harvestVenues, "venues", nil, "OpenReview venue IDs, e.g. ICLR.cc/2025/Conference")
	harvestCmd.Flags().StringVar(&harvestConference, "conference", "", "Conference short code (ICLR, ICML, NIPS, AAAI); requires --year")
	harvestCmd.Flags().IntVar(&harvestYear, "year", 0, "Conference year for --conference")
	harvestCmd.Flags().StringVar(&harvestOut, "out", "papers", "Directory to save PDFs and the reference list")
	harvestCmd.Flags().StringVar(&harvestStyle, "style", string(citation.StyleGB7714), "Reference style: gb7714, ieee, ris, bibtex")
	harvestCmd.Flags().IntVar(&harvestMax, "max", 0, "Download at most N papers (0 = no limit)")
	harvestCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(harvestCmd)
}

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Download matching papers and write a reference list",
	Long: `Download PDFs from OpenReview that match a keyword and generate a
reference list in the chosen citation style.

Examples:
  paperdeck harvest --query "reinforcement learning" --venues ICLR.cc/2025/Conference --style ieee
  paperdeck harvest --query diffusion --conference ICLR --year 2025 --out papers`,
	RunE: runHarvest,
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg.ApplyEnv()

	style, err := citation.ParseStyle(harvestStyle)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	query, err := regexp.Compile("(?i)" + harvestQuery)
	if err != nil {
		exitWithError(ExitError, "compiling query: %v", err)
	}

	venues := harvestVenues
	if harvestConference != "" {
		id, err := openreview.VenueID(harvestConference, harvestYear)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		venues = append(venues, id)
	}
	if len(venues) == 0 {
		exitWithError(ExitConfigError, "no venues: pass --venues or --conference with --year")
	}

	ctx := context.Background()
	client := openreview.NewClient(
		openreview.WithCredentials(cfg.OpenReview.Username, cfg.OpenReview.Password))
	if err := client.Login(ctx); err != nil {
		exitWithError(ExitConfigError, "logging in to OpenReview: %v", err)
	}

	st, err := store.Open(filepath.Join(harvestOut, store.DBFile))
	if err != nil {
		exitWithError(ExitError, "opening store: %v", err)
	}
	defer st.Close()

	expander := venue.NewExpander(cfg.VenueTable())
	opts := cfg.CitationOptions()

	var references []string
	downloaded := 0

	for _, venueID := range venues {
		log.Info().Str("venue", venueID).Msg("scanning venue")

		invitation, err := client.SubmissionInvitation(ctx, venueID)
		if err != nil {
			log.Error().Err(err).Str("venue", venueID).Msg("cannot resolve venue")
			continue
		}
		notes, err := client.Submissions(ctx, invitation)
		if err != nil {
			log.Error().Err(err).Str("venue", venueID).Msg("cannot fetch submissions")
			continue
		}

		for _, note := range notes {
			if harvestMax > 0 && downloaded >= harvestMax {
				break
			}

			rec, err := reference.FromNote(reference.Note{
				ID:      note.ID,
				Number:  note.Number,
				CDate:   note.CDate,
				Content: note.Content,
			})
			if err != nil {
				log.Warn().Err(err).Msg("skipping note")
				continue
			}
			if !query.MatchString(rec.Title) && !query.MatchString(rec.Abstract) {
				continue
			}

			pdfPath := filepath.Join(harvestOut,
				strings.ReplaceAll(venueID, "/", "_"),
				safeFilename(rec.Title, rec.Number))
			if !fileExists(pdfPath) {
				if err := downloadPDF(ctx, client, rec.ID, pdfPath); err != nil {
					log.Warn().Err(err).Str("note", rec.ID).Msg("pdf missing")
					continue
				}
			}

			rec.Venue = expander.Expand(rec.VenueRaw)
			rec.ResolveYear(cfg.Style.YearOffset)
			rec.Pages = pages.Resolve(rec, pdfPath)
			rec.PDFPath = pdfPath

			downloaded++
			formatted, err := citation.Format(style, rec, rec.Pages, len(references)+1, opts)
			if err != nil {
				exitWithError(ExitError, "%v", err)
			}
			references = append(references, formatted)

			if err := st.Upsert(rec); err != nil {
				log.Error().Err(err).Str("note", rec.ID).Msg("store upsert failed")
			}
			log.Debug().Str("title", rec.Title).Msg("harvested")
		}
	}

	if len(references) == 0 {
		if humanOutput {
			fmt.Println("No matching papers; no reference list generated.")
		} else {
			outputJSON(StatusResponse{Status: "empty"})
		}
		return nil
	}

	refPath := filepath.Join(harvestOut, fmt.Sprintf("references_%s.txt", style))
	content := strings.Join(references, style.Separator()) + "\n"
	if err := os.WriteFile(refPath, []byte(content), 0644); err != nil {
		exitWithError(ExitError, "writing reference list: %v", err)
	}

	if humanOutput {
		fmt.Printf("Saved %d references to %s (%d PDFs)\n", len(references), refPath, downloaded)
	} else {
		outputJSON(StatusResponse{Status: "ok", Path: refPath, Count: len(references)})
	}
	return nil
}

// downloadPDF fetches one attachment to a temp file and renames it into
// place, so an interrupted download never leaves a half-written PDF.
func downloadPDF(ctx context.Context, client *openreview.Client, noteID, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating pdf directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := client.DownloadPDF(ctx, noteID, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

var unsafeFilenameRe = regexp.MustCompile(`[\\/*?:"<>|]`)

// safeFilename builds "<number>_<title>.pdf" with filesystem-hostile
// characters stripped and the title truncated to 100 runes.
func safeFilename(title string, number int) string {
	title = unsafeFilenameRe.ReplaceAllString(title, "")
	title = strings.Join(strings.Fields(title), " ")
	if runes := []rune(title); len(runes) > 100 {
		title = string(runes[:100])
	}
	return fmt.Sprintf("%d_%s.pdf", number, title)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
