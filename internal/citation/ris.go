package citation

import (
	"fmt"
	"strings"

	"paperdeck/internal/reference"
)

// RIS renders a tagged-field entry for reference managers. Field order
// is fixed: type, one AU line per author in original order, title,
// year, optional pages, optional abstract, venue, URL, terminator.
// The sequence index is unused: RIS records are unnumbered.
func RIS(rec reference.Record, pages string, _ int, opts Options) string {
	var lines []string

	if isConference(rec.Venue) {
		lines = append(lines, "TY  - CONF")
	} else {
		lines = append(lines, "TY  - JOUR")
	}

	for _, author := range rec.Authors {
		lines = append(lines, "AU  - "+author)
	}

	lines = append(lines, "TI  - "+rec.Title)
	lines = append(lines, fmt.Sprintf("PY  - %d", rec.Year))

	if hasPages(pages) {
		lines = append(lines, "SP  - "+pages)
	}
	if rec.Abstract != "" {
		lines = append(lines, "AB  - "+rec.Abstract)
	}
	if rec.Venue != "" {
		lines = append(lines, "T2  - "+rec.Venue)
	}
	if url := opts.URL(rec.ID); url != "" {
		lines = append(lines, "UR  - "+url)
	}

	lines = append(lines, "ER  -")

	return strings.Join(lines, "\n")
}
