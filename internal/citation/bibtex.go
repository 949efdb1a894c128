package citation

import (
	"fmt"
	"regexp"
	"strings"

	"paperdeck/internal/reference"
)

var (
	abstractFieldRe = regexp.MustCompile(`(?i)(^|[\s,{])abstract\s*=`)
	pagesFieldRe    = regexp.MustCompile(`(?i)(^|[\s,{])pages\s*=`)
	nonAlnumRe      = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// BibTeX renders a keyed entry. When the record already carries a
// structured blob (OpenReview's _bibtex field), that blob is reused
// verbatim and only missing abstract/pages fields are appended; a
// field that is already present is never duplicated, so the formatter
// is safe to apply repeatedly. Otherwise a fresh entry is synthesized.
// The sequence index is unused: BibTeX entries are keyed, not numbered.
func BibTeX(rec reference.Record, pages string, _ int, opts Options) string {
	if blob := strings.TrimSpace(rec.BibTeX); strings.HasPrefix(blob, "@") {
		return augmentEntry(blob, rec, pages)
	}
	return synthesizeEntry(rec, pages, opts)
}

// augmentEntry appends abstract and pages fields to an existing entry
// when they are absent.
func augmentEntry(entry string, rec reference.Record, pages string) string {
	if rec.Abstract != "" && !abstractFieldRe.MatchString(entry) {
		entry = appendField(entry, "abstract", rec.Abstract)
	}
	if hasPages(pages) && !pagesFieldRe.MatchString(entry) {
		entry = appendField(entry, "pages", pages)
	}
	return entry
}

// appendField inserts "name = {value}," before the closing brace of a
// BibTeX entry. Entries not ending in a brace are returned unchanged.
func appendField(entry, name, value string) string {
	trimmed := strings.TrimRight(entry, " \t\n")
	if !strings.HasSuffix(trimmed, "}") {
		return entry
	}

	body := strings.TrimRight(strings.TrimSuffix(trimmed, "}"), " \t\n")
	if !strings.HasSuffix(body, ",") && !strings.HasSuffix(body, "{") {
		body += ","
	}
	return fmt.Sprintf("%s\n  %s = {%s},\n}", body, name, value)
}

// synthesizeEntry builds a new BibTeX entry from record metadata.
func synthesizeEntry(rec reference.Record, pages string, opts Options) string {
	entryType := "article"
	venueField := "journal"
	if bibtexConference(rec.Venue) {
		entryType = "inproceedings"
		venueField = "booktitle"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, citeKey(rec))
	fmt.Fprintf(&b, "  title = {%s},\n", rec.Title)
	if len(rec.Authors) > 0 {
		fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(rec.Authors, " and "))
	}
	if rec.Venue != "" {
		fmt.Fprintf(&b, "  %s = {%s},\n", venueField, rec.Venue)
	}
	fmt.Fprintf(&b, "  year = {%d},\n", rec.Year)
	if hasPages(pages) {
		fmt.Fprintf(&b, "  pages = {%s},\n", pages)
	}
	if rec.Abstract != "" {
		fmt.Fprintf(&b, "  abstract = {%s},\n", rec.Abstract)
	}
	if url := opts.URL(rec.ID); url != "" {
		fmt.Fprintf(&b, "  url = {%s},\n", url)
	}
	b.WriteString("}")

	return b.String()
}

// citeKey derives a deterministic key from the last token of the
// joined author list plus the year, with non-alphanumerics stripped.
func citeKey(rec reference.Record) string {
	base := "ref"
	joined := strings.Join(rec.Authors, " ")
	if fields := strings.Fields(joined); len(fields) > 0 {
		if stripped := nonAlnumRe.ReplaceAllString(fields[len(fields)-1], ""); stripped != "" {
			base = stripped
		}
	}
	return fmt.Sprintf("%s%d", base, rec.Year)
}

// bibtexConference classifies venues for the BibTeX entry type; it
// recognizes workshops and symposia in addition to the shared
// conference/proceedings test.
func bibtexConference(venue string) bool {
	if isConference(venue) {
		return true
	}
	lower := strings.ToLower(venue)
	return strings.Contains(lower, "workshop") || strings.Contains(lower, "symposium")
}
