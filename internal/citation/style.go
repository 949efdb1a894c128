// Package citation renders bibliographic records into reference
// strings in several styles: GB/T 7714 numeric, IEEE prose, RIS, and
// BibTeX. Formatters are pure: they read a record, the resolved page
// range, and a 1-based sequence index, and never mutate their inputs.
package citation

import (
	"fmt"
	"strings"

	"paperdeck/internal/reference"
)

// Style names a citation output format.
type Style string

const (
	// StyleGB7714 is the numeric reference-list style.
	StyleGB7714 Style = "gb7714"
	// StyleIEEE is the flowing-sentence conference style.
	StyleIEEE Style = "ieee"
	// StyleRIS is the tagged-field style for reference managers.
	StyleRIS Style = "ris"
	// StyleBibTeX is the keyed-entry style.
	StyleBibTeX Style = "bibtex"
)

// Styles lists all supported styles.
var Styles = []Style{StyleGB7714, StyleIEEE, StyleRIS, StyleBibTeX}

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	for _, style := range Styles {
		if Style(strings.ToLower(strings.TrimSpace(s))) == style {
			return style, nil
		}
	}
	return "", fmt.Errorf("unknown citation style: %q (valid: gb7714, ieee, ris, bibtex)", s)
}

// Separator returns the string used to join multiple entries of this
// style into one document: single newline for line-oriented styles,
// blank line for block-oriented ones.
func (s Style) Separator() string {
	switch s {
	case StyleRIS, StyleBibTeX:
		return "\n\n"
	default:
		return "\n"
	}
}

// Options carries the style parameters that drifted across historical
// versions of the reference scripts. Tests pin one canonical choice;
// alternate punctuation remains expressible through configuration
// rather than code forks.
type Options struct {
	// URLBase is the prefix for canonical paper URLs; the record ID
	// is appended as "?id=<id>".
	URLBase string

	// ProseVenuePrefix is prepended to venues in the IEEE prose style
	// unless the venue already starts with "in ". The historical
	// alternative "in Proc. " is a configuration choice.
	ProseVenuePrefix string
}

// DefaultOptions returns the canonical rule set.
func DefaultOptions() Options {
	return Options{
		URLBase:          "https://openreview.net/forum",
		ProseVenuePrefix: "in Proceedings of the ",
	}
}

// URL builds the canonical paper URL for a record identifier. Returns
// "" when either part is missing.
func (o Options) URL(id string) string {
	if o.URLBase == "" || id == "" {
		return ""
	}
	return o.URLBase + "?id=" + id
}

// isConference reports whether an expanded venue string names a
// conference rather than a journal.
func isConference(venue string) bool {
	lower := strings.ToLower(venue)
	return strings.Contains(lower, "conference") || strings.Contains(lower, "proceedings")
}

// hasPages reports whether a resolved page range carries real page
// information rather than the sentinel.
func hasPages(pages string) bool {
	return pages != "" && pages != "n/a"
}

// Format renders one record in the named style.
func Format(style Style, rec reference.Record, pages string, idx int, opts Options) (string, error) {
	switch style {
	case StyleGB7714:
		return Numeric(rec, pages, idx, opts), nil
	case StyleIEEE:
		return Prose(rec, pages, idx, opts), nil
	case StyleRIS:
		return RIS(rec, pages, idx, opts), nil
	case StyleBibTeX:
		return BibTeX(rec, pages, idx, opts), nil
	}
	return "", fmt.Errorf("unknown citation style: %q", style)
}
