package citation

import (
	"fmt"
	"strings"

	"paperdeck/internal/reference"
)

// Prose renders an IEEE-flavored flowing citation:
//
//	A. Lee, B. Kim, C. Ng, and D. Wu, "Graph Nets," in Proceedings of
//	the International Conference on Learning Representations (ICLR),
//	2025, pp. 1-9.
//
// Venues that already start with "in " (case-insensitive) are used
// verbatim; an empty venue drops the venue segment entirely. The
// sequence index is unused: prose lists are not numbered.
func Prose(rec reference.Record, pages string, _ int, opts Options) string {
	var b strings.Builder

	if authors := JoinProse(rec.Authors); authors != "" {
		b.WriteString(authors)
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "\"%s,\" ", rec.Title)

	if venue := proseVenue(rec.Venue, opts); venue != "" {
		b.WriteString(venue)
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "%d", rec.Year)

	if hasPages(pages) {
		b.WriteString(", pp. ")
		b.WriteString(pages)
	}
	b.WriteString(".")

	return b.String()
}

// proseVenue applies the configured "in Proceedings of the" wrapper
// unless the venue already carries its own "in " prefix.
func proseVenue(venue string, opts Options) string {
	if venue == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(venue), "in ") {
		return venue
	}
	return opts.ProseVenuePrefix + venue
}
