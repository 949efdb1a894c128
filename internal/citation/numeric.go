package citation

import (
	"fmt"
	"strings"

	"paperdeck/internal/reference"
)

// Numeric renders a GB/T 7714 numeric reference:
//
//	[1] A. Lee; B. Kim; C. Ng, et al. Graph Nets[C]. International
//	Conference on Learning Representations (ICLR), 2025, pp. 1-9.
//
// Conference-like venues are tagged [C], everything else [J]. The page
// suffix is omitted when the resolved pages are the sentinel.
func Numeric(rec reference.Record, pages string, idx int, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%d] ", idx)

	if authors := JoinEnumerative(rec.Authors); authors != "" {
		b.WriteString(authors)
		b.WriteString(". ")
	}

	typeTag := "[J]"
	if isConference(rec.Venue) {
		typeTag = "[C]"
	}
	b.WriteString(rec.Title)
	b.WriteString(typeTag)
	b.WriteString(". ")

	if rec.Venue != "" {
		b.WriteString(rec.Venue)
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
