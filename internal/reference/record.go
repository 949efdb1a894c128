// Package reference defines the bibliographic record shared by every
// citation style, plus the extractor that builds records from raw
// OpenReview note content.
package reference

import "time"

// Record is one paper's normalized bibliographic metadata.
//
// Author order is significant (first author first) and is preserved
// through every formatter. Venue is the expanded display name and is
// filled in by the caller after venue expansion; VenueRaw keeps the
// original string from the note.
type Record struct {
	ID        string   `json:"id"` // OpenReview note ID, used to build the forum URL
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	VenueRaw  string   `json:"venue_raw"`
	Venue     string   `json:"venue"`
	Year      int      `json:"year"`
	Pages     string   `json:"pages,omitempty"` // explicit page range from metadata, if any
	StartPage string   `json:"start_page,omitempty"`
	EndPage   string   `json:"end_page,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	BibTeX    string   `json:"bibtex,omitempty"` // pre-existing _bibtex blob from the note
	CDate     int64    `json:"cdate,omitempty"`  // note creation time, milliseconds since epoch
	Number    int      `json:"number,omitempty"` // submission number within the venue
	PDFPath   string   `json:"pdf_path,omitempty"`
}

// ResolveYear fills in Year from the note creation timestamp when the
// metadata carried no year field. The offset is added to the derived
// calendar year; harvests of venues whose review cycle runs the year
// before publication can set it to 1.
func (r *Record) ResolveYear(offset int) {
	if r.Year != 0 {
		return
	}
	if r.CDate > 0 {
		r.Year = time.UnixMilli(r.CDate).UTC().Year() + offset
	}
}
