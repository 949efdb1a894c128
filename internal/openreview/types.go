package openreview

import (
	"fmt"
	"strings"
)

// Note is one submission as returned by the notes endpoint. Content is
// kept as the raw dynamically shaped map; the reference extractor owns
// normalization.
type Note struct {
	ID      string         `json:"id"`
	Number  int            `json:"number"`
	CDate   int64          `json:"cdate"`
	Content map[string]any `json:"content"`
}

// notesResponse is the wire shape of GET /notes.
type notesResponse struct {
	Notes []Note `json:"notes"`
	Count int    `json:"count"`
}

// groupsResponse is the wire shape of GET /groups.
type groupsResponse struct {
	Groups []struct {
		ID      string         `json:"id"`
		Content map[string]any `json:"content"`
	} `json:"groups"`
}

// loginResponse is the wire shape of POST /login.
type loginResponse struct {
	Token string `json:"token"`
}

// conferenceGroups maps short conference codes to venue ID patterns.
var conferenceGroups = map[string]string{
	"ICLR":    "ICLR.cc/%d/Conference",
	"ICML":    "MLResearch.org/ICML/%d",
	"NIPS":    "NeurIPS.cc/%d/Conference",
	"NEURIPS": "NeurIPS.cc/%d/Conference",
	"AAAI":    "AAAI.org/%d/Conference",
}

// VenueID expands a short conference code plus year into a full venue
// group ID. Strings containing a slash are assumed to already be venue
// IDs and pass through unchanged.
func VenueID(conference string, year int) (string, error) {
	if strings.Contains(conference, "/") {
		return conference, nil
	}
	pattern, ok := conferenceGroups[strings.ToUpper(conference)]
	if !ok {
		return "", fmt.Errorf("unsupported conference: %s", conference)
	}
	return fmt.Sprintf(pattern, year), nil
}
