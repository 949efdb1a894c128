package reference

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingTitle indicates a note whose content carries no title.
// A record without a title cannot be cited, so extraction fails rather
// than degrading.
var ErrMissingTitle = errors.New("note has no title")

// Note is the subset of an OpenReview note the extractor consumes.
// Content is the raw, dynamically shaped metadata map: depending on the
// API version, field values appear either directly or wrapped one level
// deeper under a "value" sub-key.
type Note struct {
	ID      string
	Number  int
	CDate   int64
	Content map[string]any
}

// FromNote builds a Record from raw note content.
//
// Every field is looked up both directly and in the {"value": ...}
// wrapped form. A missing title is the only fatal case; every other
// absent field degrades to its zero value and formatting proceeds.
func FromNote(n Note) (Record, error) {
	title := strings.TrimSpace(fieldString(n.Content, "title"))
	if title == "" {
		return Record{}, fmt.Errorf("note %s: %w", n.ID, ErrMissingTitle)
	}

	rec := Record{
		ID:        n.ID,
		Title:     title,
		Authors:   fieldStrings(n.Content, "authors"),
		VenueRaw:  firstField(n.Content, "venue", "venueid"),
		Year:      fieldInt(n.Content, "year"),
		Pages:     firstField(n.Content, "pages", "page", "page_numbers"),
		StartPage: fieldString(n.Content, "start_page"),
		EndPage:   fieldString(n.Content, "end_page"),
		Abstract:  fieldString(n.Content, "abstract"),
		BibTeX:    fieldString(n.Content, "_bibtex"),
		CDate:     n.CDate,
		Number:    n.Number,
	}
	if rec.Pages == "" && rec.StartPage != "" && rec.EndPage == "" {
		// A lone start_page field still counts as explicit page info;
		// a full start/end pair is left for page resolution to join.
		rec.Pages = strings.TrimSpace(rec.StartPage)
		rec.StartPage = ""
	}
	return rec, nil
}

// unwrap returns the value for key, looking through the {"value": ...}
// wrapping used by the v2 API.
func unwrap(content map[string]any, key string) (any, bool) {
	v, ok := content[key]
	if !ok || v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		inner, ok := m["value"]
		if !ok || inner == nil {
			return nil, false
		}
		return inner, true
	}
	return v, true
}

// fieldString returns the string value for key, or "" if absent.
func fieldString(content map[string]any, key string) string {
	v, ok := unwrap(content, key)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	}
	return ""
}

// firstField returns the first non-empty string among the given keys.
func firstField(content map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(fieldString(content, key)); s != "" {
			return s
		}
	}
	return ""
}

// fieldStrings returns the string-list value for key, or nil if absent.
func fieldStrings(content map[string]any, key string) []string {
	v, ok := unwrap(content, key)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// fieldInt returns the integer value for key, or 0 if absent. JSON
// decoding delivers numbers as float64, and some venues store the year
// as a string.
func fieldInt(content map[string]any, key string) int {
	v, ok := unwrap(content, key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return 0
}
