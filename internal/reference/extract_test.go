package reference

import (
	"errors"
	"testing"
)

func TestFromNote_WrappedFields(t *testing.T) {
	n := Note{
		ID:    "abc123",
		CDate: 1735689600000, // 2025-01-01 UTC
		Content: map[string]any{
			"title":    map[string]any{"value": "Graph Nets"},
			"authors":  map[string]any{"value": []any{"A. Lee", "B. Kim"}},
			"venueid":  map[string]any{"value": "ICLR.cc/2025/Conference"},
			"abstract": map[string]any{"value": "We study graphs."},
			"_bibtex":  map[string]any{"value": "@inproceedings{lee2025graph,\n}"},
		},
	}

	rec, err := FromNote(n)
	if err != nil {
		t.Fatalf("FromNote() error: %v", err)
	}
	if rec.Title != "Graph Nets" {
		t.Errorf("Title = %q, want %q", rec.Title, "Graph Nets")
	}
	if len(rec.Authors) != 2 || rec.Authors[0] != "A. Lee" {
		t.Errorf("Authors = %v, want [A. Lee B. Kim]", rec.Authors)
	}
	if rec.VenueRaw != "ICLR.cc/2025/Conference" {
		t.Errorf("VenueRaw = %q", rec.VenueRaw)
	}
	if rec.BibTeX == "" {
		t.Error("BibTeX blob should be extracted")
	}
}

func TestFromNote_DirectFields(t *testing.T) {
	n := Note{
		ID: "n1",
		Content: map[string]any{
			"title":   "Plain Title",
			"authors": []any{"Solo Author"},
			"venue":   "NeurIPS 2024",
			"year":    float64(2024),
			"pages":   "10-15",
		},
	}

	rec, err := FromNote(n)
	if err != nil {
		t.Fatalf("FromNote() error: %v", err)
	}
	if rec.Title != "Plain Title" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Year != 2024 {
		t.Errorf("Year = %d, want 2024", rec.Year)
	}
	if rec.Pages != "10-15" {
		t.Errorf("Pages = %q, want 10-15", rec.Pages)
	}
}

func TestFromNote_MissingTitle(t *testing.T) {
	n := Note{ID: "n2", Content: map[string]any{
		"authors": []any{"A"},
	}}

	_, err := FromNote(n)
	if !errors.Is(err, ErrMissingTitle) {
		t.Errorf("FromNote() error = %v, want ErrMissingTitle", err)
	}
}

func TestFromNote_EmptyWrappedTitle(t *testing.T) {
	n := Note{ID: "n3", Content: map[string]any{
		"title": map[string]any{"value": "   "},
	}}

	_, err := FromNote(n)
	if !errors.Is(err, ErrMissingTitle) {
		t.Errorf("FromNote() error = %v, want ErrMissingTitle", err)
	}
}

func TestFromNote_VenueFallsBackToVenueID(t *testing.T) {
	n := Note{ID: "n4", Content: map[string]any{
		"title":   "T",
		"venue":   map[string]any{"value": ""},
		"venueid": map[string]any{"value": "ICML.cc/2024"},
	}}

	rec, err := FromNote(n)
	if err != nil {
		t.Fatalf("FromNote() error: %v", err)
	}
	if rec.VenueRaw != "ICML.cc/2024" {
		t.Errorf("VenueRaw = %q, want ICML.cc/2024", rec.VenueRaw)
	}
}

func TestFromNote_StartEndPages(t *testing.T) {
	n := Note{ID: "n5", Content: map[string]any{
		"title":      "T",
		"start_page": map[string]any{"value": "100"},
		"end_page":   map[string]any{"value": "110"},
	}}

	rec, err := FromNote(n)
	if err != nil {
		t.Fatalf("FromNote() error: %v", err)
	}
	if rec.StartPage != "100" || rec.EndPage != "110" {
		t.Errorf("StartPage/EndPage = %q/%q, want 100/110", rec.StartPage, rec.EndPage)
	}
	if rec.Pages != "" {
		t.Errorf("Pages = %q, want empty when only a start/end pair exists", rec.Pages)
	}
}

func TestFromNote_LoneStartPage(t *testing.T) {
	n := Note{ID: "n7", Content: map[string]any{
		"title":      "T",
		"start_page": map[string]any{"value": " 42 "},
	}}

	rec, err := FromNote(n)
	if err != nil {
		t.Fatalf("FromNote() error: %v", err)
	}
	if rec.Pages != "42" {
		t.Errorf("Pages = %q, want lone start page promoted", rec.Pages)
	}
	if rec.StartPage != "" {
		t.Errorf("StartPage = %q, want cleared after promotion", rec.StartPage)
	}
}

func TestFromNote_YearAsString(t *testing.T) {
	n := Note{ID: "n6", Content: map[string]any{
		"title": "T",
		"year":  map[string]any{"value": "2023"},
	}}

	rec, err := FromNote(n)
	if err != nil {
		t.Fatalf("FromNote() error: %v", err)
	}
	if rec.Year != 2023 {
		t.Errorf("Year = %d, want 2023", rec.Year)
	}
}

func TestResolveYear(t *testing.T) {
	tests := []struct {
		name   string
		rec    Record
		offset int
		want   int
	}{
		{"already set", Record{Year: 2020, CDate: 1735689600000}, 0, 2020},
		{"from cdate", Record{CDate: 1735689600000}, 0, 2025},
		{"from cdate plus one", Record{CDate: 1735689600000}, 1, 2026},
		{"no cdate", Record{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rec.ResolveYear(tt.offset)
			if tt.rec.Year != tt.want {
				t.Errorf("ResolveYear(%d): Year = %d, want %d", tt.offset, tt.rec.Year, tt.want)
			}
		})
	}
}
