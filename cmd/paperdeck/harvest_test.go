package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		number int
		want   string
	}{
		{
			name:   "plain title",
			title:  "Graph Nets",
			number: 12,
			want:   "12_Graph Nets.pdf",
		},
		{
			name:   "hostile characters stripped",
			title:  `What? A "Survey": Part 1/2`,
			number: 3,
			want:   "3_What A Survey Part 12.pdf",
		},
		{
			name:   "whitespace collapsed",
			title:  "  spaced\tout \n title ",
			number: 1,
			want:   "1_spaced out title.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := safeFilename(tt.title, tt.number); got != tt.want {
				t.Errorf("safeFilename(%q, %d) = %q, want %q", tt.title, tt.number, got, tt.want)
			}
		})
	}
}

func TestSafeFilename_TruncatesLongTitles(t *testing.T) {
	got := safeFilename(strings.Repeat("x", 300), 7)

	if !strings.HasPrefix(got, "7_") || !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("safeFilename() = %q, want 7_<title>.pdf shape", got)
	}
	title := strings.TrimSuffix(strings.TrimPrefix(got, "7_"), ".pdf")
	if len([]rune(title)) != 100 {
		t.Errorf("title length = %d runes, want 100", len([]rune(title)))
	}
}

func TestFindPDFs_RecursiveAndOrdered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"venue_b/2_second.pdf",
		"venue_a/1_first.pdf",
		"venue_a/notes.txt",
	} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	pdfs, err := findPDFs(dir)
	if err != nil {
		t.Fatalf("findPDFs() error: %v", err)
	}
	if len(pdfs) != 2 {
		t.Fatalf("findPDFs() found %d files, want 2", len(pdfs))
	}
	if !strings.HasSuffix(pdfs[0], "1_first.pdf") || !strings.HasSuffix(pdfs[1], "2_second.pdf") {
		t.Errorf("findPDFs() order = %v, want lexical", pdfs)
	}
}

func TestTitleFor(t *testing.T) {
	titles := map[string]string{"papers/v/1_Graph Nets.pdf": "Graph Nets: A Survey"}

	if got := titleFor(titles, "papers/v/1_Graph Nets.pdf", "1_Graph Nets"); got != "Graph Nets: A Survey" {
		t.Errorf("titleFor() = %q, want indexed title", got)
	}
	if got := titleFor(titles, "papers/v/2_Other.pdf", "2_Other"); got != "Other" {
		t.Errorf("titleFor() fallback = %q, want number prefix stripped", got)
	}
}

func TestLoadSummaries_SkipsNonJSON(t *testing.T) {
	dir := t.TempDir()
	doc := `{"title": "Graph Nets", "summary": {"phenomenon": "p"}}`
	if err := os.WriteFile(filepath.Join(dir, "1_a.json"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := loadSummaries(dir)
	if err != nil {
		t.Fatalf("loadSummaries() error: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "Graph Nets" {
		t.Errorf("loadSummaries() = %+v, want one doc titled Graph Nets", docs)
	}
	if docs[0].Summary.Phenomenon != "p" {
		t.Errorf("Phenomenon = %q", docs[0].Summary.Phenomenon)
	}
}
