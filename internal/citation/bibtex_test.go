package citation

import (
	"strings"
	"testing"

	"paperdeck/internal/reference"
)

func TestBibTeX_SynthesizeConference(t *testing.T) {
	rec := reference.Record{
		ID:      "gn25",
		Title:   "Graph Nets",
		Authors: []string{"A. Lee", "B. Kim"},
		Venue:   "International Conference on Learning Representations (ICLR)",
		Year:    2025,
	}

	got := BibTeX(rec, "1-9", 1, DefaultOptions())

	if !strings.HasPrefix(got, "@inproceedings{Kim2025,") {
		t.Errorf("BibTeX() key should come from the last author token plus year, got:\n%s", got)
	}
	if !strings.Contains(got, "author = {A. Lee and B. Kim},") {
		t.Errorf("BibTeX() authors should join with \" and \", got:\n%s", got)
	}
	if !strings.Contains(got, "booktitle = {International Conference on Learning Representations (ICLR)},") {
		t.Errorf("BibTeX() conference venue should use booktitle, got:\n%s", got)
	}
	if !strings.Contains(got, "pages = {1-9},") {
		t.Errorf("BibTeX() should carry resolved pages, got:\n%s", got)
	}
	if !strings.Contains(got, "url = {https://openreview.net/forum?id=gn25},") {
		t.Errorf("BibTeX() should carry the canonical URL, got:\n%s", got)
	}

	// Field order: title before author before booktitle before year.
	title := strings.Index(got, "title =")
	author := strings.Index(got, "author =")
	venue := strings.Index(got, "booktitle =")
	year := strings.Index(got, "year =")
	if !(title < author && author < venue && venue < year) {
		t.Errorf("BibTeX() field order wrong:\n%s", got)
	}
}

func TestBibTeX_SynthesizeJournal(t *testing.T) {
	rec := reference.Record{
		Title:   "Steady Flows",
		Authors: []string{"M. O'Neil"},
		Venue:   "Annals of Fluids",
		Year:    2020,
	}

	got := BibTeX(rec, "n/a", 1, DefaultOptions())
	if !strings.HasPrefix(got, "@article{ONeil2020,") {
		t.Errorf("BibTeX() should strip non-alphanumerics from the key, got:\n%s", got)
	}
	if !strings.Contains(got, "journal = {Annals of Fluids},") {
		t.Errorf("BibTeX() journal venue should use journal field, got:\n%s", got)
	}
	if strings.Contains(got, "pages =") {
		t.Errorf("BibTeX() must omit pages for the sentinel, got:\n%s", got)
	}
}

func TestBibTeX_NoAuthors(t *testing.T) {
	rec := reference.Record{Title: "Orphan", Year: 2019}

	got := BibTeX(rec, "n/a", 1, DefaultOptions())
	if !strings.HasPrefix(got, "@article{ref2019,") {
		t.Errorf("BibTeX() should fall back to a generic key, got:\n%s", got)
	}
	if strings.Contains(got, "author =") {
		t.Errorf("BibTeX() must omit the author field when empty, got:\n%s", got)
	}
}

func TestBibTeX_ReuseExistingBlob(t *testing.T) {
	rec := reference.Record{
		Title:    "Graph Nets",
		Abstract: "We study graphs.",
		BibTeX: "@inproceedings{lee2025graph,\n" +
			"  title = {Graph Nets},\n" +
			"  author = {Lee, A. and Kim, B.},\n" +
			"  year = {2025}\n" +
			"}",
	}

	got := BibTeX(rec, "1-9", 1, DefaultOptions())

	if !strings.HasPrefix(got, "@inproceedings{lee2025graph,") {
		t.Errorf("BibTeX() should reuse the existing key, got:\n%s", got)
	}
	if !strings.Contains(got, "abstract = {We study graphs.},") {
		t.Errorf("BibTeX() should append the missing abstract, got:\n%s", got)
	}
	if !strings.Contains(got, "pages = {1-9},") {
		t.Errorf("BibTeX() should append the missing pages, got:\n%s", got)
	}
	if !strings.HasSuffix(strings.TrimSpace(got), "}") {
		t.Errorf("BibTeX() should stay a closed entry, got:\n%s", got)
	}
}

func TestBibTeX_NeverDuplicatesFields(t *testing.T) {
	rec := reference.Record{
		Title:    "Graph Nets",
		Abstract: "We study graphs.",
		BibTeX: "@inproceedings{lee2025graph,\n" +
			"  title = {Graph Nets},\n" +
			"  PAGES = {1-9},\n" +
			"  abstract = {Already here.},\n" +
			"}",
	}

	first := BibTeX(rec, "1-9", 1, DefaultOptions())
	// Feed the output back in as the existing blob: still no duplicates.
	rec.BibTeX = first
	second := BibTeX(rec, "1-9", 1, DefaultOptions())

	if first != second {
		t.Errorf("BibTeX() must be stable across repeated calls:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if n := strings.Count(strings.ToLower(second), "pages"); n != 1 {
		t.Errorf("BibTeX() duplicated the pages field (%d occurrences):\n%s", n, second)
	}
	if n := strings.Count(strings.ToLower(second), "abstract"); n != 1 {
		t.Errorf("BibTeX() duplicated the abstract field (%d occurrences):\n%s", n, second)
	}
}
