// Package pages resolves the page-range string used across all
// citation styles for one record.
package pages

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"paperdeck/internal/reference"
)

// Sentinel is the fixed placeholder for "no page information
// available". Formatters omit their page suffix when they see it.
const Sentinel = "n/a"

// Resolve determines the page range for a record. Priority, first
// success wins:
//
//  1. an explicit pages field from the metadata, returned trimmed
//  2. a start/end page pair, returned as "start-end"
//  3. the physical page count of the PDF at pdfPath, returned as "1-n"
//  4. the Sentinel
//
// A missing or unparseable PDF is not an error; resolution falls
// through to the sentinel. The result is derived purely from the
// inputs, so resolving the same record twice yields the same string.
func Resolve(rec reference.Record, pdfPath string) string {
	if p := strings.TrimSpace(rec.Pages); p != "" {
		return p
	}

	start := strings.TrimSpace(rec.StartPage)
	end := strings.TrimSpace(rec.EndPage)
	if start != "" && end != "" {
		return start + "-" + end
	}

	if pdfPath != "" {
		if n, err := CountPages(pdfPath); err == nil && n > 0 {
			return fmt.Sprintf("1-%d", n)
		}
	}

	return Sentinel
}

// CountPages returns the physical page count of a PDF file.
func CountPages(path string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, err
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return r.NumPage(), nil
}
