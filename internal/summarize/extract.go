// Package summarize turns downloaded paper PDFs into structured
// summaries via an OpenAI-compatible chat model.
package summarize

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText extracts the plain text of every page of a PDF. A page
// that fails to decode contributes an empty string; pages are joined
// with newlines. Only a file that cannot be opened at all is an error.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var parts []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			parts = append(parts, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, "\n"), nil
}
