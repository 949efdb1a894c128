// Package deck renders paper summaries into slide text by substituting
// placeholder tokens in a template.
package deck

import "strings"

// Replacement is one token -> value substitution.
type Replacement struct {
	Token string
	Value string
}

// Replacements is an ordered substitution list. Order is part of the
// contract: tokens are applied first to last within each run, and a
// replacement value is never re-scanned for further tokens. Callers
// must delimiter-wrap tokens (the {{NAME}} convention) so no token is
// a substring of another.
type Replacements []Replacement

// Apply substitutes every occurrence of every token in each text run,
// preserving all other characters. Runs containing no tokens pass
// through unchanged.
func (r Replacements) Apply(runs []string) []string {
	if len(runs) == 0 {
		return nil
	}
	out := make([]string, len(runs))
	for i, run := range runs {
		for _, rep := range r {
			run = strings.ReplaceAll(run, rep.Token, rep.Value)
		}
		out[i] = run
	}
	return out
}

// ApplyString is Apply over a single run.
func (r Replacements) ApplyString(text string) string {
	for _, rep := range r {
		text = strings.ReplaceAll(text, rep.Token, rep.Value)
	}
	return text
}
