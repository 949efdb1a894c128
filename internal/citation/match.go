package citation

import (
	"regexp"
	"strings"
)

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// normalizeForMatch strips everything but letters, digits, underscores
// and whitespace and lowercases, so titles match citation lines
// regardless of punctuation and casing. Letters and digits are matched
// per Unicode class, not ASCII, so CJK titles survive normalization.
func normalizeForMatch(s string) string {
	return strings.ToLower(nonWordRe.ReplaceAllString(s, ""))
}

// FindReference returns the first corpus line whose normalized form
// contains the normalized title as a substring. Matching is
// deterministic and order-preserving: the first match in corpus order
// wins, with no best-match scoring. The second return is false when no
// line matches.
func FindReference(title string, corpus []string) (string, bool) {
	needle := normalizeForMatch(title)
	if needle == "" {
		return "", false
	}
	for _, line := range corpus {
		if strings.Contains(normalizeForMatch(line), needle) {
			return line, true
		}
	}
	return "", false
}
