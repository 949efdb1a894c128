package citation

import "strings"

// maxEnumeratedAuthors is the cutoff for the enumerative join before
// collapsing to "et al.".
const maxEnumeratedAuthors = 3

// JoinEnumerative joins authors for reference-list styles: at most the
// first three names separated by "; ", with ", et al." appended when
// more exist.
func JoinEnumerative(authors []string) string {
	if len(authors) <= maxEnumeratedAuthors {
		return strings.Join(authors, "; ")
	}
	return strings.Join(authors[:maxEnumeratedAuthors], "; ") + ", et al."
}

// JoinProse joins authors for flowing-sentence styles, with a serial
// comma for three or more names:
//
//	0 -> ""
//	1 -> "A"
//	2 -> "A and B"
//	3+ -> "A, B, and C"
func JoinProse(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " and " + authors[1]
	}
	return strings.Join(authors[:len(authors)-1], ", ") + ", and " + authors[len(authors)-1]
}
