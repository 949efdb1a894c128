// Package venue expands short venue codes to full display names.
package venue

import "strings"

// Entry maps a venue abbreviation to its full display name.
type Entry struct {
	Abbrev string
	Full   string
}

// Expander resolves raw venue strings against an ordered abbreviation
// table. The table is immutable after construction; build a new
// Expander to use a different table.
type Expander struct {
	table []Entry
}

// DefaultTable covers the venues the harvester targets by default.
// Order matters: the first abbreviation contained in the raw string
// wins, so more specific codes must come before their prefixes.
func DefaultTable() []Entry {
	return []Entry{
		{"ICLR", "International Conference on Learning Representations (ICLR)"},
		{"ICML", "International Conference on Machine Learning (ICML)"},
		{"NeurIPS", "Conference on Neural Information Processing Systems (NeurIPS)"},
		{"NIPS", "Conference on Neural Information Processing Systems (NeurIPS)"},
		{"AAAI", "AAAI Conference on Artificial Intelligence (AAAI)"},
		{"CVPR", "IEEE/CVF Conference on Computer Vision and Pattern Recognition (CVPR)"},
		{"ICCV", "IEEE/CVF International Conference on Computer Vision (ICCV)"},
		{"ACL", "Annual Meeting of the Association for Computational Linguistics (ACL)"},
		{"EMNLP", "Conference on Empirical Methods in Natural Language Processing (EMNLP)"},
	}
}

// NewExpander builds an Expander over the given table. A nil table
// uses DefaultTable.
func NewExpander(table []Entry) *Expander {
	if table == nil {
		table = DefaultTable()
	}
	return &Expander{table: append([]Entry(nil), table...)}
}

// Expand returns the full display name for the first table abbreviation
// contained (case-insensitively) anywhere in raw. Unknown strings,
// including the empty string, are returned unchanged.
func (e *Expander) Expand(raw string) string {
	lower := strings.ToLower(raw)
	for _, entry := range e.table {
		if strings.Contains(lower, strings.ToLower(entry.Abbrev)) {
			return entry.Full
		}
	}
	return raw
}
