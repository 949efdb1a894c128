package venue

import "testing"

func TestExpand(t *testing.T) {
	e := NewExpander(nil)

	tests := []struct {
		raw  string
		want string
	}{
		{"ICLR.cc/2025/Conference", "International Conference on Learning Representations (ICLR)"},
		{"iclr.cc/2024/conference", "International Conference on Learning Representations (ICLR)"},
		{"NeurIPS.cc/2024/Conference", "Conference on Neural Information Processing Systems (NeurIPS)"},
		{"Journal of Obscure Results", "Journal of Obscure Results"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := e.Expand(tt.raw); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExpand_TableOrderWins(t *testing.T) {
	e := NewExpander([]Entry{
		{"ACL", "First Match (ACL)"},
		{"NAACL", "Should Not Win (NAACL)"},
	})

	// "NAACL 2024" contains both ACL and NAACL; the earlier table
	// entry must win.
	if got := e.Expand("NAACL 2024"); got != "First Match (ACL)" {
		t.Errorf("Expand() = %q, want first-match entry", got)
	}
}

func TestExpand_UnknownIsIdentity(t *testing.T) {
	e := NewExpander([]Entry{{"ICLR", "International Conference on Learning Representations (ICLR)"}})

	raw := "Workshop on Tiny Papers"
	if got := e.Expand(raw); got != raw {
		t.Errorf("Expand(%q) = %q, want input unchanged", raw, got)
	}
}

func TestExpand_CustomTableIsolated(t *testing.T) {
	custom := []Entry{{"XYZ", "Xylophone Symposium (XYZ)"}}
	e := NewExpander(custom)

	if got := e.Expand("Proceedings of XYZ 2030"); got != "Xylophone Symposium (XYZ)" {
		t.Errorf("Expand() = %q", got)
	}
	// Default-table entries must not leak into a custom expander.
	if got := e.Expand("ICLR.cc/2025/Conference"); got != "ICLR.cc/2025/Conference" {
		t.Errorf("Expand() = %q, want raw string for unknown abbreviation", got)
	}
}
