package summarize

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"ascii", strings.Repeat("a", 40), 11}, // 40/4 + 1
		{"cjk", "机制研究", 5},                     // 4 CJK runes + 1
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.want {
				t.Errorf("EstimateTokens() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClipToBudget_FitsUnchanged(t *testing.T) {
	text := "short text"
	if got := ClipToBudget(text, TokenBudget); got != text {
		t.Errorf("ClipToBudget() modified text that fits: %q", got)
	}
}

func TestClipToBudget_Truncates(t *testing.T) {
	text := strings.Repeat("abcd ", 2000) // ~2500 tokens
	got := ClipToBudget(text, 100)

	if len(got) >= len(text) {
		t.Fatal("ClipToBudget() did not truncate")
	}
	if EstimateTokens(got) > 110 {
		t.Errorf("ClipToBudget() left %d tokens for budget 100", EstimateTokens(got))
	}
}

func TestClipToBudget_RuneSafe(t *testing.T) {
	text := strings.Repeat("现象机制", 1000)
	got := ClipToBudget(text, 50)

	for _, r := range got {
		if r == '�' {
			t.Fatal("ClipToBudget() split a multi-byte rune")
		}
	}
}

func TestClipToBudget_ZeroBudget(t *testing.T) {
	if got := ClipToBudget("anything", 0); got != "" {
		t.Errorf("ClipToBudget(0) = %q, want empty", got)
	}
}
