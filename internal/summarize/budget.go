package summarize

import "unicode"

const (
	// TokenBudget caps the paper text sent in one prompt, leaving
	// headroom below the provider's 65k context window.
	TokenBudget = 55_000

	// MinRetryBudget is the floor below which a context-length retry
	// gives up.
	MinRetryBudget = 1_000
)

// EstimateTokens approximates the token count of a string: CJK runes
// tokenize one-to-one, everything else at roughly four characters per
// token. Conservative by design; overruns are handled by the retry
// loop, not by a precise count.
func EstimateTokens(s string) int {
	if s == "" {
		return 0
	}
	cjk, other := 0, 0
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			cjk++
		} else {
			other++
		}
	}
	return cjk + other/4 + 1
}

// ClipToBudget truncates text so its estimated token count fits the
// budget. Truncation is linear in the estimate and cuts on rune
// boundaries.
func ClipToBudget(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	total := EstimateTokens(text)
	if total <= budget {
		return text
	}

	runes := []rune(text)
	cut := len(runes) * budget / total
	if cut >= len(runes) {
		cut = len(runes) - 1
	}
	return string(runes[:cut])
}
