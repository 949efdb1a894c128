package deck

import (
	"fmt"
	"strings"

	"paperdeck/internal/summarize"
)

// Slide is one paper's worth of deck content.
type Slide struct {
	Title     string
	Num       int // 1-based slide number in deck order
	Summary   summarize.Summary
	Reference string // formatted citation line, empty if unmatched
}

// DefaultTemplate is the slide template used when the caller supplies
// none. One template instance renders one slide.
const DefaultTemplate = `## {{NUM}}. {{TITLE}}

Phenomenon: {{PHENOMENON}}

Problems:
{{PROBLEMS}}

Mechanisms:
{{MECHANISMS}}

Results:
{{RESULTS}}

Reference: {{REFERENCE}}
`

// TokensFor builds the substitution list for one slide.
func TokensFor(s Slide) Replacements {
	return Replacements{
		{Token: "{{NUM}}", Value: fmt.Sprintf("%d", s.Num)},
		{Token: "{{TITLE}}", Value: s.Title},
		{Token: "{{PHENOMENON}}", Value: s.Summary.Phenomenon},
		{Token: "{{PROBLEMS}}", Value: bulletList(s.Summary.Problem)},
		{Token: "{{MECHANISMS}}", Value: bulletList(s.Summary.Mechanism)},
		{Token: "{{RESULTS}}", Value: resultLines(s.Summary.Result)},
		{Token: "{{REFERENCE}}", Value: s.Reference},
	}
}

// Render substitutes one slide into the template. The template's lines
// are treated as the run sequence, mirroring how presentation text
// frames split content into runs.
func Render(template string, s Slide) string {
	runs := strings.Split(template, "\n")
	return strings.Join(TokensFor(s).Apply(runs), "\n")
}

// RenderDeck renders all slides and joins them with a blank-line
// separator.
func RenderDeck(template string, slides []Slide) string {
	rendered := make([]string, len(slides))
	for i, s := range slides {
		rendered[i] = strings.TrimRight(Render(template, s), "\n")
	}
	return strings.Join(rendered, "\n\n")
}

// bulletList renders list items one per line, prefixed with "- ".
func bulletList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// resultLines flattens a result block the way the slide body lays it
// out: datasets first, then per-metric performance lines, then any
// free-form lines.
func resultLines(r summarize.ResultBlock) string {
	var lines []string
	if len(r.Datasets) > 0 {
		lines = append(lines, "- Datasets: "+strings.Join(r.Datasets, ", "))
	}
	for _, p := range r.Performance {
		lines = append(lines, "- "+p)
	}
	for _, l := range r.Lines {
		lines = append(lines, "- "+l)
	}
	if len(lines) == 0 {
		return "-"
	}
	return strings.Join(lines, "\n")
}
