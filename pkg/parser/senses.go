package parser

import (
	"strings"

	"dglai-harvest/pkg/domain"
	"dglai-harvest/pkg/labels"
	"dglai-harvest/pkg/markup"
)

// senseMarker identifies list items that carry a meaning.
const senseMarker = "Sens"

// ParseSenses collects one sense per list item mentioning "Sens" that has at
// least three text runs: the marker, the French text and the Arabic text.
func ParseSenses(f markup.Fragment) []domain.Sense {
	senses := []domain.Sense{}
	for _, item := range f.FindWithin(markup.Tag("ul"), markup.Tag("li")) {
		if !strings.Contains(item.Text(), senseMarker) {
			continue
		}
		runs := item.TextRuns()
		if len(runs) < 3 {
			continue
		}
		senses = append(senses, domain.Sense{
			French: labels.SplitByDelimiters(runs[1]),
			Arabic: labels.SplitByDelimiters(runs[2]),
		})
	}
	return senses
}
