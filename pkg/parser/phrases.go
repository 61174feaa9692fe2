package parser

import (
	"strings"

	"dglai-harvest/pkg/domain"
	"dglai-harvest/pkg/markup"
)

var phraseListQuery = markup.Query{Tag: "ul", NotClass: "titreamz"}

// ParseRelatedPhrases collects expressions listed outside the morphology list.
// A phrase is kept only when its Tifinagh text and both translations are present.
func ParseRelatedPhrases(f markup.Fragment) []domain.RelatedPhrase {
	phrases := []domain.RelatedPhrase{}
	for _, item := range f.FindWithin(phraseListQuery, markup.Tag("li")) {
		bold, ok := item.Find(markup.Tag("b"))
		if !ok {
			continue
		}
		tifinagh := strings.TrimSpace(bold.Text())
		translations := item.TextAfter("br")
		if tifinagh == "" || len(translations) < 2 {
			continue
		}
		if translations[0] == "" || translations[1] == "" {
			continue
		}
		phrases = append(phrases, domain.RelatedPhrase{
			Tifinagh: tifinagh,
			French:   translations[0],
			Arabic:   translations[1],
		})
	}
	return phrases
}
