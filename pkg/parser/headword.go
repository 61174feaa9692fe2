package parser

import (
	"errors"
	"fmt"
	"strings"

	"dglai-harvest/pkg/labels"
	"dglai-harvest/pkg/markup"
)

// ErrMalformedHeadword is returned when the headword block is missing or incomplete.
var ErrMalformedHeadword = errors.New("malformed headword block")

var headwordQuery = markup.Query{Tag: "h5", Class: "titreamz"}

// conjunction separates multiple grammatical categories in the raw label.
const conjunction = " et "

// Headword is the content of the headword block before label mapping.
type Headword struct {
	Headword      string
	Transcription string
	// POSLabels are the raw grammatical category labels, in source order.
	POSLabels []string
	Variants  []string
}

// ParseHeadwordBlock extracts the headword, its transcription, raw part of
// speech labels and variant spellings from the h5.titreamz block.
func ParseHeadwordBlock(f markup.Fragment) (Headword, error) {
	block, ok := f.Find(headwordQuery)
	if !ok {
		return Headword{}, fmt.Errorf("%w: no h5.titreamz", ErrMalformedHeadword)
	}
	bold, ok := block.Find(markup.Tag("b"))
	if !ok {
		return Headword{}, fmt.Errorf("%w: no headword span", ErrMalformedHeadword)
	}
	italic, ok := block.Find(markup.Tag("i"))
	if !ok {
		return Headword{}, fmt.Errorf("%w: no transcription span", ErrMalformedHeadword)
	}

	headword := bold.Text()
	if strings.TrimSpace(headword) == "" {
		return Headword{}, fmt.Errorf("%w: empty headword", ErrMalformedHeadword)
	}
	rawTranscription := italic.Text()

	remainder := block.Text()
	remainder = strings.Replace(remainder, headword, "", 1)
	if rawTranscription != "" {
		remainder = strings.Replace(remainder, rawTranscription, "", 1)
	}
	remainder = strings.TrimSpace(remainder)

	posText, variantText := remainder, ""
	if i := strings.IndexFunc(remainder, labels.IsTifinagh); i >= 0 {
		posText, variantText = remainder[:i], remainder[i:]
	}

	return Headword{
		Headword:      strings.TrimSpace(headword),
		Transcription: cleanTranscription(rawTranscription),
		POSLabels:     splitConjunction(posText),
		Variants:      labels.SplitByDelimiters(variantText),
	}, nil
}

func cleanTranscription(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return strings.TrimSpace(s)
}

func splitConjunction(s string) []string {
	parts := strings.Split(strings.TrimSpace(s), conjunction)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
