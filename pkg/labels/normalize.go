package labels

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Delimiters is the set of characters that separate values inside a field.
const Delimiters = ",/;،؛|"

// Normalize returns the comparison key of a label: canonical decomposition,
// combining marks removed, lowercased and trimmed.
func Normalize(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, text)
	if err != nil {
		// Decomposition never fails on valid input; fall back to the raw text.
		stripped = text
	}
	return strings.TrimSpace(strings.ToLower(stripped))
}

// SplitByDelimiters splits text on any run of delimiter characters, trims
// each segment and drops empty ones.
func SplitByDelimiters(text string) []string {
	fields := strings.FieldsFunc(text, isDelimiter)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(Delimiters, r)
}

// IsTifinagh reports whether r belongs to the Tifinagh Unicode block.
func IsTifinagh(r rune) bool {
	return r >= 0x2D30 && r <= 0x2D7F
}
