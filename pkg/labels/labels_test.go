package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dglai-harvest/pkg/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"case and accents", "  Féminin Pluriel État Libre ", "feminin pluriel etat libre"},
		{"already plain", "nom", "nom"},
		{"empty", "", ""},
		{"arabic untouched", "ماء", "ماء"},
		{"modifier apostrophe kept", "complément dʼobjet direct", "complement dʼobjet direct"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}

	assert.Equal(t, Normalize("Etat d'Annexion"), Normalize("etat d'annexion"))
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, term := range append(MorphologyTerms, PartOfSpeechTerms...) {
		once := Normalize(term.Full)
		assert.Equal(t, once, Normalize(once), term.Full)
	}
}

func TestSplitByDelimiters(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b / c ; d", []string{"a", "b", "c", "d"}},
		{"ماء، مياه؛ سائل", []string{"ماء", "مياه", "سائل"}},
		{",,a,,", []string{"a"}},
		{" ; , ", []string{}},
		{"", []string{}},
		{"ⴰⵎⴰⵏ", []string{"ⴰⵎⴰⵏ"}},
	}
	for _, tt := range tests {
		got := SplitByDelimiters(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		for _, seg := range got {
			assert.NotEmpty(t, seg)
		}
	}
}

func TestIsTifinagh(t *testing.T) {
	assert.True(t, IsTifinagh('ⴰ'))
	assert.True(t, IsTifinagh('⵿'))
	assert.False(t, IsTifinagh('a'))
	assert.False(t, IsTifinagh('م'))
}

func TestMapMorphLabel(t *testing.T) {
	m := NewMapper(nil, nil, nil)
	var diags Diagnostics

	assert.Equal(t, "annex", m.MapMorphLabel("État d'annexion", &diags, "1"))
	assert.Equal(t, "fem_pl_lib", m.MapMorphLabel("Féminin pluriel etat libre", &diags, "1"))
	assert.Empty(t, diags)

	assert.Equal(t, "duel", m.MapMorphLabel("duel", &diags, "42"))
	assert.Equal(t, Diagnostics{{SessionID: "42", Vocabulary: domain.MorphologyVocabulary, Label: "duel"}}, diags)
}

func TestMapPOSLabels(t *testing.T) {
	m := NewMapper(nil, nil, nil)
	var diags Diagnostics

	got := m.MapPOSLabels([]string{"Nom masculin", "verbe d'état", "pluriel"}, &diags, "7")
	assert.Equal(t, []string{"nmasc", "verbe d'état", "pl"}, got)
	assert.Equal(t, Diagnostics{{SessionID: "7", Vocabulary: domain.PartOfSpeechVocabulary, Label: "verbe d'état"}}, diags)

	assert.Empty(t, m.MapPOSLabels(nil, &diags, "7"))
}

func TestMapperNilSink(t *testing.T) {
	m := NewMapper(nil, nil, nil)
	assert.Equal(t, "unknown", m.MapMorphLabel("unknown", nil, "1"))
}

func TestVocabularyFirstTermWins(t *testing.T) {
	v := NewVocabulary([]Term{{"Nom", "n"}, {"nom", "other"}})
	code, ok := v.Lookup("NOM")
	assert.True(t, ok)
	assert.Equal(t, "n", code)
	assert.Len(t, v.Terms(), 2)
}
