package domain

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryEntryJSONKeys(t *testing.T) {
	entry := &DictionaryEntry{
		Headword:      "ⴰⵎⴰⵏ",
		Transcription: "aman",
		PartOfSpeech:  []string{"nmasc", "pl"},
		Morphology: []MorphForm{
			{Label: "annex", Values: []string{"ⵡⴰⵎⴰⵏ"}},
			{Label: "pl_lib", Values: nil},
		},
		Senses:  []Sense{{French: []string{"eau"}, Arabic: []string{"ماء"}}},
		Phrases: []RelatedPhrase{{Tifinagh: "ⴰⵎⴰⵏ ⵏ ⵓⴳⴼⴼⵓ", French: "eau de pluie", Arabic: "ماء المطر"}},
	}
	entry.Normalize()

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	want := `{"mw":"ⴰⵎⴰⵏ","tr":"aman","pos":["nmasc","pl"],"var":[],` +
		`"morph":[{"annex":["ⵡⴰⵎⴰⵏ"]},{"pl_lib":[]}],` +
		`"sens":[{"fr":["eau"],"ar":["ماء"]}],` +
		`"rp":[{"zgh":"ⴰⵎⴰⵏ ⵏ ⵓⴳⴼⴼⵓ","fr":"eau de pluie","ar":"ماء المطر"}]}`
	assert.Equal(t, want, string(data))
}

func TestMorphFormRoundTrip(t *testing.T) {
	var got MorphForm
	require.NoError(t, json.Unmarshal([]byte(`{"accomp":["ⵢⵓⵛⴽⴰ","ⵢⵓⵛⴽⵉ"]}`), &got))
	assert.Equal(t, MorphForm{Label: "accomp", Values: []string{"ⵢⵓⵛⴽⴰ", "ⵢⵓⵛⴽⵉ"}}, got)
}

func TestDiagnosticLines(t *testing.T) {
	morph := AbbreviationDiagnostic{SessionID: "143752", Vocabulary: MorphologyVocabulary, Label: "duel"}
	pos := AbbreviationDiagnostic{SessionID: "143752", Vocabulary: PartOfSpeechVocabulary, Label: "verbe d'état"}
	fail := FetchFailure{SessionID: "9", Kind: FailureHTTP, Detail: "Status code: 404"}

	assert.Equal(t, "Session ID: 143752 - No abbreviation found for morphology label 'duel'", morph.Line())
	assert.Equal(t, "Session ID: 143752 - No abbreviation found for part of speech 'verbe d'état'", pos.Line())
	assert.Equal(t, "http-error: Session ID: 9 - Status code: 404", fail.Line())
}

func TestBatchKey(t *testing.T) {
	assert.Equal(t, "1000-1999", BatchKey([]string{"1000", "1500", "1999"}))
	assert.Equal(t, "7-7", BatchKey([]string{"7"}))
	assert.Equal(t, "empty", BatchKey(nil))
}

func TestBatchConcurrentAppendAndSeal(t *testing.T) {
	ids := []string{"1", "2", "3", "4"}
	b := NewBatch(0, "run", ids)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			assert.NoError(t, b.AddEntry(id, &DictionaryEntry{Headword: id}))
			assert.NoError(t, b.AddDiagnostics(AbbreviationDiagnostic{SessionID: id}))
		}(id)
	}
	wg.Wait()
	require.NoError(t, b.AddFailure(FetchFailure{SessionID: "5", Kind: FailureHTTP}))

	b.Seal()
	assert.True(t, b.Sealed())
	assert.ErrorIs(t, b.AddEntry("9", &DictionaryEntry{}), ErrBatchSealed)
	assert.ErrorIs(t, b.AddFailure(FetchFailure{}), ErrBatchSealed)
	assert.ErrorIs(t, b.AddDiagnostics(AbbreviationDiagnostic{}), ErrBatchSealed)

	assert.Len(t, b.Entries(), 4)
	assert.Len(t, b.Diagnostics(), 4)
	assert.Len(t, b.Failures(), 1)

	ordered := b.OrderedEntries()
	require.Len(t, ordered, 4)
	for i, ie := range ordered {
		assert.Equal(t, ids[i], ie.SessionID)
	}
}
