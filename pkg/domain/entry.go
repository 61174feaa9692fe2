package domain

import (
	"bytes"
	"encoding/json"
)

// DictionaryEntry is one parsed lexical entry of the remote dictionary.
// Field order matches the serialized key order.
type DictionaryEntry struct {
	// Headword in Tifinagh script.
	Headword string `json:"mw" bson:"mw"`

	// Transcription is the Latin romanization, without its surrounding brackets.
	Transcription string `json:"tr" bson:"tr"`

	// PartOfSpeech holds abbreviation codes, or the source label when no code matched.
	PartOfSpeech []string `json:"pos" bson:"pos"`

	// Variants are alternative Tifinagh spellings.
	Variants []string `json:"var" bson:"var"`

	Morphology []MorphForm     `json:"morph" bson:"morph"`
	Senses     []Sense         `json:"sens" bson:"sens"`
	Phrases    []RelatedPhrase `json:"rp" bson:"rp"`
}

// Sense is one meaning of an entry, in French and Arabic.
type Sense struct {
	French []string `json:"fr" bson:"fr"`
	Arabic []string `json:"ar" bson:"ar"`
}

// RelatedPhrase is a Tifinagh expression with its two translations.
type RelatedPhrase struct {
	Tifinagh string `json:"zgh" bson:"zgh"`
	French   string `json:"fr" bson:"fr"`
	Arabic   string `json:"ar" bson:"ar"`
}

// MorphForm is one inflected form keyed by its morphology code (or the raw label
// when no code matched). It serializes as a single-key object so that a list of
// forms keeps the order in which they appeared in the source.
type MorphForm struct {
	Label  string   `bson:"label"`
	Values []string `bson:"values"`
}

// MarshalJSON encodes the form as {"<label>": [values...]}.
func (m MorphForm) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	values := m.Values
	if values == nil {
		values = []string{}
	}
	if err := enc.Encode(map[string][]string{m.Label: values}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a single-key object produced by MarshalJSON.
func (m *MorphForm) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for label, values := range raw {
		m.Label = label
		m.Values = values
	}
	return nil
}

// Normalize replaces nil collections with empty ones so they serialize as [].
func (e *DictionaryEntry) Normalize() {
	if e.PartOfSpeech == nil {
		e.PartOfSpeech = []string{}
	}
	if e.Variants == nil {
		e.Variants = []string{}
	}
	if e.Morphology == nil {
		e.Morphology = []MorphForm{}
	}
	if e.Senses == nil {
		e.Senses = []Sense{}
	}
	if e.Phrases == nil {
		e.Phrases = []RelatedPhrase{}
	}
}
