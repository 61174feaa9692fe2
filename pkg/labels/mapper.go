package labels

import (
	"log/slog"

	"dglai-harvest/pkg/domain"
)

// DiagnosticSink collects unmatched-label diagnostics.
type DiagnosticSink interface {
	Add(d domain.AbbreviationDiagnostic)
}

// Diagnostics is a DiagnosticSink backed by a slice. It is not safe for
// concurrent use; each task owns its own.
type Diagnostics []domain.AbbreviationDiagnostic

// Add appends d.
func (d *Diagnostics) Add(diag domain.AbbreviationDiagnostic) {
	*d = append(*d, diag)
}

// Mapper maps free-text labels to abbreviation codes.
type Mapper struct {
	morphology   *Vocabulary
	partOfSpeech *Vocabulary
	logger       *slog.Logger
}

// NewMapper returns a mapper over the given vocabularies. Nil vocabularies
// default to the dictionary tables.
func NewMapper(morphology, partOfSpeech *Vocabulary, logger *slog.Logger) *Mapper {
	if morphology == nil {
		morphology = MorphologyVocabulary
	}
	if partOfSpeech == nil {
		partOfSpeech = PartOfSpeechVocabulary
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{
		morphology:   morphology,
		partOfSpeech: partOfSpeech,
		logger:       logger.With("component", "labels"),
	}
}

// MapMorphLabel returns the morphology code for label, or label itself after
// recording a diagnostic.
func (m *Mapper) MapMorphLabel(label string, sink DiagnosticSink, sessionID string) string {
	if code, ok := m.morphology.Lookup(label); ok {
		return code
	}
	m.miss(domain.MorphologyVocabulary, label, sink, sessionID)
	return label
}

// MapPOSLabels maps each label independently, preserving order and length.
func (m *Mapper) MapPOSLabels(labels []string, sink DiagnosticSink, sessionID string) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		if code, ok := m.partOfSpeech.Lookup(label); ok {
			out[i] = code
			continue
		}
		m.miss(domain.PartOfSpeechVocabulary, label, sink, sessionID)
		out[i] = label
	}
	return out
}

func (m *Mapper) miss(vocab domain.Vocabulary, label string, sink DiagnosticSink, sessionID string) {
	m.logger.Debug("no abbreviation found",
		slog.String("session_id", sessionID),
		slog.String("vocabulary", string(vocab)),
		slog.String("label", label))
	if sink != nil {
		sink.Add(domain.AbbreviationDiagnostic{
			SessionID:  sessionID,
			Vocabulary: vocab,
			Label:      label,
		})
	}
}
