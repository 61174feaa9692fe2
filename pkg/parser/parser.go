package parser

import (
	"log/slog"

	"dglai-harvest/pkg/domain"
	"dglai-harvest/pkg/labels"
	"dglai-harvest/pkg/markup"
)

// Parser turns a dictionary result fragment into a DictionaryEntry.
type Parser struct {
	mapper *labels.Mapper
	logger *slog.Logger
}

// New returns a parser using mapper for label lookups.
func New(mapper *labels.Mapper, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if mapper == nil {
		mapper = labels.NewMapper(nil, nil, logger)
	}
	return &Parser{
		mapper: mapper,
		logger: logger.With("component", "parser"),
	}
}

// ParseEntry extracts a complete entry. Only a malformed headword block is an
// error; missing optional sections produce empty collections. Unmatched labels
// are reported to sink.
func (p *Parser) ParseEntry(f markup.Fragment, sessionID string, sink labels.DiagnosticSink) (*domain.DictionaryEntry, error) {
	head, err := ParseHeadwordBlock(f)
	if err != nil {
		return nil, err
	}

	entry := &domain.DictionaryEntry{
		Headword:      head.Headword,
		Transcription: head.Transcription,
		PartOfSpeech:  p.mapper.MapPOSLabels(head.POSLabels, sink, sessionID),
		Variants:      head.Variants,
		Morphology:    p.ParseMorphology(f, sink, sessionID),
		Senses:        ParseSenses(f),
		Phrases:       ParseRelatedPhrases(f),
	}
	entry.Normalize()
	return entry, nil
}
