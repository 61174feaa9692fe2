package parser

import (
	"log/slog"
	"strings"

	"dglai-harvest/pkg/domain"
	"dglai-harvest/pkg/labels"
	"dglai-harvest/pkg/markup"
)

var morphologyQuery = markup.Query{Tag: "ul", Class: "titreamz"}

// ParseMorphology reads "<label> : <forms>" items from the first ul.titreamz.
// Items that are not a single label/value pair are skipped. A missing list
// yields an empty result.
func (p *Parser) ParseMorphology(f markup.Fragment, sink labels.DiagnosticSink, sessionID string) []domain.MorphForm {
	list, ok := f.Find(morphologyQuery)
	if !ok {
		return []domain.MorphForm{}
	}

	forms := []domain.MorphForm{}
	for _, item := range list.FindAll(markup.Tag("li")) {
		parts := strings.Split(item.Text(), ":")
		if len(parts) != 2 {
			p.logger.Debug("skipping morphology item",
				slog.String("session_id", sessionID),
				slog.String("text", strings.TrimSpace(item.Text())))
			continue
		}
		value, ok := item.Find(markup.Tag("b"))
		if !ok {
			p.logger.Warn("morphology item has no value span",
				slog.String("session_id", sessionID),
				slog.String("label", strings.TrimSpace(parts[0])))
			continue
		}

		label := strings.TrimSpace(parts[0])
		forms = append(forms, domain.MorphForm{
			Label:  p.mapper.MapMorphLabel(label, sink, sessionID),
			Values: labels.SplitByDelimiters(value.Text()),
		})
	}
	return forms
}
