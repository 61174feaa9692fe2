package domain

import "fmt"

// Vocabulary names the controlled vocabulary a label was looked up in.
type Vocabulary string

const (
	MorphologyVocabulary   Vocabulary = "morphology"
	PartOfSpeechVocabulary Vocabulary = "part-of-speech"
)

// AbbreviationDiagnostic records a label that matched no vocabulary entry.
type AbbreviationDiagnostic struct {
	SessionID  string     `json:"session_id" bson:"session_id"`
	Vocabulary Vocabulary `json:"vocabulary" bson:"vocabulary"`
	Label      string     `json:"label" bson:"label"`
}

// Line renders the diagnostic as one line of the unmatched-labels log.
func (d AbbreviationDiagnostic) Line() string {
	switch d.Vocabulary {
	case PartOfSpeechVocabulary:
		return fmt.Sprintf("Session ID: %s - No abbreviation found for part of speech '%s'", d.SessionID, d.Label)
	default:
		return fmt.Sprintf("Session ID: %s - No abbreviation found for morphology label '%s'", d.SessionID, d.Label)
	}
}

// FailureKind classifies why an identifier produced no entry.
type FailureKind string

const (
	FailureHTTP        FailureKind = "http-error"
	FailureNoSection   FailureKind = "content-error-no-section"
	FailureNoResult    FailureKind = "content-error-no-result"
	FailureServerError FailureKind = "server-reported-error"
	FailureParse       FailureKind = "parse-error"
	FailureTaskPanic   FailureKind = "task-panic"
)

// FetchFailure records an identifier that could not be turned into an entry.
type FetchFailure struct {
	SessionID string      `json:"session_id" bson:"session_id"`
	Kind      FailureKind `json:"kind" bson:"kind"`
	Detail    string      `json:"detail" bson:"detail"`
}

// Line renders the failure as one line of the failed-sessions log.
func (f FetchFailure) Line() string {
	return fmt.Sprintf("%s: Session ID: %s - %s", f.Kind, f.SessionID, f.Detail)
}
