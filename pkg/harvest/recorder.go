package harvest

import (
	"time"

	"dglai-harvest/pkg/domain"
)

// Recorder receives run statistics.
type Recorder interface {
	FetchCompleted(elapsed time.Duration)
	EntryHarvested()
	FailureRecorded(kind domain.FailureKind)
	LabelUnmatched(vocab domain.Vocabulary)
	BatchSealed(identifiers int)
	BatchSkipped()
}

type nopRecorder struct{}

func (nopRecorder) FetchCompleted(time.Duration)       {}
func (nopRecorder) EntryHarvested()                    {}
func (nopRecorder) FailureRecorded(domain.FailureKind) {}
func (nopRecorder) LabelUnmatched(domain.Vocabulary)   {}
func (nopRecorder) BatchSealed(int)                    {}
func (nopRecorder) BatchSkipped()                      {}
