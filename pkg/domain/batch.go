package domain

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBatchSealed is returned when a sealed batch is modified.
var ErrBatchSealed = errors.New("batch is sealed")

// Batch is a contiguous run of identifiers harvested and persisted as a unit.
// Add methods are safe for concurrent use until the batch is sealed.
type Batch struct {
	Index       int
	Key         string
	RunID       string
	Identifiers []string

	mu          sync.Mutex
	sealed      bool
	entries     map[string]*DictionaryEntry
	diagnostics []AbbreviationDiagnostic
	failures    []FetchFailure
}

// NewBatch creates an open batch for the given identifiers. The key is
// "<first>-<last>".
func NewBatch(index int, runID string, ids []string) *Batch {
	return &Batch{
		Index:       index,
		Key:         BatchKey(ids),
		RunID:       runID,
		Identifiers: ids,
		entries:     make(map[string]*DictionaryEntry, len(ids)),
	}
}

// BatchKey derives the persistence key of a batch from its identifiers.
func BatchKey(ids []string) string {
	if len(ids) == 0 {
		return "empty"
	}
	return fmt.Sprintf("%s-%s", ids[0], ids[len(ids)-1])
}

// AddEntry stores the parsed entry of an identifier.
func (b *Batch) AddEntry(id string, entry *DictionaryEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sealed {
		return ErrBatchSealed
	}
	b.entries[id] = entry
	return nil
}

// AddDiagnostics appends unmatched-label diagnostics.
func (b *Batch) AddDiagnostics(diags ...AbbreviationDiagnostic) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sealed {
		return ErrBatchSealed
	}
	b.diagnostics = append(b.diagnostics, diags...)
	return nil
}

// AddFailure appends a failure record.
func (b *Batch) AddFailure(f FetchFailure) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sealed {
		return ErrBatchSealed
	}
	b.failures = append(b.failures, f)
	return nil
}

// Seal freezes the batch. Sealing twice is a no-op.
func (b *Batch) Seal() {
	b.mu.Lock()
	b.sealed = true
	b.mu.Unlock()
}

// Sealed reports whether the batch has been sealed.
func (b *Batch) Sealed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sealed
}

// Entries returns the entries keyed by identifier. The returned map must not be modified.
func (b *Batch) Entries() map[string]*DictionaryEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries
}

// OrderedEntries returns the entries in identifier order, skipping identifiers
// that produced none.
func (b *Batch) OrderedEntries() []IdentifiedEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]IdentifiedEntry, 0, len(b.entries))
	for _, id := range b.Identifiers {
		if e, ok := b.entries[id]; ok {
			out = append(out, IdentifiedEntry{SessionID: id, Entry: e})
		}
	}
	return out
}

// Diagnostics returns a copy of the unmatched-label diagnostics.
func (b *Batch) Diagnostics() []AbbreviationDiagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]AbbreviationDiagnostic(nil), b.diagnostics...)
}

// Failures returns a copy of the failure records.
func (b *Batch) Failures() []FetchFailure {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]FetchFailure(nil), b.failures...)
}

// IdentifiedEntry pairs an entry with the identifier it was harvested from.
type IdentifiedEntry struct {
	SessionID string
	Entry     *DictionaryEntry
}
