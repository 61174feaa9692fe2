package filter

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Filter decides whether a session identifier should be harvested
type Filter interface {
	ShouldKeep(ctx context.Context, sessionID string) (bool, error)
}

// FilterIdentifiers applies all filters to a list of identifiers, keeping order
func FilterIdentifiers(ctx context.Context, ids []string, filters ...Filter) ([]string, error) {
	filtered := make([]string, 0, len(ids))

	for _, id := range ids {
		keep := true
		for _, f := range filters {
			shouldKeep, err := f.ShouldKeep(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("filter error for session %s: %w", id, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, id)
		}
	}

	return filtered, nil
}

// NumericFilter drops identifiers that are not made of decimal digits
type NumericFilter struct{}

// NewNumericFilter creates a new numeric filter
func NewNumericFilter() *NumericFilter {
	return &NumericFilter{}
}

// ShouldKeep returns false for empty or non-numeric identifiers
func (f *NumericFilter) ShouldKeep(ctx context.Context, sessionID string) (bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return false, nil
	}
	for _, r := range sessionID {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false, nil
		}
	}
	return true, nil
}

// AlreadyHarvestedFilter drops identifiers present in the provided set
type AlreadyHarvestedFilter struct {
	harvested map[string]bool
}

// NewAlreadyHarvestedFilter creates a new already-harvested filter
func NewAlreadyHarvestedFilter(harvested map[string]bool) *AlreadyHarvestedFilter {
	return &AlreadyHarvestedFilter{
		harvested: harvested,
	}
}

// ShouldKeep returns false if the identifier is already in the set
func (f *AlreadyHarvestedFilter) ShouldKeep(ctx context.Context, sessionID string) (bool, error) {
	return !f.harvested[sessionID], nil
}
