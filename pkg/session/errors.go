package session

import (
	"errors"
	"fmt"

	"dglai-harvest/pkg/domain"
)

// FetchError is returned by Fetch for every identifier that yields no result fragment.
type FetchError struct {
	SessionID string
	Kind      domain.FailureKind
	Detail    string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("session %s: %s: %s", e.SessionID, e.Kind, e.Detail)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Failure converts the error into the record kept in a batch.
func (e *FetchError) Failure() domain.FetchFailure {
	return domain.FetchFailure{
		SessionID: e.SessionID,
		Kind:      e.Kind,
		Detail:    e.Detail,
	}
}

// AsFetchError reports whether err is, or wraps, a *FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
