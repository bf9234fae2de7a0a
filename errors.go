package botlists

import (
	"errors"
	"fmt"
)

// Sentinel errors for construction-time validation.
var (
	// ErrIntervalTooShort is returned when an autopost interval is below
	// the smallest interval the configured services allow.
	ErrIntervalTooShort = errors.New("autopost interval below service minimum")

	// ErrUnknownWebsite is returned for a website tag outside the
	// supported set.
	ErrUnknownWebsite = errors.New("unknown website")

	// ErrNotConfigured is returned when an operation is addressed directly
	// at a website whose token was not supplied.
	ErrNotConfigured = errors.New("website not configured")
)

// ProviderError wraps a failure from one backend during fan-out, naming the
// website and operation it came from. The underlying typed error is
// preserved through Unwrap, so the core predicates keep working.
type ProviderError struct {
	Website Website
	Op      string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Website, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
