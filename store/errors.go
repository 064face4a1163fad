package store

import "github.com/ogunleye/sprint/internal/apperr"

var (
	// ErrNotProvisioned is returned when the expected buckets are absent,
	// the local equivalent of a "relation does not exist" failure. It is
	// classified as a configuration error so callers show a persistent
	// setup notice rather than a transient one.
	ErrNotProvisioned = &apperr.Error{
		Kind:    apperr.Config,
		Message: "datastore is not set up: run `sprint setup` to provision it",
	}

	// ErrConflict is returned when a compare-and-swap update loses to a
	// concurrent writer. Callers refresh their snapshot and retry.
	ErrConflict = &apperr.Error{
		Kind:    apperr.Conflict,
		Message: "sprint was changed by someone else: refresh and try again",
	}

	ErrSprintNotFound = &apperr.Error{
		Message: "sprint not found",
	}

	errAmbiguousPrefix = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "sprint id prefix %q matches more than one sprint",
	}

	errAlreadyRunning = &apperr.Error{
		Message: "is another sprint instance holding the datastore? Only one process can write at a time",
	}
)
