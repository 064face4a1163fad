package session

import "github.com/ogunleye/sprint/internal/apperr"

var (
	errEmptySubject = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "subject cannot be empty",
	}

	errInvalidDuration = &apperr.Error{
		Kind:    apperr.Validation,
		Message: "duration must be a positive number of minutes",
	}

	errNoActiveSprint = &apperr.Error{
		Message: "no active sprint",
	}

	errNotOwner = &apperr.Error{
		Message: "only the sprint owner can do that",
	}

	errNotPaused = &apperr.Error{
		Message: "sprint is not paused",
	}

	errAlreadyPaused = &apperr.Error{
		Message: "sprint is already paused",
	}
)
