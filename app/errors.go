package app

import "github.com/ogunleye/sprint/internal/apperr"

var (
	errSprintIDRequired = &apperr.Error{
		Message: "a sprint id is required: run `sprint feed` to list active sprints",
		Kind:    apperr.Validation,
	}

	errSprintOver = &apperr.Error{
		Message: "that sprint has already ended",
		Kind:    apperr.Validation,
	}
)
