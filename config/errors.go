package config

import "github.com/ogunleye/sprint/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
		Kind:    apperr.Config,
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
		Kind:    apperr.Config,
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
		Kind:    apperr.Config,
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
		Kind:    apperr.Config,
	}

	errMissingUserID = &apperr.Error{
		Message: "user id is missing from the config file",
		Kind:    apperr.Config,
	}

	errInvalidUserID = &apperr.Error{
		Message: "user id must be a valid UUID, got %q",
		Kind:    apperr.Config,
	}

	errInvalidDefaultMinutes = &apperr.Error{
		Message: "default sprint duration must be a positive number of minutes, got %d",
		Kind:    apperr.Config,
	}

	errInvalidPreset = &apperr.Error{
		Message: "sprint presets must be positive numbers of minutes, got %d",
		Kind:    apperr.Config,
	}
)
