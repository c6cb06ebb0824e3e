package shopkit

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// Callers distinguish them with errors.Is().
var (
	// ErrEmptyName indicates the user entered an empty app name.
	ErrEmptyName = errors.New("app name cannot be empty")

	// ErrInvalidName indicates the entered name is not a valid package name.
	ErrInvalidName = errors.New("invalid package name")

	// ErrInvalidConfig indicates the application configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedAuthMethod indicates the requested database authentication method is unknown.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrPrerequisiteMissing indicates a tool required by setup is not installed.
	ErrPrerequisiteMissing = errors.New("prerequisite missing")

	// ErrPromptCancelled indicates the user abandoned an interactive prompt.
	ErrPromptCancelled = errors.New("prompt cancelled")

	// ErrWebhookUnauthorized indicates a webhook request failed HMAC verification.
	ErrWebhookUnauthorized = errors.New("webhook signature verification failed")
)

// usageErrorMarkers are message fragments cobra produces for command-line misuse.
var usageErrorMarkers = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
}

// ExitCodeForError returns the process exit code for err.
// Name errors and unclassified errors map to ExitGeneralError.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrPromptCancelled):
		return ExitSuccess
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrInvalidName):
		return ExitGeneralError
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrPrerequisiteMissing):
		return ExitPrerequisiteMissing
	}

	msg := err.Error()
	for _, marker := range usageErrorMarkers {
		if strings.Contains(msg, marker) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
