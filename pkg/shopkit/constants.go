package shopkit

import "time"

// Exit codes for semantic error classification.
//   - 0: Success, or the user cancelled at the confirmation gate
//   - 1: General error (empty or invalid name, unexpected failure, panic)
//   - 2: CLI usage error
//   - 10+: Application-specific errors
const (
	ExitSuccess             = 0  // Command completed or was cancelled by the user
	ExitGeneralError        = 1  // Invalid input or unclassified error
	ExitUsageError          = 2  // CLI usage error (unknown flag, wrong arg count)
	ExitConfigError         = 10 // Invalid application configuration
	ExitConnectionError     = 11 // Failed to connect to the database
	ExitPrerequisiteMissing = 12 // Required tool (node, npm, yarn) is missing
)

const (
	// DefaultScope is the package scope the template ships with.
	DefaultScope = "@myapp"

	// ManifestPath is the manifest whose name field carries the current scope.
	ManifestPath = "packages/core/package.json"

	// DefaultAbortDelay bounds how long a request may take before the response is aborted.
	DefaultAbortDelay = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 30 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MinNodeMajorVersion is the lowest Node.js major version the template supports.
	MinNodeMajorVersion = 18
)
