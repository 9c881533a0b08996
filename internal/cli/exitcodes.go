package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: server errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task, project or meeting not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Malformed server responses or unreadable input.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid status values, empty titles, or any input the
	// server rejected as invalid.
	ExitValidation = 5

	// ExitUnauthorized indicates the server rejected the bearer token.
	ExitUnauthorized = 6

	// ExitConflict indicates the resource already exists.
	ExitConflict = 7
)
