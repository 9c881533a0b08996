package cli

import (
	"errors"
	"strconv"

	"github.com/thenoetrevino/tablero/internal/api"
)

// StatusError carries the process exit code for a failed command
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *StatusError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

// classify maps an error to its machine-readable code, exit code and hint
func classify(err error) (string, int, string) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return "ERROR", ExitError, ""
	}
	switch apiErr.Kind {
	case api.KindValidation:
		return "VALIDATION_ERROR", ExitValidation, ""
	case api.KindUnauthorized:
		return "UNAUTHORIZED", ExitUnauthorized, "Run 'tablero login --token <token>' or set TABLERO_TOKEN"
	case api.KindNotFound:
		return "NOT_FOUND", ExitNotFound, ""
	case api.KindConflict:
		return "CONFLICT", ExitConflict, ""
	case api.KindTransport:
		return "CONNECTION_ERROR", ExitError, "Check that the server is running ('tablero serve') and client.server_url is correct"
	case api.KindServer:
		if apiErr.StatusCode >= 200 && apiErr.StatusCode < 300 {
			return "MALFORMED_RESPONSE", ExitDataErr, ""
		}
		return "SERVER_ERROR", ExitError, ""
	default:
		return "ERROR", ExitError, ""
	}
}

// Fail reports err through the formatter and returns the matching *StatusError
func Fail(f *OutputFormatter, err error) error {
	code, exit, suggestion := classify(err)
	_ = f.ErrorWithSuggestion(code, api.Message(err), suggestion)
	return &StatusError{Code: exit, Err: err}
}

// UsageError reports a usage problem and returns an ExitUsage error
func UsageError(f *OutputFormatter, message, suggestion string) error {
	_ = f.ErrorWithSuggestion("USAGE_ERROR", message, suggestion)
	return &StatusError{Code: ExitUsage, Err: errors.New(message)}
}

// ValidationError reports bad input detected locally
func ValidationError(f *OutputFormatter, message, suggestion string) error {
	_ = f.ErrorWithSuggestion("VALIDATION_ERROR", message, suggestion)
	return &StatusError{Code: ExitValidation, Err: errors.New(message)}
}
