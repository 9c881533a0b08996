package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	meetingservice "github.com/thenoetrevino/tablero/internal/services/meeting"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Error string `json:"error"`
}

var (
	validationErrors = []error{
		taskservice.ErrEmptyTitle,
		taskservice.ErrTitleTooLong,
		taskservice.ErrInvalidTaskID,
		taskservice.ErrInvalidStatus,
		taskservice.ErrInvalidSerial,
		taskservice.ErrInvalidProjectID,
		taskservice.ErrInvalidMeetingID,
		taskservice.ErrMeetingProjectMismatch,
		projectservice.ErrEmptyTitle,
		projectservice.ErrTitleTooLong,
		projectservice.ErrInvalidProjectID,
		meetingservice.ErrEmptyTitle,
		meetingservice.ErrTitleTooLong,
		meetingservice.ErrMissingDate,
		meetingservice.ErrEmptySlug,
		meetingservice.ErrInvalidProjectID,
		meetingservice.ErrInvalidMeetingID,
	}

	notFoundErrors = []error{
		taskservice.ErrTaskNotFound,
		taskservice.ErrProjectNotFound,
		taskservice.ErrMeetingNotFound,
		projectservice.ErrProjectNotFound,
		meetingservice.ErrProjectNotFound,
		meetingservice.ErrMeetingNotFound,
	}

	conflictErrors = []error{
		projectservice.ErrDuplicateProject,
		meetingservice.ErrDuplicateSlug,
	}
)

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case isAny(err, validationErrors):
		return http.StatusBadRequest
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// errorHandler renders every error as {"error": msg}.
// Internal errors are logged and reported without detail.
func errorHandler(metrics *Metrics) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusFor(err)
		msg := err.Error()
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if m, ok := httpErr.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			slog.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err)
			msg = http.StatusText(code)
		}
		metrics.RequestErrors.Add(1)

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, errorResponse{Error: msg})
		}
		if writeErr != nil {
			slog.Error("failed to write error response", "error", writeErr)
		}
	}
}
