package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrTitleTooLong     = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidSerial    = errors.New("invalid serial: must be >= 1")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidMeetingID = errors.New("invalid meeting ID")

	// Business logic errors
	ErrTaskNotFound           = errors.New("task not found")
	ErrProjectNotFound        = errors.New("project not found")
	ErrMeetingNotFound        = errors.New("meeting not found")
	ErrMeetingProjectMismatch = errors.New("meeting belongs to a different project")
)
