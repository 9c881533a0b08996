package meeting

import "errors"

// Meeting-related errors
var (
	// Validation errors
	ErrEmptyTitle       = errors.New("meeting title cannot be empty")
	ErrTitleTooLong     = errors.New("meeting title cannot exceed 255 characters")
	ErrMissingDate      = errors.New("meeting date is required")
	ErrEmptySlug        = errors.New("meeting slug cannot be empty")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidMeetingID = errors.New("invalid meeting ID")

	// Business logic errors
	ErrProjectNotFound = errors.New("project not found")
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrDuplicateSlug   = errors.New("a meeting with this slug already exists")
)
