package project

import "errors"

// Project-related errors
var (
	// Validation errors
	ErrEmptyTitle       = errors.New("project title cannot be empty")
	ErrTitleTooLong     = errors.New("project title cannot exceed 255 characters")
	ErrInvalidProjectID = errors.New("invalid project ID")

	// Business logic errors
	ErrProjectNotFound  = errors.New("project not found")
	ErrDuplicateProject = errors.New("a project with this title already exists")
)
