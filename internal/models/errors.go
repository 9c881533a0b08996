package models

import "errors"

// Domain-level errors shared by the client and the server
var (
	// ErrInvalidStatus indicates a value outside the five board columns
	ErrInvalidStatus = errors.New("invalid task status")
)
