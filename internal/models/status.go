package models

import (
	"fmt"
	"strings"
)

// Status is the kanban column a task lives in.
// The set of columns is fixed; the board always renders all five.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusHold       Status = "hold"
)

// statuses is the board order, left to right
var statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusFailed,
	StatusHold,
}

var statusLabels = map[Status]string{
	StatusPending:    "Pending",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusFailed:     "Failed",
	StatusHold:       "Hold",
}

// Statuses returns all columns in board order.
// A new slice is returned on every call so callers may modify it.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// Valid reports whether s is one of the five board columns
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable column title
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Index returns the position of the column on the board, or -1
func (s Status) Index() int {
	for i, st := range statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStatus accepts either the status key ("in_progress") or its
// label ("In Progress"), case-insensitively.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", ErrInvalidStatus
	}

	candidate := Status(strings.ReplaceAll(normalized, " ", "_"))
	if candidate.Valid() {
		return candidate, nil
	}

	for st, label := range statusLabels {
		if strings.EqualFold(label, normalized) {
			return st, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}
