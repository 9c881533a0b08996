package boardsync

import "github.com/thenoetrevino/tablero/internal/models"

// OutcomeKind says how a move's sync request ended
type OutcomeKind int

const (
	// OutcomeConfirmed means the server accepted the latest move of a task
	OutcomeConfirmed OutcomeKind = iota
	// OutcomeSuperseded means a newer move of the same task was issued
	// before this response arrived; the response was ignored
	OutcomeSuperseded
	// OutcomeFailed means the latest move of a task was rejected or lost
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeSuperseded:
		return "superseded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports the resolution of one move request
type Outcome struct {
	Kind   OutcomeKind
	Seq    uint64
	TaskID int
	Status models.Status
	Serial int

	// Err is set for failed and for superseded-with-error responses
	Err error

	// RolledBack is true when a failure put the task back on the board
	// at its last confirmed placement
	RolledBack bool
}
