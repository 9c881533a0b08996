package board

import (
	"log/slog"
	"sync"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Store holds the authoritative local view of the board.
// Reads hand out the current column slices; writes swap whole columns so a
// reader never observes a half-applied move.
type Store struct {
	mu sync.RWMutex

	// board maps each status to its ordered tasks
	board Board

	// generation increments on every wholesale LoadBoard/Reset
	generation uint64

	logger *slog.Logger
}

// NewStore creates an empty store
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		board:  make(Board),
		logger: logger,
	}
}

// LoadBoard replaces the entire board with freshly fetched data.
// Serials are trusted as sent; a broken ordering is logged, not repaired.
// Keys that are not board columns are dropped.
func (s *Store) LoadBoard(data map[models.Status][]*models.Task) {
	next := make(Board, len(data))
	for status, tasks := range data {
		if !status.Valid() {
			s.logger.Warn("dropping unknown status column", "status", status, "tasks", len(tasks))
			continue
		}
		if tasks == nil {
			tasks = []*models.Task{}
		}
		next[status] = tasks
	}

	if issues := next.SerialIssues(); len(issues) > 0 {
		s.logger.Warn("board loaded with non-contiguous serials",
			"issues", len(issues),
			"first_status", issues[0].Status,
			"first_task_id", issues[0].TaskID)
	}

	s.mu.Lock()
	s.board = next
	s.generation++
	s.mu.Unlock()
}

// Column returns a copy of the ordered tasks for status.
// It never fails: unknown or empty columns yield an empty slice.
func (s *Store) Column(status models.Status) []*models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := s.board.Column(status)
	out := make([]*models.Task, len(tasks))
	copy(out, tasks)
	return out
}

// ReplaceColumns merges column replacements into the board.
// Untouched columns keep their existing slices.
func (s *Store) ReplaceColumns(patch Board) {
	if len(patch) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.board.Clone()
	for status, tasks := range patch {
		if tasks == nil {
			tasks = []*models.Task{}
		}
		next[status] = tasks
	}
	s.board = next
}

// Snapshot returns the current board.
// The returned map is never written to by the store afterwards, but callers
// must not modify it or its slices.
func (s *Store) Snapshot() Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Generation returns a counter that changes whenever the board is reloaded
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Find locates a task on the current board
func (s *Store) Find(taskID int) (models.Status, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Find(taskID)
}

// TotalTaskCount returns the number of tasks across all columns
func (s *Store) TotalTaskCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.TaskCount()
}

// Reset empties the board, e.g. on logout or project switch
func (s *Store) Reset() {
	s.mu.Lock()
	s.board = make(Board)
	s.generation++
	s.mu.Unlock()
}
