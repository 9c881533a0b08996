package board

import "github.com/thenoetrevino/tablero/internal/models"

// MoveResult is the outcome of a single reorder computation.
// Patch holds only the affected columns: one for a same-column move, two
// for a cross-column move. Apply it with Store.ReplaceColumns.
type MoveResult struct {
	Patch Board

	// Task is the moved task as placed in the destination column
	Task *models.Task

	// Previous is the task exactly as it was before the move
	Previous *models.Task

	From      models.Status
	To        models.Status
	FromIndex int
	ToIndex   int

	// Changed is false when the move leaves both order and serials as they were
	Changed bool
}

type moveConfig struct {
	renumber bool
}

// MoveOption tweaks how Move and Place compute their patch
type MoveOption func(*moveConfig)

// WithRenumber rewrites every serial in the affected columns to index+1.
// Without it only the moved task's serial is updated, and the tasks it
// displaced keep their old serials until the next full fetch.
func WithRenumber() MoveOption {
	return func(c *moveConfig) {
		c.renumber = true
	}
}

// Move computes the result of dragging taskID out of from and dropping it
// into to at toIndex. toIndex is clamped to [0, len(to)] where len(to) is
// measured after the task has been removed. Same-column and cross-column
// moves take the same path.
//
// The board is not modified. ok is false when taskID is not in from; that
// is a UI race (the task was removed elsewhere), not an error. ok is also
// false when to is not a board column.
func Move(b Board, taskID int, from, to models.Status, toIndex int, opts ...MoveOption) (MoveResult, bool) {
	if !to.Valid() {
		return MoveResult{}, false
	}
	cfg := applyOptions(opts)

	fromIdx := indexOf(b[from], taskID)
	if fromIdx < 0 {
		return MoveResult{}, false
	}
	previous := b[from][fromIdx]

	fromList, toList, idx := detach(b, from, fromIdx, to, toIndex)

	moved := previous.Clone()
	moved.Status = to
	moved.Serial = idx + 1

	patch := Board{to: insertAt(toList, idx, moved)}
	if from != to {
		patch[from] = fromList
	}
	if cfg.renumber {
		for status, tasks := range patch {
			patch[status] = Renumber(tasks)
		}
		moved = patch[to][idx]
	}

	return MoveResult{
		Patch:     patch,
		Task:      moved,
		Previous:  previous,
		From:      from,
		To:        to,
		FromIndex: fromIdx,
		ToIndex:   idx,
		Changed:   from != to || fromIdx != idx || !sameOrdering(b[from], patch[to]),
	}, true
}

// Place puts task into task.Status at index, removing any existing copy of
// the same task ID from wherever it currently sits. The task's serial is
// kept as given. It returns the patch and the clamped index.
//
// Place is the inverse of Move: feeding it the MoveResult's Previous task
// and FromIndex undoes the move.
func Place(b Board, task *models.Task, index int, opts ...MoveOption) (Board, int) {
	cfg := applyOptions(opts)

	var fromList, toList []*models.Task
	var idx int
	patch := Board{}

	if current, currentIdx, ok := b.Find(task.ID); ok {
		fromList, toList, idx = detach(b, current, currentIdx, task.Status, index)
		if current != task.Status {
			patch[current] = fromList
		}
	} else {
		toList = b.Column(task.Status)
		idx = clamp(index, 0, len(toList))
	}

	patch[task.Status] = insertAt(toList, idx, task)
	if cfg.renumber {
		for status, tasks := range patch {
			patch[status] = Renumber(tasks)
		}
	}
	return patch, idx
}

// Renumber returns a copy of tasks with serial = index+1.
// Tasks already carrying the right serial are shared, the rest are cloned.
func Renumber(tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, len(tasks))
	for i, t := range tasks {
		if t.Serial == i+1 {
			out[i] = t
			continue
		}
		c := t.Clone()
		c.Serial = i + 1
		out[i] = c
	}
	return out
}

func applyOptions(opts []MoveOption) moveConfig {
	var cfg moveConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// detach removes the task at fromIdx and returns the source column without
// it, the destination column the task will be inserted into, and the
// clamped insertion index. For a same-column move both lists are the same.
func detach(b Board, from models.Status, fromIdx int, to models.Status, toIndex int) ([]*models.Task, []*models.Task, int) {
	source := b.Column(from)
	fromList := make([]*models.Task, 0, len(source)-1)
	fromList = append(fromList, source[:fromIdx]...)
	fromList = append(fromList, source[fromIdx+1:]...)

	toList := fromList
	if from != to {
		toList = b.Column(to)
	}
	return fromList, toList, clamp(toIndex, 0, len(toList))
}

// insertAt returns a new slice with task inserted at idx
func insertAt(tasks []*models.Task, idx int, task *models.Task) []*models.Task {
	out := make([]*models.Task, 0, len(tasks)+1)
	out = append(out, tasks[:idx]...)
	out = append(out, task)
	out = append(out, tasks[idx:]...)
	return out
}

// sameOrdering reports whether two columns hold the same IDs with the same serials
func sameOrdering(a, b []*models.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Serial != b[i].Serial || a[i].Status != b[i].Status {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
