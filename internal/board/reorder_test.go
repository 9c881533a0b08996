package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// column builds a column of tasks with contiguous serials
func column(status models.Status, ids ...int) []*models.Task {
	tasks := make([]*models.Task, len(ids))
	for i, id := range ids {
		tasks[i] = &models.Task{ID: id, Serial: i + 1, Status: status}
	}
	return tasks
}

func ids(tasks []*models.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func serials(tasks []*models.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.Serial
	}
	return out
}

// ============================================================================
// Move
// ============================================================================

func TestMove_CrossColumnScenario(t *testing.T) {
	b := Board{
		models.StatusPending:    column(models.StatusPending, 1, 2),
		models.StatusInProgress: {},
	}

	res, ok := Move(b, 1, models.StatusPending, models.StatusInProgress, 0)
	require.True(t, ok)

	pending := res.Patch[models.StatusPending]
	inProgress := res.Patch[models.StatusInProgress]

	assert.Equal(t, []int{2}, ids(pending))
	assert.Equal(t, []int{2}, serials(pending), "displaced tasks keep their serial")
	assert.Equal(t, []int{1}, ids(inProgress))
	assert.Equal(t, []int{1}, serials(inProgress))
	assert.Equal(t, models.StatusInProgress, inProgress[0].Status)
	assert.True(t, res.Changed)
	assert.Equal(t, 0, res.FromIndex)
	assert.Equal(t, 0, res.ToIndex)
}

func TestMove_SameColumnScenario(t *testing.T) {
	b := Board{models.StatusPending: column(models.StatusPending, 1, 2, 3)}

	res, ok := Move(b, 3, models.StatusPending, models.StatusPending, 0)
	require.True(t, ok)
	require.Len(t, res.Patch, 1, "same-column move patches exactly one column")

	pending := res.Patch[models.StatusPending]
	assert.Equal(t, []int{3, 1, 2}, ids(pending))
	// Only the moved task's serial is rewritten
	assert.Equal(t, []int{1, 1, 2}, serials(pending))
}

func TestMove_OwnIndexIsNoop(t *testing.T) {
	b := Board{models.StatusPending: column(models.StatusPending, 1, 2, 3)}

	for idx, id := range []int{1, 2, 3} {
		res, ok := Move(b, id, models.StatusPending, models.StatusPending, idx)
		require.True(t, ok)
		assert.False(t, res.Changed, "moving task %d to its own index", id)
		assert.Equal(t, ids(b[models.StatusPending]), ids(res.Patch[models.StatusPending]))
		assert.Equal(t, serials(b[models.StatusPending]), serials(res.Patch[models.StatusPending]))
	}
}

func TestMove_UnknownTaskIsNoop(t *testing.T) {
	b := Board{
		models.StatusPending:    column(models.StatusPending, 1, 2),
		models.StatusInProgress: column(models.StatusInProgress, 3),
	}

	// Not present at all
	res, ok := Move(b, 99, models.StatusPending, models.StatusInProgress, 0)
	assert.False(t, ok)
	assert.Nil(t, res.Patch)

	// Present, but not in the claimed source column
	_, ok = Move(b, 3, models.StatusPending, models.StatusHold, 0)
	assert.False(t, ok)

	// Source column missing entirely
	_, ok = Move(Board{}, 1, models.StatusFailed, models.StatusHold, 0)
	assert.False(t, ok)

	assert.Equal(t, []int{1, 2}, ids(b[models.StatusPending]))
	assert.Equal(t, []int{3}, ids(b[models.StatusInProgress]))
}

func TestMove_UnknownTargetIsRejected(t *testing.T) {
	b := Board{models.StatusPending: column(models.StatusPending, 1, 2)}

	for _, to := range []models.Status{"archived", ""} {
		res, ok := Move(b, 1, models.StatusPending, to, 0)
		assert.False(t, ok, "target %q", to)
		assert.Nil(t, res.Patch)
	}
	assert.Equal(t, []int{1, 2}, ids(b[models.StatusPending]))
}

func TestMove_ClampsIndex(t *testing.T) {
	tests := []struct {
		name      string
		from, to  models.Status
		taskID    int
		toIndex   int
		wantIndex int
		wantOrder []int
	}{
		{"negative clamps to top", models.StatusPending, models.StatusHold, 2, -5, 0, []int{2, 10, 11}},
		{"past end clamps to append", models.StatusPending, models.StatusHold, 2, 50, 2, []int{10, 11, 2}},
		{"exact end appends", models.StatusPending, models.StatusHold, 2, 2, 2, []int{10, 11, 2}},
		{"same column uses length after removal", models.StatusPending, models.StatusPending, 1, 3, 2, []int{2, 3, 1}},
		{"same column past end", models.StatusPending, models.StatusPending, 1, 100, 2, []int{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Board{
				models.StatusPending: column(models.StatusPending, 1, 2, 3),
				models.StatusHold:    column(models.StatusHold, 10, 11),
			}

			res, ok := Move(b, tt.taskID, tt.from, tt.to, tt.toIndex)
			require.True(t, ok)
			assert.Equal(t, tt.wantIndex, res.ToIndex)
			assert.Equal(t, tt.wantOrder, ids(res.Patch[tt.to]))
			assert.Equal(t, tt.wantIndex+1, res.Task.Serial, "moved serial is index+1")
			assert.Same(t, res.Task, res.Patch[tt.to][tt.wantIndex])
		})
	}
}

func TestMove_Properties(t *testing.T) {
	statuses := models.Statuses()

	for _, from := range statuses {
		for _, to := range statuses {
			for idx := -1; idx <= 4; idx++ {
				b := Board{
					models.StatusPending:    column(models.StatusPending, 1, 2, 3),
					models.StatusInProgress: column(models.StatusInProgress, 4, 5),
					models.StatusCompleted:  column(models.StatusCompleted, 6),
					models.StatusFailed:     column(models.StatusFailed, 7, 8, 9),
					models.StatusHold:       {},
				}
				source := b.Column(from)
				if len(source) == 0 {
					_, ok := Move(b, 1, from, to, idx)
					assert.False(t, ok)
					continue
				}
				taskID := source[len(source)-1].ID
				before := b.TaskCount()

				res, ok := Move(b, taskID, from, to, idx)
				require.True(t, ok)

				if from != to {
					assert.Equal(t, -1, indexOf(res.Patch[from], taskID), "source no longer holds the task")
				}
				dest := res.Patch[to]
				assert.Equal(t, taskID, dest[res.ToIndex].ID)
				assert.Equal(t, res.ToIndex+1, dest[res.ToIndex].Serial)
				assert.Equal(t, to, dest[res.ToIndex].Status)

				next := b.Clone()
				for s, tasks := range res.Patch {
					next[s] = tasks
				}
				assert.Equal(t, before, next.TaskCount(), "tasks are neither lost nor duplicated")
			}
		}
	}
}

func TestMove_DoesNotMutateInput(t *testing.T) {
	pending := column(models.StatusPending, 1, 2, 3)
	hold := column(models.StatusHold, 4)
	b := Board{models.StatusPending: pending, models.StatusHold: hold}
	moved := pending[0]

	_, ok := Move(b, 1, models.StatusPending, models.StatusHold, 0, WithRenumber())
	require.True(t, ok)

	assert.Equal(t, []int{1, 2, 3}, ids(b[models.StatusPending]))
	assert.Equal(t, []int{4}, ids(b[models.StatusHold]))
	assert.Equal(t, models.StatusPending, moved.Status)
	assert.Equal(t, 1, moved.Serial)
	assert.Equal(t, 1, hold[0].Serial)
}

func TestMove_WithRenumberRestoresContiguity(t *testing.T) {
	b := Board{
		models.StatusPending: column(models.StatusPending, 1, 2, 3),
		models.StatusHold:    column(models.StatusHold, 4, 5),
	}

	res, ok := Move(b, 2, models.StatusPending, models.StatusHold, 0, WithRenumber())
	require.True(t, ok)

	assert.Equal(t, []int{1, 3}, ids(res.Patch[models.StatusPending]))
	assert.Equal(t, []int{1, 2}, serials(res.Patch[models.StatusPending]))
	assert.Equal(t, []int{2, 4, 5}, ids(res.Patch[models.StatusHold]))
	assert.Equal(t, []int{1, 2, 3}, serials(res.Patch[models.StatusHold]))
	assert.Equal(t, 1, res.Task.Serial)

	next := b.Clone()
	for s, tasks := range res.Patch {
		next[s] = tasks
	}
	assert.Empty(t, next.SerialIssues())
}

// ============================================================================
// Place / Renumber
// ============================================================================

func TestPlace_UndoesMove(t *testing.T) {
	b := Board{
		models.StatusPending:    column(models.StatusPending, 1, 2, 3),
		models.StatusInProgress: column(models.StatusInProgress, 4),
	}

	res, ok := Move(b, 2, models.StatusPending, models.StatusInProgress, 0)
	require.True(t, ok)

	moved := b.Clone()
	for s, tasks := range res.Patch {
		moved[s] = tasks
	}

	undo, idx := Place(moved, res.Previous, res.FromIndex)
	assert.Equal(t, 1, idx)

	restored := moved.Clone()
	for s, tasks := range undo {
		restored[s] = tasks
	}
	assert.Equal(t, []int{1, 2, 3}, ids(restored[models.StatusPending]))
	assert.Equal(t, []int{1, 2, 3}, serials(restored[models.StatusPending]))
	assert.Equal(t, []int{4}, ids(restored[models.StatusInProgress]))
	assert.Same(t, res.Previous, restored[models.StatusPending][1])
}

func TestPlace_TaskNotOnBoard(t *testing.T) {
	b := Board{models.StatusHold: column(models.StatusHold, 1)}
	task := &models.Task{ID: 9, Serial: 1, Status: models.StatusHold}

	patch, idx := Place(b, task, 0, WithRenumber())
	assert.Equal(t, 0, idx)
	assert.Equal(t, []int{9, 1}, ids(patch[models.StatusHold]))
	assert.Equal(t, []int{1, 2}, serials(patch[models.StatusHold]))
}

func TestRenumber_SharesCorrectTasks(t *testing.T) {
	tasks := []*models.Task{
		{ID: 1, Serial: 1},
		{ID: 2, Serial: 5},
		{ID: 3, Serial: 3},
	}

	out := Renumber(tasks)
	assert.Equal(t, []int{1, 2, 3}, serials(out))
	assert.Same(t, tasks[0], out[0])
	assert.NotSame(t, tasks[1], out[1])
	assert.Same(t, tasks[2], out[2])
	assert.Equal(t, 5, tasks[1].Serial, "input is untouched")
}
