package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/models"
)

func TestStore_ColumnOnEmptyStore(t *testing.T) {
	s := NewStore(nil)

	for _, status := range models.Statuses() {
		col := s.Column(status)
		assert.NotNil(t, col)
		assert.Empty(t, col)
	}
	assert.Empty(t, s.Column("nonsense"))
}

func TestStore_LoadBoardMissingColumns(t *testing.T) {
	s := NewStore(nil)

	s.LoadBoard(map[models.Status][]*models.Task{
		models.StatusPending: column(models.StatusPending, 1, 2),
		models.StatusHold:    nil,
		"archived":           column("archived", 3),
	})

	assert.Equal(t, []int{1, 2}, ids(s.Column(models.StatusPending)))
	assert.Empty(t, s.Column(models.StatusHold))
	assert.Empty(t, s.Column(models.StatusCompleted))
	assert.Empty(t, s.Column("archived"), "unknown columns are dropped")
	assert.Equal(t, 2, s.TotalTaskCount())
}

func TestStore_LoadBoardTrustsSerials(t *testing.T) {
	s := NewStore(nil)

	s.LoadBoard(map[models.Status][]*models.Task{
		models.StatusPending: {
			{ID: 1, Serial: 4, Status: models.StatusPending},
			{ID: 2, Serial: 4, Status: models.StatusPending},
		},
	})

	assert.Equal(t, []int{4, 4}, serials(s.Column(models.StatusPending)))
	assert.Len(t, s.Snapshot().SerialIssues(), 2)
}

func TestStore_LoadBoardBumpsGeneration(t *testing.T) {
	s := NewStore(nil)
	g0 := s.Generation()

	s.LoadBoard(nil)
	g1 := s.Generation()
	assert.Greater(t, g1, g0)

	s.ReplaceColumns(Board{models.StatusHold: column(models.StatusHold, 1)})
	assert.Equal(t, g1, s.Generation(), "column replacement is not a reload")

	s.Reset()
	assert.Greater(t, s.Generation(), g1)
	assert.Zero(t, s.TotalTaskCount())
}

func TestStore_ReplaceColumnsSharesUntouched(t *testing.T) {
	s := NewStore(nil)
	pending := column(models.StatusPending, 1, 2)
	hold := column(models.StatusHold, 3)
	s.LoadBoard(map[models.Status][]*models.Task{
		models.StatusPending: pending,
		models.StatusHold:    hold,
	})

	before := s.Snapshot()
	s.ReplaceColumns(Board{models.StatusHold: column(models.StatusHold, 4, 3)})
	after := s.Snapshot()

	require.Len(t, after[models.StatusPending], 2)
	assert.Same(t, &before[models.StatusPending][0], &after[models.StatusPending][0], "untouched column shares its slice")
	assert.Equal(t, []int{3}, ids(before[models.StatusHold]), "previous snapshot is not mutated")
	assert.Equal(t, []int{4, 3}, ids(after[models.StatusHold]))
}

func TestStore_ColumnReturnsCopy(t *testing.T) {
	s := NewStore(nil)
	s.LoadBoard(map[models.Status][]*models.Task{
		models.StatusPending: column(models.StatusPending, 1, 2),
	})

	col := s.Column(models.StatusPending)
	col[0] = &models.Task{ID: 42}

	assert.Equal(t, []int{1, 2}, ids(s.Column(models.StatusPending)))
}

func TestStore_Find(t *testing.T) {
	s := NewStore(nil)
	s.LoadBoard(map[models.Status][]*models.Task{
		models.StatusPending:   column(models.StatusPending, 1, 2),
		models.StatusCompleted: column(models.StatusCompleted, 3),
	})

	status, idx, ok := s.Find(3)
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, status)
	assert.Equal(t, 0, idx)

	_, _, ok = s.Find(99)
	assert.False(t, ok)
}
