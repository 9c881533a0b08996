package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

type fakeTasks struct {
	taskservice.Service

	moveReq taskservice.MoveTaskRequest
	moveErr error
	filter  database.TaskFilter
}

func (f *fakeTasks) MoveTask(ctx context.Context, req taskservice.MoveTaskRequest) (*models.Task, error) {
	f.moveReq = req
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	return &models.Task{ID: req.TaskID, Serial: req.Serial, Status: req.Status}, nil
}

func (f *fakeTasks) GetBoard(ctx context.Context, filter database.TaskFilter) (map[models.Status][]*models.Task, error) {
	f.filter = filter
	return map[models.Status][]*models.Task{}, nil
}

func TestUpdateTaskPosition_BindsBody(t *testing.T) {
	e := echo.New()
	tasks := &fakeTasks{}
	req := httptest.NewRequest(http.MethodPatch, "/kanban-update-task",
		strings.NewReader(`{"task_id": 12, "serial": 3, "task_status": "hold"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	metrics := NewMetrics()
	require.NoError(t, updateTaskPosition(tasks, metrics)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, taskservice.MoveTaskRequest{TaskID: 12, Serial: 3, Status: models.StatusHold}, tasks.moveReq)
	assert.Equal(t, int64(1), metrics.GetSnapshot().TasksMoved)
}

func TestGetBoard_ParsesFilters(t *testing.T) {
	e := echo.New()
	tasks := &fakeTasks{}

	req := httptest.NewRequest(http.MethodGet, "/kanban-tasks?project_id=4&meeting_id=9", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, getBoard(tasks)(e.NewContext(req, rec)))
	assert.Equal(t, database.TaskFilter{ProjectID: 4, MeetingID: 9}, tasks.filter)

	req = httptest.NewRequest(http.MethodGet, "/kanban-tasks?project_id=abc", nil)
	err := getBoard(tasks)(e.NewContext(req, httptest.NewRecorder()))
	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", taskservice.ErrInvalidSerial, http.StatusBadRequest, `{"error":"invalid serial: must be >= 1"}`},
		{"not found", taskservice.ErrTaskNotFound, http.StatusNotFound, `{"error":"task not found"}`},
		{"http error", echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid bearer token"), http.StatusUnauthorized, `{"error":"missing or invalid bearer token"}`},
		{"internal detail hidden", errors.New("disk I/O error"), http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			metrics := NewMetrics()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			errorHandler(metrics)(tt.err, c)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.Equal(t, int64(1), metrics.GetSnapshot().RequestErrors)
		})
	}
}

func TestBearerAuth(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	tests := []struct {
		name   string
		token  string
		header string
		path   string
		pass   bool
	}{
		{"disabled", "", "", "/project", true},
		{"match", "t0k", "Bearer t0k", "/project", true},
		{"lowercase scheme", "t0k", "bearer t0k", "/project", true},
		{"missing", "t0k", "", "/project", false},
		{"mismatch", "t0k", "Bearer other", "/project", false},
		{"basic scheme", "t0k", "Basic t0k", "/project", false},
		{"health exempt", "t0k", "", "/healthz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())
			c.SetPath(tt.path)

			err := BearerAuth(tt.token)(ok)(c)
			if tt.pass {
				assert.NoError(t, err)
				return
			}
			var httpErr *echo.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}
