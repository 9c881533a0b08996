package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	meetingservice "github.com/thenoetrevino/tablero/internal/services/meeting"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// Services are the business operations the handlers call
type Services struct {
	Tasks    taskservice.Service
	Projects projectservice.Service
	Meetings meetingservice.Service
}

// Register wires up all endpoints on the given Echo instance.
func Register(e *echo.Echo, svc Services, metrics *Metrics) {
	e.GET("/healthz", healthz)
	e.GET("/metrics", metricsSnapshot(metrics))

	e.GET("/kanban-tasks", getBoard(svc.Tasks))
	e.PATCH("/kanban-update-task", updateTaskPosition(svc.Tasks, metrics))

	e.POST("/task", createTask(svc.Tasks, metrics))
	e.GET("/task/:id", getTask(svc.Tasks))
	e.DELETE("/task/:id", deleteTask(svc.Tasks, metrics))

	e.GET("/project", listProjects(svc.Projects))
	e.POST("/project", createProject(svc.Projects))

	e.GET("/meeting", listMeetings(svc.Meetings))
	e.POST("/meeting", createMeeting(svc.Meetings))
	e.GET("/meeting/:id", getMeeting(svc.Meetings))
	e.PUT("/meeting/:id", updateMeeting(svc.Meetings))
	e.DELETE("/meeting/:id", deleteMeeting(svc.Meetings))
	e.GET("/meeting/slug/:slug", getMeetingBySlug(svc.Meetings))
}

func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func metricsSnapshot(metrics *Metrics) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, metrics.GetSnapshot())
	}
}

// ============================================================================
// Board
// ============================================================================

func getBoard(tasks taskservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		projectID, err := optionalIntParam(c.QueryParam("project_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "project_id must be a number")
		}
		meetingID, err := optionalIntParam(c.QueryParam("meeting_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "meeting_id must be a number")
		}

		board, err := tasks.GetBoard(c.Request().Context(), database.TaskFilter{
			ProjectID: projectID,
			MeetingID: meetingID,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, board)
	}
}

func updateTaskPosition(tasks taskservice.Service, metrics *Metrics) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskservice.MoveTaskRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		task, err := tasks.MoveTask(c.Request().Context(), req)
		if err != nil {
			return err
		}
		metrics.IncTasksMoved()
		return c.JSON(http.StatusOK, task)
	}
}

// ============================================================================
// Tasks
// ============================================================================

func createTask(tasks taskservice.Service, metrics *Metrics) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskservice.CreateTaskRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		task, err := tasks.CreateTask(c.Request().Context(), req)
		if err != nil {
			return err
		}
		metrics.IncTasksCreated()
		return c.JSON(http.StatusCreated, task)
	}
}

func getTask(tasks taskservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		task, err := tasks.GetTask(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(tasks taskservice.Service, metrics *Metrics) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		if err := tasks.DeleteTask(c.Request().Context(), id); err != nil {
			return err
		}
		metrics.IncTasksDeleted()
		return c.NoContent(http.StatusNoContent)
	}
}

// ============================================================================
// Projects
// ============================================================================

func listProjects(projects projectservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := projects.GetAllProjects(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string][]*models.Project{"projects": list})
	}
}

func createProject(projects projectservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req projectservice.CreateProjectRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		project, err := projects.CreateProject(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, project)
	}
}

// ============================================================================
// Meetings
// ============================================================================

func listMeetings(meetings meetingservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		projectID, err := strconv.Atoi(c.QueryParam("project_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "project_id is required")
		}
		list, err := meetings.ListMeetings(c.Request().Context(), projectID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string][]*models.Meeting{"meetings": list})
	}
}

// createMeetingBody accepts the date as RFC 3339 or a bare YYYY-MM-DD
type createMeetingBody struct {
	ProjectID   int    `json:"project_id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

func createMeeting(meetings meetingservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body createMeetingBody
		if err := c.Bind(&body); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		var date time.Time
		if body.Date != "" {
			parsed, err := parseDate(body.Date)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "date must be RFC 3339 or YYYY-MM-DD")
			}
			date = parsed
		}

		meeting, err := meetings.CreateMeeting(c.Request().Context(), meetingservice.CreateMeetingRequest{
			ProjectID:   body.ProjectID,
			Title:       body.Title,
			Date:        date,
			Description: body.Description,
			Slug:        body.Slug,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, meeting)
	}
}

func getMeeting(meetings meetingservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		meeting, err := meetings.GetMeeting(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, meeting)
	}
}

// updateMeetingBody is a partial update; absent fields are left unchanged
type updateMeetingBody struct {
	ProjectID   *int    `json:"project_id"`
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Slug        *string `json:"slug"`
}

func updateMeeting(meetings meetingservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		var body updateMeetingBody
		if err := c.Bind(&body); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}

		req := meetingservice.UpdateMeetingRequest{
			ProjectID:   body.ProjectID,
			Title:       body.Title,
			Description: body.Description,
			Slug:        body.Slug,
		}
		if body.Date != nil {
			parsed, err := parseDate(*body.Date)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "date must be RFC 3339 or YYYY-MM-DD")
			}
			req.Date = &parsed
		}

		meeting, err := meetings.UpdateMeeting(c.Request().Context(), id, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, meeting)
	}
}

func deleteMeeting(meetings meetingservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		if err := meetings.DeleteMeeting(c.Request().Context(), id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func getMeetingBySlug(meetings meetingservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		meeting, err := meetings.GetMeetingBySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, meeting)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a number")
	}
	return id, nil
}

// optionalIntParam treats an empty value as zero
func optionalIntParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
