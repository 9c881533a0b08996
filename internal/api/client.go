// Package api is the HTTP client for the task board service.
// It covers the endpoints the board session needs (fetch board, update
// task) plus the project, meeting and task CRUD used by the CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/tablero/internal/models"
)

// DefaultTimeout bounds a single request so a stalled call eventually fails
const DefaultTimeout = 30 * time.Second

// HeaderRequestID carries a per-request uuid for log correlation
const HeaderRequestID = "X-Request-ID"

// maxErrorBody caps how much of an error response is read
const maxErrorBody = 64 << 10

// TokenSource returns the bearer token to attach, or "" for none.
// It is called once per request so a token saved mid-session is picked up.
type TokenSource func() string

// Client talks to the board service over HTTP
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithToken attaches a fixed bearer token
func WithToken(token string) Option {
	return func(c *Client) {
		c.tokens = func() string { return token }
	}
}

// WithTokenSource attaches a dynamically resolved bearer token
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.tokens = src
	}
}

// WithLogger sets the logger for request tracing
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		tokens:  func() string { return "" },
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ============================================================================
// Request / response types
// ============================================================================

// BoardFilter narrows the board to a project and/or meeting; zero means unset
type BoardFilter struct {
	ProjectID int
	MeetingID int
}

// UpdateTaskRequest is the move payload. It deliberately carries only the
// position fields so concurrent edits to other attributes are not clobbered.
type UpdateTaskRequest struct {
	TaskID     int           `json:"task_id"`
	Serial     int           `json:"serial"`
	TaskStatus models.Status `json:"task_status"`
}

// CreateTaskRequest creates a task at the bottom of its column
type CreateTaskRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	TaskStatus  models.Status `json:"task_status,omitempty"`
	ProjectID   *int          `json:"project_id,omitempty"`
	MeetingID   *int          `json:"meeting_id,omitempty"`
}

// CreateProjectRequest creates a project
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CreateMeetingRequest creates a meeting; Slug is generated when empty
type CreateMeetingRequest struct {
	ProjectID   int       `json:"project_id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug,omitempty"`
}

// UpdateMeetingRequest changes only the fields that are set
type UpdateMeetingRequest struct {
	ProjectID   *int       `json:"project_id,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
}

type projectsResponse struct {
	Projects []*models.Project `json:"projects"`
}

type meetingsResponse struct {
	Meetings []*models.Meeting `json:"meetings"`
}

// ============================================================================
// Board endpoints
// ============================================================================

// FetchBoard returns the board grouped by status column
func (c *Client) FetchBoard(ctx context.Context, filter BoardFilter) (map[models.Status][]*models.Task, error) {
	q := url.Values{}
	if filter.ProjectID > 0 {
		q.Set("project_id", strconv.Itoa(filter.ProjectID))
	}
	if filter.MeetingID > 0 {
		q.Set("meeting_id", strconv.Itoa(filter.MeetingID))
	}

	out := map[models.Status][]*models.Task{}
	if err := c.do(ctx, http.MethodGet, "/kanban-tasks", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTask persists a task's new column and serial
func (c *Client) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, "/kanban-update-task", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ============================================================================
// Task endpoints
// ============================================================================

// CreateTask creates a task
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/task", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask fetches a single task
func (c *Client) GetTask(ctx context.Context, taskID int) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodGet, "/task/"+strconv.Itoa(taskID), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	return c.do(ctx, http.MethodDelete, "/task/"+strconv.Itoa(taskID), nil, nil, nil)
}

// ============================================================================
// Project / meeting endpoints
// ============================================================================

// ListProjects returns all projects
func (c *Client) ListProjects(ctx context.Context) ([]*models.Project, error) {
	var out projectsResponse
	if err := c.do(ctx, http.MethodGet, "/project", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// CreateProject creates a project
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, http.MethodPost, "/project", nil, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListMeetings returns the meetings of a project, newest first
func (c *Client) ListMeetings(ctx context.Context, projectID int) ([]*models.Meeting, error) {
	q := url.Values{}
	q.Set("project_id", strconv.Itoa(projectID))

	var out meetingsResponse
	if err := c.do(ctx, http.MethodGet, "/meeting", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Meetings, nil
}

// CreateMeeting creates a meeting
func (c *Client) CreateMeeting(ctx context.Context, req CreateMeetingRequest) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := c.do(ctx, http.MethodPost, "/meeting", nil, req, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// GetMeeting fetches a single meeting
func (c *Client) GetMeeting(ctx context.Context, meetingID int) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := c.do(ctx, http.MethodGet, "/meeting/"+strconv.Itoa(meetingID), nil, nil, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// UpdateMeeting applies a partial update to a meeting
func (c *Client) UpdateMeeting(ctx context.Context, meetingID int, req UpdateMeetingRequest) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := c.do(ctx, http.MethodPut, "/meeting/"+strconv.Itoa(meetingID), nil, req, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// DeleteMeeting removes a meeting; its tasks keep their board position
func (c *Client) DeleteMeeting(ctx context.Context, meetingID int) error {
	return c.do(ctx, http.MethodDelete, "/meeting/"+strconv.Itoa(meetingID), nil, nil, nil)
}

// Health checks that the service is reachable
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, nil)
}

// ============================================================================
// Transport
// ============================================================================

// do performs one JSON request. Non-2xx responses and network failures are
// returned as *Error; out is left untouched on failure.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return newTransportError(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("error closing response body", "error", closeErr)
		}
	}()

	c.logger.Debug("request complete",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newStatusError(resp.StatusCode, raw)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{
			Kind:       KindServer,
			StatusCode: resp.StatusCode,
			Message:    "malformed response body",
			Err:        err,
		}
	}
	return nil
}
