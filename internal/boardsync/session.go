// Package boardsync keeps the local board in step with the task service.
//
// A Session is the per-user board state object: it owns the board.Store,
// applies moves optimistically, persists them in the background and
// reconciles the responses. Create one per login and Reset it on logout or
// navigation; pass it by reference to whatever renders the board.
package boardsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/board"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ErrClosed is returned by operations on a closed session
var ErrClosed = errors.New("board session closed")

// TaskService is the subset of the API client a session needs
type TaskService interface {
	FetchBoard(ctx context.Context, filter api.BoardFilter) (map[models.Status][]*models.Task, error)
	UpdateTask(ctx context.Context, req api.UpdateTaskRequest) (*models.Task, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
	ListMeetings(ctx context.Context, projectID int) ([]*models.Meeting, error)
}

// Compile-time verification that *api.Client satisfies TaskService
var _ TaskService = (*api.Client)(nil)

// placement is where a task sits: the task value and its column index
type placement struct {
	task  *models.Task
	index int
}

// track is the per-task bookkeeping for moves still awaiting a response
type track struct {
	// latest is the sequence of the most recent move; only its response
	// may change the board
	latest uint64

	// confirmedSeq is the highest sequence the server has accepted
	confirmedSeq uint64

	// baseline is the last placement known to match the server
	baseline placement

	// outstanding counts requests still in flight
	outstanding int
}

// Session is the board state for one user session
type Session struct {
	client TaskService
	store  *board.Store
	logger *slog.Logger

	renumber         bool
	refetchOnFailure bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	outcomes chan Outcome

	// mu guards everything below and serializes board mutations
	mu       sync.Mutex
	seq      uint64
	tracks   map[int]*track
	err      error
	loading  bool
	closed   bool
	filter   api.BoardFilter
	projects []*models.Project
	meetings []*models.Meeting
}

// Option configures a Session
type Option func(*Session)

// WithRenumber makes moves and rollbacks rewrite every serial in the
// affected columns, keeping the local board contiguous.
func WithRenumber(enabled bool) Option {
	return func(s *Session) {
		s.renumber = enabled
	}
}

// WithRefetchOnFailure triggers a full board fetch after a failed move
func WithRefetchOnFailure(enabled bool) Option {
	return func(s *Session) {
		s.refetchOnFailure = enabled
	}
}

// WithLogger sets the session logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithOutcomeBuffer sets the capacity of the Outcomes channel
func WithOutcomeBuffer(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.outcomes = make(chan Outcome, n)
		}
	}
}

// NewSession creates a session with an empty board
func NewSession(client TaskService, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		client:   client,
		logger:   slog.Default(),
		ctx:      ctx,
		cancel:   cancel,
		outcomes: make(chan Outcome, 64),
		tracks:   make(map[int]*track),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = board.NewStore(s.logger)
	return s
}

// ============================================================================
// Reads
// ============================================================================

// Store exposes the underlying task store for column reads
func (s *Session) Store() *board.Store {
	return s.store
}

// Column returns the ordered tasks of one status column
func (s *Session) Column(status models.Status) []*models.Task {
	return s.store.Column(status)
}

// Outcomes delivers the resolution of every move request.
// The channel is closed by Close.
func (s *Session) Outcomes() <-chan Outcome {
	return s.outcomes
}

// Err returns the last sync or load error, or nil
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ClearError resets the error flag, e.g. after the UI showed it
func (s *Session) ClearError() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
}

// Loading reports whether a full board fetch is running
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// InFlight returns the number of move requests awaiting a response
func (s *Session) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, tr := range s.tracks {
		n += tr.outstanding
	}
	return n
}

// Filter returns the active project/meeting filter
func (s *Session) Filter() api.BoardFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Projects returns the projects loaded by LoadProjects
func (s *Session) Projects() []*models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects
}

// Meetings returns the meetings of the selected project
func (s *Session) Meetings() []*models.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meetings
}

// SelectedProject returns the project matching the filter, or nil
func (s *Session) SelectedProject() *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == s.filter.ProjectID {
			return p
		}
	}
	return nil
}

// ============================================================================
// Loading
// ============================================================================

// SetFilters selects the project and meeting the board is scoped to.
// Zero clears a filter. The board is not refetched.
func (s *Session) SetFilters(projectID, meetingID int) {
	s.mu.Lock()
	s.filter = api.BoardFilter{ProjectID: projectID, MeetingID: meetingID}
	s.mu.Unlock()
}

// ResetFilters selects the first project, clears the meeting and refetches
func (s *Session) ResetFilters(ctx context.Context) error {
	s.mu.Lock()
	s.filter = api.BoardFilter{}
	if len(s.projects) > 0 {
		s.filter.ProjectID = s.projects[0].ID
	}
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// LoadProjects fetches the project list. On failure the list is emptied.
func (s *Session) LoadProjects(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.client.ListProjects(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.projects = []*models.Project{}
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	s.projects = projects
	return projects, nil
}

// LoadMeetings fetches the meetings of a project.
// Meetings are optional decoration: failures yield an empty list.
func (s *Session) LoadMeetings(ctx context.Context, projectID int) []*models.Meeting {
	meetings := s.fetchMeetings(ctx, projectID)

	s.mu.Lock()
	s.meetings = meetings
	s.mu.Unlock()
	return meetings
}

func (s *Session) fetchMeetings(ctx context.Context, projectID int) []*models.Meeting {
	if projectID <= 0 {
		return []*models.Meeting{}
	}
	meetings, err := s.client.ListMeetings(ctx, projectID)
	if err != nil {
		s.logger.Warn("failed to load meetings", "project_id", projectID, "error", err)
		return []*models.Meeting{}
	}
	return meetings
}

// Refresh rebuilds the board from the service using the current filters.
// Meetings for the selected project are fetched alongside. On failure the
// board is emptied and the error flag is set.
func (s *Session) Refresh(ctx context.Context) error {
	return s.refresh(ctx, true)
}

// refresh reloads the board. With clearErr false a sync error raised before
// the reload stays set, so a refetch after a failed move keeps reporting it.
func (s *Session) refresh(ctx context.Context, clearErr bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.loading = true
	if clearErr {
		s.err = nil
	}
	filter := s.filter
	s.mu.Unlock()

	var (
		data     map[models.Status][]*models.Task
		meetings []*models.Meeting
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = s.client.FetchBoard(gctx, filter)
		return err
	})
	if filter.ProjectID > 0 {
		g.Go(func() error {
			meetings = s.fetchMeetings(gctx, filter.ProjectID)
			return nil
		})
	}
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = err
		s.store.Reset()
		s.logger.Error("failed to load board", "project_id", filter.ProjectID, "meeting_id", filter.MeetingID, "error", err)
		return fmt.Errorf("failed to load board: %w", err)
	}

	s.store.LoadBoard(data)
	s.rebaseLocked()
	if filter.ProjectID > 0 {
		s.meetings = meetings
	}
	return nil
}

// rebaseLocked points every pending task's rollback target at its
// placement on the freshly loaded board.
func (s *Session) rebaseLocked() {
	snapshot := s.store.Snapshot()
	for taskID, tr := range s.tracks {
		status, idx, ok := snapshot.Find(taskID)
		if !ok {
			continue
		}
		tr.baseline = placement{task: snapshot[status][idx], index: idx}
	}
}

// ============================================================================
// Moves
// ============================================================================

// Move drags a task from one column position to another.
//
// The board is updated immediately and the new column and serial are sent to
// the service in the background; the result arrives on Outcomes. Requests
// run under the session's own context, so they outlive the caller.
//
// Move returns false, and sends nothing, when the task is not in from or
// to is not a board column.
// A move that changes nothing returns true without a request.
func (s *Session) Move(taskID int, from, to models.Status, toIndex int) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}

	res, ok := board.Move(s.store.Snapshot(), taskID, from, to, toIndex, s.moveOptions()...)
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("move ignored, task not in source column or unknown target", "task_id", taskID, "from", from, "to", to)
		return false
	}
	if !res.Changed {
		s.mu.Unlock()
		return true
	}

	s.store.ReplaceColumns(res.Patch)

	s.seq++
	seq := s.seq
	tr, exists := s.tracks[taskID]
	if !exists {
		tr = &track{baseline: placement{task: res.Previous, index: res.FromIndex}}
		s.tracks[taskID] = tr
	}
	tr.latest = seq
	tr.outstanding++
	generation := s.store.Generation()

	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Debug("task moved locally",
		"task_id", taskID,
		"from", from,
		"to", to,
		"index", res.ToIndex,
		"seq", seq)

	go s.persist(tr, seq, generation, res)
	return true
}

// RequestMove sends a task's new column and serial to the service.
// Only those two fields are sent.
func (s *Session) RequestMove(ctx context.Context, taskID int, status models.Status, serial int) (*models.Task, error) {
	return s.client.UpdateTask(ctx, api.UpdateTaskRequest{
		TaskID:     taskID,
		Serial:     serial,
		TaskStatus: status,
	})
}

// persist runs on its own goroutine for every move
func (s *Session) persist(tr *track, seq, generation uint64, res board.MoveResult) {
	defer s.wg.Done()

	_, err := s.RequestMove(s.ctx, res.Task.ID, res.To, res.Task.Serial)
	outcome, refetch := s.resolve(tr, seq, generation, res, err)
	s.emit(outcome)

	if refetch {
		if err := s.refresh(s.ctx, false); err != nil {
			s.logger.Error("refetch after failed move", "error", err)
		}
	}
}

// resolve applies a move response to the board bookkeeping.
// tr is the track the request was issued under; once Reset has replaced
// it, the response belongs to a discarded board and changes nothing.
func (s *Session) resolve(tr *track, seq, generation uint64, res board.MoveResult, reqErr error) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := Outcome{
		Seq:    seq,
		TaskID: res.Task.ID,
		Status: res.To,
		Serial: res.Task.Serial,
		Err:    reqErr,
	}

	if current, ok := s.tracks[res.Task.ID]; !ok || current != tr {
		// Session was reset while the request was in flight
		outcome.Kind = OutcomeSuperseded
		return outcome, false
	}

	tr.outstanding--
	defer func() {
		if tr.outstanding <= 0 {
			delete(s.tracks, res.Task.ID)
		}
	}()

	if reqErr == nil && seq > tr.confirmedSeq {
		tr.confirmedSeq = seq
		tr.baseline = placement{task: res.Task, index: res.ToIndex}
	}

	if seq != tr.latest {
		outcome.Kind = OutcomeSuperseded
		s.logger.Debug("discarding superseded move response", "task_id", res.Task.ID, "seq", seq, "latest", tr.latest)
		return outcome, false
	}

	if reqErr == nil {
		outcome.Kind = OutcomeConfirmed
		return outcome, false
	}

	outcome.Kind = OutcomeFailed
	s.err = reqErr
	s.logger.Error("failed to sync task move",
		"task_id", res.Task.ID,
		"status", res.To,
		"serial", res.Task.Serial,
		"error", reqErr)

	if s.store.Generation() == generation && !s.closed {
		patch, _ := board.Place(s.store.Snapshot(), tr.baseline.task, tr.baseline.index, s.moveOptions()...)
		s.store.ReplaceColumns(patch)
		outcome.RolledBack = true
	}

	return outcome, s.refetchOnFailure && !s.closed
}

func (s *Session) emit(o Outcome) {
	select {
	case s.outcomes <- o:
	default:
		s.logger.Warn("outcome dropped, channel full", "task_id", o.TaskID, "kind", o.Kind)
	}
}

func (s *Session) moveOptions() []board.MoveOption {
	if s.renumber {
		return []board.MoveOption{board.WithRenumber()}
	}
	return nil
}

// ============================================================================
// Lifecycle
// ============================================================================

// Wait blocks until every in-flight move request has resolved
func (s *Session) Wait() {
	s.wg.Wait()
}

// Reset clears the board, filters and error state, e.g. on logout.
// Responses for moves issued before the reset are ignored.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Reset()
	s.tracks = make(map[int]*track)
	s.err = nil
	s.filter = api.BoardFilter{}
	s.projects = nil
	s.meetings = nil
}

// Close cancels in-flight requests, waits for them and closes Outcomes
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	close(s.outcomes)
	return nil
}
