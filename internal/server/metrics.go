package server

import (
	"sync/atomic"
	"time"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal atomic.Int64
	RequestErrors atomic.Int64
	TasksMoved    atomic.Int64
	TasksCreated  atomic.Int64
	TasksDeleted  atomic.Int64
	InFlight      atomic.Int32
	StartTime     time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncTasksMoved increments the moved counter
func (m *Metrics) IncTasksMoved() {
	m.TasksMoved.Add(1)
}

// IncTasksCreated increments the created counter
func (m *Metrics) IncTasksCreated() {
	m.TasksCreated.Add(1)
}

// IncTasksDeleted increments the deleted counter
func (m *Metrics) IncTasksDeleted() {
	m.TasksDeleted.Add(1)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	RequestsTotal int64     `json:"requests_total"`
	RequestErrors int64     `json:"request_errors"`
	TasksMoved    int64     `json:"tasks_moved"`
	TasksCreated  int64     `json:"tasks_created"`
	TasksDeleted  int64     `json:"tasks_deleted"`
	InFlight      int32     `json:"in_flight"`
	StartTime     time.Time `json:"start_time"`
	Uptime        string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal: m.RequestsTotal.Load(),
		RequestErrors: m.RequestErrors.Load(),
		TasksMoved:    m.TasksMoved.Load(),
		TasksCreated:  m.TasksCreated.Load(),
		TasksDeleted:  m.TasksDeleted.Load(),
		InFlight:      m.InFlight.Load(),
		StartTime:     m.StartTime,
		Uptime:        time.Since(m.StartTime).Round(time.Second).String(),
	}
}
