// Package models defines the shared task and solver types for taskmill.
package models

import "time"

// RootSentinel is the parent ID used for the initial task, which has no
// real parent node in the decomposition tree.
const RootSentinel = "root"

// TaskStatus represents the current state of an atomic task.
type TaskStatus string

const (
	// TaskStatusQueued indicates the task is waiting for execution.
	TaskStatusQueued TaskStatus = "queued"
	// TaskStatusCompleted indicates the task executed successfully.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed indicates the task execution failed.
	TaskStatusFailed TaskStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusQueued, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// TaskNode is one node in the decomposition tree. Nodes are created by the
// decomposer, never mutated after their children are attached, and retained
// for the final report.
type TaskNode struct {
	// ID is the unique identifier for this node.
	ID string `json:"id"`
	// ParentID is the ID of the parent node, or RootSentinel for the
	// initial task.
	ParentID string `json:"parent_id"`
	// Description is the task text this node was created for.
	Description string `json:"description"`
	// ChildIDs lists child node IDs in generation order. Populated at most
	// once; empty for leaves.
	ChildIDs []string `json:"child_ids,omitempty"`
	// Depth is the recursion depth at creation (root = 0).
	Depth int `json:"depth"`
}

// AtomicTask is a leaf unit of work queued for execution. It is dequeued
// exactly once, transitions from Queued to exactly one terminal status, and
// is never re-queued.
type AtomicTask struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`
	// ParentID is the ID of the owning tree node, or RootSentinel.
	ParentID string `json:"parent_id"`
	// Description is the task text to execute.
	Description string `json:"description"`
	// AssignedSolver is set by the router immediately before execution.
	AssignedSolver string `json:"assigned_solver,omitempty"`
	// Status is the current state of the task.
	Status TaskStatus `json:"status"`
	// Result holds the solver output, or an error description on failure.
	Result string `json:"result,omitempty"`
	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`
}

// Terminal returns true once the task has left the queue.
func (t *AtomicTask) Terminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}
