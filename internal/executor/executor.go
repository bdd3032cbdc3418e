// Package executor drains the atomic-task queue, routing each task to the
// cheapest capable solver and recording its terminal status.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/ShayCichocki/taskmill/internal/llm"
	"github.com/ShayCichocki/taskmill/internal/router"
	"github.com/ShayCichocki/taskmill/internal/solver"
	"github.com/ShayCichocki/taskmill/internal/tree"
	"github.com/ShayCichocki/taskmill/pkg/models"
)

// Executor processes queued tasks strictly in FIFO order, one at a time,
// pausing between tasks so a rate-limited local inference server is never
// overwhelmed. One task's failure never halts the run.
type Executor struct {
	registry    *solver.Registry
	router      *router.Router
	modelSolver *solver.ModelSolver
	taskDelay   time.Duration
	logf        func(format string, args ...interface{})
}

// New creates an Executor.
func New(registry *solver.Registry, rt *router.Router, modelSolver *solver.ModelSolver, taskDelay time.Duration) *Executor {
	return &Executor{
		registry:    registry,
		router:      rt,
		modelSolver: modelSolver,
		taskDelay:   taskDelay,
		logf:        func(format string, args ...interface{}) {},
	}
}

// SetLogf sets the debug logging function.
func (e *Executor) SetLogf(fn func(format string, args ...interface{})) {
	if fn != nil {
		e.logf = fn
	}
}

// RunQueue drains the queue and returns every task in completion order.
// Each task is routed, dispatched, and moved to exactly one terminal
// status; dispatch errors and panics become Failed entries.
func (e *Executor) RunQueue(ctx context.Context, tc *tree.Context) []*models.AtomicTask {
	var completed []*models.AtomicTask

	first := true
	for {
		task, ok := tc.Queue.Dequeue()
		if !ok {
			break
		}

		if !first {
			select {
			case <-ctx.Done():
				e.fail(task, ctx.Err())
				completed = append(completed, task)
				continue
			case <-time.After(e.taskDelay):
			}
		}
		first = false

		task.AssignedSolver = e.router.Route(task.Description)
		e.logf("[executor] task %s -> %s: %q", task.ID, task.AssignedSolver, task.Description)

		result, err := e.dispatch(ctx, task)
		if err != nil {
			e.fail(task, err)
		} else {
			task.Status = models.TaskStatusCompleted
			task.Result = result
		}

		completed = append(completed, task)
	}

	return completed
}

// dispatch runs the task on its assigned solver. Panics inside a solver are
// converted to errors so the queue keeps draining.
func (e *Executor) dispatch(ctx context.Context, task *models.AtomicTask) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("solver panic: %v", r)
		}
	}()

	s, ok := e.registry.Lookup(task.AssignedSolver)
	if !ok {
		return "", fmt.Errorf("unknown solver %q", task.AssignedSolver)
	}

	switch s.Kind {
	case models.SolverKindPattern:
		return solver.SolvePattern(task.Description)
	case models.SolverKindProcedure:
		return solver.SolveProcedure(task.Description)
	case models.SolverKindModel:
		return e.modelSolver.Solve(ctx, s, task.Description)
	default:
		return "", fmt.Errorf("unknown solver kind %q", s.Kind)
	}
}

// fail records a terminal failure, serializing the error with the sentinel
// convention used in reports and run records.
func (e *Executor) fail(task *models.AtomicTask, err error) {
	e.logf("[executor] task %s failed: %v", task.ID, err)
	task.Status = models.TaskStatusFailed
	task.Result = llm.SentinelString(err)
}
