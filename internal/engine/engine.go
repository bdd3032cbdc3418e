// Package engine wires decomposition, routing, execution, reporting and
// run persistence into a single pipeline.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/taskmill/internal/config"
	"github.com/ShayCichocki/taskmill/internal/decompose"
	"github.com/ShayCichocki/taskmill/internal/executor"
	"github.com/ShayCichocki/taskmill/internal/llm"
	"github.com/ShayCichocki/taskmill/internal/report"
	"github.com/ShayCichocki/taskmill/internal/router"
	"github.com/ShayCichocki/taskmill/internal/solver"
	"github.com/ShayCichocki/taskmill/internal/state"
	"github.com/ShayCichocki/taskmill/internal/tree"
	"github.com/ShayCichocki/taskmill/pkg/models"
)

// RunStore is the subset of the state database the engine needs. A nil
// store disables persistence.
type RunStore interface {
	CreateRun(r *state.Run) error
	FinishRun(r *state.Run) error
	SaveTasks(runID string, tasks []*models.AtomicTask) error
}

// Engine runs the full decompose-route-execute-report pipeline.
type Engine struct {
	cfg        *config.Config
	decomposer *decompose.Decomposer
	executor   *executor.Executor
	store      RunStore
	logger     *DebugLogger
}

// Options configures an Engine beyond what config supplies.
type Options struct {
	// Rules replaces the built-in routing rules when non-nil.
	Rules []router.Rule
	// Completer overrides the configured LLM provider when non-nil.
	Completer llm.Completer
	// Store persists run history when non-nil.
	Store RunStore
	// Logger receives debug output. Nil means no logging.
	Logger *DebugLogger
}

// Result summarizes one finished run.
type Result struct {
	RunID      string
	ReportPath string
	Report     string
	Summary    report.Summary
	Tasks      []*models.AtomicTask
	Duration   time.Duration
}

// New assembles an engine from configuration. The completer is shared by
// the decomposer and the model solvers.
func New(cfg *config.Config, opts Options) (*Engine, error) {
	completer := opts.Completer
	if completer == nil {
		var err error
		completer, err = llm.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("create completer: %w", err)
		}
	}

	rt := router.New()
	if opts.Rules != nil {
		var err error
		rt, err = router.NewWithRules(opts.Rules)
		if err != nil {
			return nil, fmt.Errorf("compile routing rules: %w", err)
		}
	}

	registry := solver.NewRegistry(cfg.Models)
	modelSolver := solver.NewModelSolver(completer, cfg.Executor.MaxTokens, cfg.Executor.Temperature)

	dec := decompose.New(completer, cfg)
	exec := executor.New(registry, rt, modelSolver, cfg.Executor.TaskDelay)

	logger := opts.Logger
	if logger == nil {
		logger = NopLogger()
	}
	dec.SetLogf(logger.Log)
	exec.SetLogf(logger.Log)

	return &Engine{
		cfg:        cfg,
		decomposer: dec,
		executor:   exec,
		store:      opts.Store,
		logger:     logger,
	}, nil
}

// Run executes the full pipeline for one input and writes the report
// into the configured output directory.
func (e *Engine) Run(ctx context.Context, input string) (*Result, error) {
	started := time.Now()
	runID := uuid.New().String()
	e.logger.Log("[engine] run %s: %q", runID, input)

	if e.store != nil {
		run := &state.Run{ID: runID, Input: input, StartedAt: started}
		if err := e.store.CreateRun(run); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
	}

	tc := tree.NewContext()
	if _, err := e.decomposer.Run(ctx, tc, input); err != nil {
		return nil, fmt.Errorf("decompose: %w", err)
	}
	e.logger.Log("[engine] run %s: %d nodes, %d queued tasks", runID, tc.Tree.Size(), tc.Queue.Len())

	tasks := e.executor.RunQueue(ctx, tc)
	summary := report.Summarize(tasks)

	rendered := report.Render(input, tc.Tree, tasks)
	reportPath, err := report.Write(e.cfg.Output.Dir, rendered)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	e.logger.Log("[engine] run %s: report at %s", runID, reportPath)

	if e.store != nil {
		if err := e.store.SaveTasks(runID, tasks); err != nil {
			return nil, fmt.Errorf("persist tasks: %w", err)
		}
		run := &state.Run{
			ID:             runID,
			Input:          input,
			TotalTasks:     summary.Total,
			CompletedTasks: summary.Completed,
			FailedTasks:    summary.Failed,
			ReportPath:     reportPath,
		}
		if err := e.store.FinishRun(run); err != nil {
			return nil, fmt.Errorf("finish run: %w", err)
		}
	}

	return &Result{
		RunID:      runID,
		ReportPath: reportPath,
		Report:     rendered,
		Summary:    summary,
		Tasks:      tasks,
		Duration:   time.Since(started),
	}, nil
}
