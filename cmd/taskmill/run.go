package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/taskmill/internal/config"
	"github.com/ShayCichocki/taskmill/internal/engine"
	"github.com/ShayCichocki/taskmill/internal/router"
	"github.com/ShayCichocki/taskmill/internal/state"
)

var (
	runMaxDepth    int
	runMaxSubtasks int
	runOutputDir   string
	runDelay       string
	runRules       string
	runNoStore     bool
	runDebugLog    string
)

var runCmd = &cobra.Command{
	Use:   "run <task>",
	Short: "Decompose and execute a task",
	Long: `Decompose a task into atomic subtasks, route each to a solver,
execute the queue in order, and write a report.

The task is split recursively until each piece is atomic or the depth
bound is reached. Atomic pieces are queued in discovery order and
executed one at a time with a fixed delay between them. A task that
fails or panics is recorded as failed; the rest of the queue still runs.

Routing rules can be replaced with --rules pointing at a YAML file:

  rules:
    - match: 'count\s+files'
      solver: procedure
    - match: 'summarize'
      solver: model-light`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTask,
}

func init() {
	runCmd.Flags().IntVar(&runMaxDepth, "max-depth", 0, "Override decomposition depth bound")
	runCmd.Flags().IntVar(&runMaxSubtasks, "max-subtasks", 0, "Override subtasks per decomposition")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "Override report output directory")
	runCmd.Flags().StringVar(&runDelay, "delay", "", "Override delay between tasks (e.g. 250ms)")
	runCmd.Flags().StringVar(&runRules, "rules", "", "YAML file replacing the built-in routing rules")
	runCmd.Flags().BoolVar(&runNoStore, "no-store", false, "Skip recording the run in the history database")
	runCmd.Flags().StringVar(&runDebugLog, "debug-log", "", "Write debug output to this file")
}

func runTask(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")

	eng, closeFn, err := buildEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	// Ctrl+C cancels the run; already-executed tasks still get reported.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Decomposing: %s\n\n", input)
	res, err := eng.Run(ctx, input)
	if err != nil {
		return err
	}

	printSummary(res)
	return nil
}

// buildEngine assembles an engine from config plus command-line overrides.
// The returned function closes the store and debug logger.
func buildEngine() (*engine.Engine, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cfg)

	opts := engine.Options{}

	if runRules != "" {
		rules, err := router.LoadRules(runRules)
		if err != nil {
			return nil, nil, fmt.Errorf("load rules: %w", err)
		}
		opts.Rules = rules
	}

	var db *state.DB
	if cfg.Store.Enabled && !runNoStore {
		db, err = state.OpenDefault()
		if err != nil {
			return nil, nil, fmt.Errorf("open run store: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate run store: %w", err)
		}
		opts.Store = db
	}

	logger, err := engine.NewDebugLogger(runDebugLog)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	opts.Logger = logger

	eng, err := engine.New(cfg, opts)
	if err != nil {
		if db != nil {
			db.Close()
		}
		logger.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if db != nil {
			db.Close()
		}
		logger.Close()
	}
	return eng, closeFn, nil
}

// applyOverrides folds command-line flags into the loaded config.
func applyOverrides(cfg *config.Config) {
	if runMaxDepth > 0 {
		cfg.Decompose.MaxDepth = runMaxDepth
	}
	if runMaxSubtasks > 0 {
		cfg.Decompose.MaxSubtasks = runMaxSubtasks
	}
	if runOutputDir != "" {
		cfg.Output.Dir = runOutputDir
	}
	if runDelay != "" {
		if d, err := time.ParseDuration(runDelay); err == nil {
			cfg.Executor.TaskDelay = d
		}
	}
}

// printSummary prints a colored one-screen recap of the run.
func printSummary(res *engine.Result) {
	fmt.Printf("Executed %d tasks in %s\n", res.Summary.Total, res.Duration.Round(time.Millisecond))
	fmt.Printf("  %s %d completed\n", color.GreenString("✓"), res.Summary.Completed)
	if res.Summary.Failed > 0 {
		fmt.Printf("  %s %d failed\n", color.RedString("✗"), res.Summary.Failed)
	}
	fmt.Printf("  success rate: %.1f%%\n\n", res.Summary.SuccessRate())
	names := make([]string, 0, len(res.Summary.BySolver))
	for name := range res.Summary.BySolver {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %d\n", name, res.Summary.BySolver[name])
	}
	fmt.Printf("\nReport: %s\n", res.ReportPath)
}
