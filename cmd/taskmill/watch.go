package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/taskmill/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory for task files",
	Long: `Watch a directory for *.task files and run each one as it appears.

A task file holds one task description as plain text. After processing,
the file is renamed with a .done suffix so it is only picked up once.
Files already present when the watch starts are processed first.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&runMaxDepth, "max-depth", 0, "Override decomposition depth bound")
	watchCmd.Flags().IntVar(&runMaxSubtasks, "max-subtasks", 0, "Override subtasks per decomposition")
	watchCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "Override report output directory")
	watchCmd.Flags().StringVar(&runDelay, "delay", "", "Override delay between tasks (e.g. 250ms)")
	watchCmd.Flags().StringVar(&runRules, "rules", "", "YAML file replacing the built-in routing rules")
	watchCmd.Flags().BoolVar(&runNoStore, "no-store", false, "Skip recording runs in the history database")
	watchCmd.Flags().StringVar(&runDebugLog, "debug-log", "", "Write debug output to this file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	eng, closeFn, err := buildEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	w, err := watch.New(dir, watch.RunnerFunc(func(ctx context.Context, input string) error {
		fmt.Printf("Processing: %s\n", input)
		res, err := eng.Run(ctx, input)
		if err != nil {
			return err
		}
		printSummary(res)
		fmt.Println()
		return nil
	}))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Watching %s for %s files. %s to stop.\n\n",
		dir, watch.TaskExt, color.YellowString("Ctrl+C"))

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
