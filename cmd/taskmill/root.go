package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskmill",
	Short: "Recursive task decomposition and solver routing",
	Long: `Taskmill breaks a task description into atomic subtasks, routes each
one to the cheapest solver able to handle it, executes the queue, and
writes a plain-text report of the run.

Solvers, cheapest first:
  - pattern:        canned regex answers for extraction-style tasks
  - procedure:      local filesystem procedures (count, size, list)
  - model-light:    small LLM for short tasks
  - model-standard: mid-size LLM for medium tasks
  - model-heavy:    large LLM for open-ended tasks

Decomposition and execution both talk to an OpenAI-compatible server
(LMStudio by default) or the Anthropic API.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(solversCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
