package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/taskmill/internal/config"
	"github.com/ShayCichocki/taskmill/internal/solver"
)

var solversCmd = &cobra.Command{
	Use:   "solvers",
	Short: "List registered solvers",
	Long: `List the solver registry in routing order, cheapest first.

Routing tries each solver's rules in this order and falls back to a
word-count heuristic when nothing matches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		registry := solver.NewRegistry(cfg.Models)
		for i, s := range registry.All() {
			fmt.Printf("%d. %s (%s)\n", i+1, s.Name, s.Kind)
			if s.Model != "" {
				fmt.Printf("   model: %s\n", s.Model)
			}
			if len(s.Capabilities) > 0 {
				fmt.Printf("   handles: %s\n", strings.Join(s.Capabilities, ", "))
			}
		}
		return nil
	},
}
