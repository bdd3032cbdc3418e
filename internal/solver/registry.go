// Package solver provides the solver registry and the mechanisms that
// execute atomic tasks: regex pattern extraction, scripted filesystem
// procedures, and tiered LLM calls.
package solver

import (
	"github.com/ShayCichocki/taskmill/internal/config"
	"github.com/ShayCichocki/taskmill/pkg/models"
)

// Registry is the static ordered list of available solvers. Order is
// significant: the router prefers the earliest (cheapest) matching entry.
type Registry struct {
	solvers []models.Solver
	byName  map[string]models.Solver
}

// NewRegistry builds the registry from the configured model tiers.
// Defined once at startup; immutable afterwards.
func NewRegistry(tiers config.ModelsConfig) *Registry {
	solvers := []models.Solver{
		{
			Name:         models.SolverPattern,
			Kind:         models.SolverKindPattern,
			Capabilities: []string{"extract", "match", "regex"},
		},
		{
			Name:         models.SolverProcedure,
			Kind:         models.SolverKindProcedure,
			Capabilities: []string{"count-files", "path-size", "list-directory"},
		},
		{
			Name:         models.SolverModelLight,
			Kind:         models.SolverKindModel,
			Capabilities: []string{"summarize", "classify", "short-answer"},
			Model:        tiers.Light,
		},
		{
			Name:         models.SolverModelStandard,
			Kind:         models.SolverKindModel,
			Capabilities: []string{"analyze", "review", "explain", "describe"},
			Model:        tiers.Standard,
		},
		{
			Name:         models.SolverModelHeavy,
			Kind:         models.SolverKindModel,
			Capabilities: []string{"design", "plan", "strategize"},
			Model:        tiers.Heavy,
		},
	}

	byName := make(map[string]models.Solver, len(solvers))
	for _, s := range solvers {
		byName[s.Name] = s
	}

	return &Registry{solvers: solvers, byName: byName}
}

// All returns the solvers in cost order.
func (r *Registry) All() []models.Solver {
	return append([]models.Solver{}, r.solvers...)
}

// Lookup returns the solver with the given name.
func (r *Registry) Lookup(name string) (models.Solver, bool) {
	s, ok := r.byName[name]
	return s, ok
}
