package solver

import (
	"context"
	"fmt"

	"github.com/ShayCichocki/taskmill/internal/llm"
	"github.com/ShayCichocki/taskmill/pkg/models"
)

// ModelSolver forwards task descriptions verbatim to the collaborator's
// named model and uses the response as the result.
type ModelSolver struct {
	completer   llm.Completer
	maxTokens   int
	temperature float64
}

// NewModelSolver creates a ModelSolver with the executor's call settings.
func NewModelSolver(completer llm.Completer, maxTokens int, temperature float64) *ModelSolver {
	return &ModelSolver{
		completer:   completer,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Solve runs the task against the solver's configured model.
func (s *ModelSolver) Solve(ctx context.Context, solver models.Solver, description string) (string, error) {
	if solver.Model == "" {
		return "", fmt.Errorf("solver %s has no model configured", solver.Name)
	}

	response, err := s.completer.Complete(ctx, solver.Model, description, s.maxTokens, s.temperature)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", solver.Model, err)
	}
	return response, nil
}
