package models

// SolverKind identifies the mechanism a solver uses to produce results.
type SolverKind string

const (
	// SolverKindPattern runs fixed regex extractions against task text.
	SolverKindPattern SolverKind = "pattern"
	// SolverKindProcedure runs scripted filesystem-inspection operations.
	SolverKindProcedure SolverKind = "procedure"
	// SolverKindModel forwards the task to an LLM collaborator.
	SolverKindModel SolverKind = "model"
)

// Valid returns true if the kind is a known value.
func (k SolverKind) Valid() bool {
	switch k {
	case SolverKindPattern, SolverKindProcedure, SolverKindModel:
		return true
	default:
		return false
	}
}

// Well-known solver names, ordered from cheapest to most capable.
const (
	// SolverPattern is the regex pattern matcher.
	SolverPattern = "pattern"
	// SolverProcedure is the scripted filesystem procedure runner.
	SolverProcedure = "procedure"
	// SolverModelLight is the cheapest LLM tier.
	SolverModelLight = "model-light"
	// SolverModelStandard is the mid LLM tier.
	SolverModelStandard = "model-standard"
	// SolverModelHeavy is the most capable LLM tier.
	SolverModelHeavy = "model-heavy"
)

// Solver describes one entry in the solver registry.
// Solvers are immutable after startup; registry order is significant
// because the router prefers the earliest (cheapest) matching entry.
type Solver struct {
	// Name is the unique solver identifier.
	Name string `json:"name"`
	// Kind is the solver mechanism.
	Kind SolverKind `json:"kind"`
	// Capabilities lists what this solver can plausibly handle.
	Capabilities []string `json:"capabilities"`
	// Model is the LLM model name for Kind == SolverKindModel, empty otherwise.
	Model string `json:"model,omitempty"`
}
