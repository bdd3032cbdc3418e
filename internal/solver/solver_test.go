package solver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ShayCichocki/taskmill/internal/config"
	"github.com/ShayCichocki/taskmill/pkg/models"
)

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry(config.Default().Models)
	all := r.All()

	wantOrder := []string{
		models.SolverPattern,
		models.SolverProcedure,
		models.SolverModelLight,
		models.SolverModelStandard,
		models.SolverModelHeavy,
	}

	if len(all) != len(wantOrder) {
		t.Fatalf("registry has %d solvers, want %d", len(all), len(wantOrder))
	}
	for i, want := range wantOrder {
		if all[i].Name != want {
			t.Errorf("registry[%d] = %s, want %s", i, all[i].Name, want)
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(config.ModelsConfig{Light: "tiny", Standard: "mid", Heavy: "big"})

	s, ok := r.Lookup(models.SolverModelHeavy)
	if !ok {
		t.Fatal("Lookup(model-heavy) not found")
	}
	if s.Kind != models.SolverKindModel || s.Model != "big" {
		t.Errorf("Lookup(model-heavy) = %+v", s)
	}

	if _, ok := r.Lookup("oracle"); ok {
		t.Error("Lookup should miss unknown solvers")
	}
}

func TestSolvePattern(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantPart    string
		wantErr     bool
	}{
		{"email", "Extract email addresses", "@", false},
		{"url", "Find all URL references", "https?", false},
		{"number", "Extract number values from the text", `-?\d+`, false},
		{"no match", "Extract the hidden meaning", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SolvePattern(tt.description)
			if tt.wantErr {
				if !errors.Is(err, ErrNoPattern) {
					t.Errorf("SolvePattern error = %v, want ErrNoPattern", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SolvePattern: %v", err)
			}
			if !strings.Contains(got, tt.wantPart) {
				t.Errorf("SolvePattern = %q, want it to contain %q", got, tt.wantPart)
			}
		})
	}
}

func TestSolveProcedureCountFiles(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	// Subdirectories are not files and must not be counted.
	if err := os.Mkdir(filepath.Join(tmpDir, "sub"), 0755); err != nil {
		t.Fatalf("mkdir fixture: %v", err)
	}

	got, err := SolveProcedure("Count files in " + tmpDir)
	if err != nil {
		t.Fatalf("SolveProcedure: %v", err)
	}
	want := "Found 3 files in " + tmpDir
	if got != want {
		t.Errorf("SolveProcedure = %q, want %q", got, want)
	}
}

func TestSolveProcedurePathSize(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.bin")
	if err := os.WriteFile(path, make([]byte, 128), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := SolveProcedure("Get size of " + path)
	if err != nil {
		t.Fatalf("SolveProcedure: %v", err)
	}
	if !strings.Contains(got, "128 bytes") {
		t.Errorf("SolveProcedure = %q, want 128 bytes", got)
	}
}

func TestSolveProcedureMissingPath(t *testing.T) {
	_, err := SolveProcedure("Get size of /definitely/not/a/real/path")
	if err == nil {
		t.Error("SolveProcedure should fail for a missing path")
	}
}

func TestSolveProcedureUnparseable(t *testing.T) {
	_, err := SolveProcedure("Frobnicate the widgets")
	if !errors.Is(err, ErrNoProcedure) {
		t.Errorf("SolveProcedure error = %v, want ErrNoProcedure", err)
	}
}

// staticCompleter returns a fixed response for every call.
type staticCompleter struct {
	response string
	err      error
	gotModel string
}

func (s *staticCompleter) Complete(ctx context.Context, model, prompt string, maxTokens int, temperature float64) (string, error) {
	s.gotModel = model
	return s.response, s.err
}

func TestModelSolver(t *testing.T) {
	completer := &staticCompleter{response: "forty-two"}
	ms := NewModelSolver(completer, 800, 0.7)

	solver := models.Solver{
		Name:  models.SolverModelStandard,
		Kind:  models.SolverKindModel,
		Model: "mid-model",
	}

	got, err := ms.Solve(context.Background(), solver, "What is six times seven?")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got != "forty-two" {
		t.Errorf("Solve = %q", got)
	}
	if completer.gotModel != "mid-model" {
		t.Errorf("Solve used model %q, want mid-model", completer.gotModel)
	}
}

func TestModelSolverNoModel(t *testing.T) {
	ms := NewModelSolver(&staticCompleter{}, 800, 0.7)
	_, err := ms.Solve(context.Background(), models.Solver{Name: models.SolverPattern}, "task")
	if err == nil {
		t.Error("Solve should fail for a solver without a model")
	}
}
