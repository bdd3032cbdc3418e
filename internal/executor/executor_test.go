package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ShayCichocki/taskmill/internal/config"
	"github.com/ShayCichocki/taskmill/internal/llm"
	"github.com/ShayCichocki/taskmill/internal/router"
	"github.com/ShayCichocki/taskmill/internal/solver"
	"github.com/ShayCichocki/taskmill/internal/tree"
	"github.com/ShayCichocki/taskmill/pkg/models"
)

// scriptedCompleter maps prompt substrings to responses; unmatched prompts
// fail with err if set.
type scriptedCompleter struct {
	responses map[string]string
	err       error
}

func (s *scriptedCompleter) Complete(ctx context.Context, model, prompt string, maxTokens int, temperature float64) (string, error) {
	for key, response := range s.responses {
		if strings.Contains(prompt, key) {
			return response, nil
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return "ok", nil
}

func newTestExecutor(completer llm.Completer) *Executor {
	cfg := config.Default()
	registry := solver.NewRegistry(cfg.Models)
	ms := solver.NewModelSolver(completer, cfg.Executor.MaxTokens, cfg.Executor.Temperature)
	return New(registry, router.New(), ms, 0)
}

func enqueue(tc *tree.Context, descriptions ...string) {
	for i, d := range descriptions {
		tc.Queue.Enqueue(&models.AtomicTask{
			ID:          string(rune('a' + i)),
			ParentID:    models.RootSentinel,
			Description: d,
			Status:      models.TaskStatusQueued,
			CreatedAt:   time.Now(),
		})
	}
}

func TestRunQueueFIFOOrder(t *testing.T) {
	e := newTestExecutor(&scriptedCompleter{})
	tc := tree.NewContext()
	enqueue(tc, "first short task", "second short task", "third short task")

	completed := e.RunQueue(context.Background(), tc)

	if len(completed) != 3 {
		t.Fatalf("completed %d tasks, want 3", len(completed))
	}
	for i, want := range []string{"a", "b", "c"} {
		if completed[i].ID != want {
			t.Errorf("completed[%d] = %s, want %s", i, completed[i].ID, want)
		}
	}
}

func TestRunQueuePatternTask(t *testing.T) {
	e := newTestExecutor(&scriptedCompleter{})
	tc := tree.NewContext()
	enqueue(tc, "Extract email addresses")

	completed := e.RunQueue(context.Background(), tc)

	task := completed[0]
	if task.AssignedSolver != models.SolverPattern {
		t.Errorf("assigned solver = %s, want pattern", task.AssignedSolver)
	}
	if task.Status != models.TaskStatusCompleted {
		t.Errorf("status = %s, want completed", task.Status)
	}
	if !strings.Contains(task.Result, "@") {
		t.Errorf("result = %q, want the email pattern", task.Result)
	}
}

func TestRunQueueProcedureTask(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	e := newTestExecutor(&scriptedCompleter{})
	tc := tree.NewContext()
	enqueue(tc, "Count files in "+tmpDir)

	completed := e.RunQueue(context.Background(), tc)

	task := completed[0]
	if task.AssignedSolver != models.SolverProcedure {
		t.Errorf("assigned solver = %s, want procedure", task.AssignedSolver)
	}
	if task.Status != models.TaskStatusCompleted {
		t.Fatalf("status = %s, want completed (result %q)", task.Status, task.Result)
	}
	want := "Found 3 files in " + tmpDir
	if task.Result != want {
		t.Errorf("result = %q, want %q", task.Result, want)
	}
}

func TestRunQueueModelTask(t *testing.T) {
	completer := &scriptedCompleter{
		responses: map[string]string{"photosynthesis": "Plants convert light into energy."},
	}
	e := newTestExecutor(completer)
	tc := tree.NewContext()
	enqueue(tc, "Explain how photosynthesis works")

	completed := e.RunQueue(context.Background(), tc)

	task := completed[0]
	if task.AssignedSolver != models.SolverModelStandard {
		t.Errorf("assigned solver = %s, want model-standard", task.AssignedSolver)
	}
	if task.Result != "Plants convert light into energy." {
		t.Errorf("result = %q", task.Result)
	}
}

func TestRunQueueFailureIsolation(t *testing.T) {
	e := newTestExecutor(&scriptedCompleter{})
	tc := tree.NewContext()
	// The middle task targets a missing path and must fail without
	// stopping the tasks after it.
	enqueue(tc,
		"Extract email addresses",
		"Get size of /definitely/not/a/real/path",
		"Extract url references",
	)

	completed := e.RunQueue(context.Background(), tc)

	if len(completed) != 3 {
		t.Fatalf("completed %d tasks, want 3", len(completed))
	}

	if completed[0].Status != models.TaskStatusCompleted {
		t.Errorf("task 0 status = %s, want completed", completed[0].Status)
	}
	if completed[1].Status != models.TaskStatusFailed {
		t.Errorf("task 1 status = %s, want failed", completed[1].Status)
	}
	if !llm.IsSentinel(completed[1].Result) {
		t.Errorf("failed result = %q, want sentinel prefix", completed[1].Result)
	}
	if completed[2].Status != models.TaskStatusCompleted {
		t.Errorf("task 2 status = %s, want completed", completed[2].Status)
	}
}

func TestRunQueueModelFailure(t *testing.T) {
	e := newTestExecutor(&scriptedCompleter{err: errors.New("connection refused")})
	tc := tree.NewContext()
	enqueue(tc, "Explain how photosynthesis works")

	completed := e.RunQueue(context.Background(), tc)

	task := completed[0]
	if task.Status != models.TaskStatusFailed {
		t.Errorf("status = %s, want failed", task.Status)
	}
	if !strings.Contains(task.Result, "connection refused") {
		t.Errorf("result = %q, want underlying error text", task.Result)
	}
}

func TestRunQueueEmptyQueue(t *testing.T) {
	e := newTestExecutor(&scriptedCompleter{})
	tc := tree.NewContext()

	completed := e.RunQueue(context.Background(), tc)
	if len(completed) != 0 {
		t.Errorf("completed %d tasks from an empty queue", len(completed))
	}
}
