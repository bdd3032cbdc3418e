// Package report renders a run's decomposition tree and execution results
// into a human-readable document.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ShayCichocki/taskmill/internal/tree"
	"github.com/ShayCichocki/taskmill/pkg/models"
)

// Summary holds the aggregate counts rendered at the top of a report and
// printed by the CLI after a run.
type Summary struct {
	// Total is the number of executed atomic tasks.
	Total int
	// Completed is the number of tasks that finished successfully.
	Completed int
	// Failed is the number of tasks with a terminal failure.
	Failed int
	// BySolver counts executed tasks per assigned solver.
	BySolver map[string]int
}

// SuccessRate returns the completed fraction in percent. Zero tasks count
// as a fully successful (if empty) run.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 100.0
	}
	return float64(s.Completed) / float64(s.Total) * 100.0
}

// Summarize computes aggregate counts over the completed task list.
func Summarize(completed []*models.AtomicTask) Summary {
	s := Summary{BySolver: make(map[string]int)}
	for _, task := range completed {
		s.Total++
		switch task.Status {
		case models.TaskStatusCompleted:
			s.Completed++
		case models.TaskStatusFailed:
			s.Failed++
		}
		if task.AssignedSolver != "" {
			s.BySolver[task.AssignedSolver]++
		}
	}
	return s
}

// Render produces the full report document: the original input, the
// indented decomposition tree, aggregate counts, the per-solver breakdown,
// and per-task details. Pure string assembly.
func Render(initialPrompt string, tr *tree.Tree, completed []*models.AtomicTask) string {
	var b strings.Builder

	b.WriteString("TASKMILL RUN REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString("Input:\n")
	b.WriteString("  " + initialPrompt + "\n\n")

	b.WriteString("Decomposition:\n")
	for _, root := range tr.Roots() {
		renderNode(&b, tr, root, 1)
	}
	b.WriteString("\n")

	summary := Summarize(completed)
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  Total tasks:     %d\n", summary.Total)
	fmt.Fprintf(&b, "  Completed:       %d\n", summary.Completed)
	fmt.Fprintf(&b, "  Failed:          %d\n", summary.Failed)
	fmt.Fprintf(&b, "  Success rate:    %.1f%%\n\n", summary.SuccessRate())

	b.WriteString("Tasks per solver:\n")
	for _, name := range sortedKeys(summary.BySolver) {
		fmt.Fprintf(&b, "  %-16s %d\n", name, summary.BySolver[name])
	}
	b.WriteString("\n")

	b.WriteString("Results:\n")
	for i, task := range completed {
		fmt.Fprintf(&b, "  [%d] %s\n", i+1, task.Description)
		fmt.Fprintf(&b, "      solver: %s\n", task.AssignedSolver)
		fmt.Fprintf(&b, "      status: %s\n", task.Status)
		fmt.Fprintf(&b, "      result: %s\n", indentContinuation(task.Result, 14))
	}

	return b.String()
}

// renderNode writes one node and recurses depth-first into its children,
// replaying the parent/child order recorded during decomposition.
func renderNode(b *strings.Builder, tr *tree.Tree, node *models.TaskNode, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString("- " + node.Description + "\n")
	for _, childID := range node.ChildIDs {
		child := tr.Get(childID)
		if child == nil {
			continue
		}
		renderNode(b, tr, child, indent+1)
	}
}

// indentContinuation keeps multi-line results aligned under their label.
func indentContinuation(s string, indent int) string {
	lines := strings.Split(s, "\n")
	if len(lines) == 1 {
		return s
	}
	pad := "\n" + strings.Repeat(" ", indent)
	return strings.Join(lines, pad)
}

// sortedKeys returns map keys in a stable order for deterministic output.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
