// Package decompose breaks one task description into a tree of atomic
// subtasks, asking the LLM collaborator to split anything the atomicity
// classifier rejects.
package decompose

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/taskmill/internal/config"
	"github.com/ShayCichocki/taskmill/internal/llm"
	"github.com/ShayCichocki/taskmill/internal/tree"
	"github.com/ShayCichocki/taskmill/pkg/models"
)

// numberedLine matches one "N. subtask" line of a decomposition response.
// Lines that do not match are discarded.
var numberedLine = regexp.MustCompile(`^\s*\d+[\.\)]\s*(.+)$`)

// Decomposer recursively splits tasks until every leaf is atomic or the
// depth bound is reached. Collaborator failures demote the task to atomic;
// decomposition never aborts a run.
type Decomposer struct {
	completer   llm.Completer
	classifier  *Classifier
	model       string
	maxDepth    int
	maxSubtasks int
	maxTokens   int
	temperature float64
	logf        func(format string, args ...interface{})
}

// New creates a Decomposer from configuration. Decomposition requests go to
// the standard model tier.
func New(completer llm.Completer, cfg *config.Config) *Decomposer {
	return &Decomposer{
		completer:   completer,
		classifier:  NewClassifier(cfg.Decompose.AtomicMaxChars, cfg.Decompose.AtomicMaxWords),
		model:       cfg.Models.Standard,
		maxDepth:    cfg.Decompose.MaxDepth,
		maxSubtasks: cfg.Decompose.MaxSubtasks,
		maxTokens:   cfg.Decompose.MaxTokens,
		temperature: cfg.Decompose.Temperature,
		logf:        func(format string, args ...interface{}) {},
	}
}

// SetLogf sets the debug logging function.
func (d *Decomposer) SetLogf(fn func(format string, args ...interface{})) {
	if fn != nil {
		d.logf = fn
	}
}

// Run decomposes the initial task description into tc, starting at depth 0
// with the root sentinel as parent. Returns the root node's ID.
func (d *Decomposer) Run(ctx context.Context, tc *tree.Context, description string) (string, error) {
	return d.decompose(ctx, tc, description, 0, models.RootSentinel)
}

// decompose allocates a node for description, then either enqueues it as an
// atomic task (base case) or splits it and recurses into each subtask.
// The only returned errors are tree-invariant violations, which indicate a
// bug; collaborator failures are absorbed by demoting to atomic.
func (d *Decomposer) decompose(ctx context.Context, tc *tree.Context, description string, depth int, parentID string) (string, error) {
	node := &models.TaskNode{
		ID:          uuid.New().String(),
		ParentID:    parentID,
		Description: description,
		Depth:       depth,
	}
	if err := tc.Tree.Add(node); err != nil {
		return "", fmt.Errorf("record task node: %w", err)
	}

	if depth >= d.maxDepth || d.classifier.IsAtomic(description) {
		d.logf("[decompose] leaf at depth %d: %q", depth, description)
		d.enqueue(tc, node)
		return node.ID, nil
	}

	prompt := fmt.Sprintf(decompositionPrompt, d.maxSubtasks, description)
	response, err := d.completer.Complete(ctx, d.model, prompt, d.maxTokens, d.temperature)
	if err != nil {
		// Decomposition failure must never abort the run: demote to atomic.
		d.logf("[decompose] collaborator failed at depth %d, demoting to atomic: %v", depth, err)
		d.enqueue(tc, node)
		return node.ID, nil
	}

	subtasks := ParseSubtasks(response, d.maxSubtasks)
	if len(subtasks) == 0 {
		// A response with no parseable numbered lines is treated the same
		// as a failed call, so the branch of work is never silently lost.
		d.logf("[decompose] no parseable subtasks at depth %d, demoting to atomic", depth)
		d.enqueue(tc, node)
		return node.ID, nil
	}

	d.logf("[decompose] depth %d: %d subtasks for %q", depth, len(subtasks), description)

	childIDs := make([]string, 0, len(subtasks))
	for _, subtask := range subtasks {
		childID, err := d.decompose(ctx, tc, subtask, depth+1, node.ID)
		if err != nil {
			return "", err
		}
		childIDs = append(childIDs, childID)
	}

	if err := tc.Tree.AttachChildren(node.ID, childIDs); err != nil {
		return "", fmt.Errorf("attach children: %w", err)
	}

	return node.ID, nil
}

// enqueue creates the atomic task for a leaf node and adds it to the queue.
// The atomic task shares the node's ID so report entries can be joined back
// to the tree.
func (d *Decomposer) enqueue(tc *tree.Context, node *models.TaskNode) {
	tc.Queue.Enqueue(&models.AtomicTask{
		ID:          node.ID,
		ParentID:    node.ParentID,
		Description: node.Description,
		Status:      models.TaskStatusQueued,
		CreatedAt:   time.Now(),
	})
}

// ParseSubtasks extracts the subtask list from a decomposition response.
// Lines without a leading "N." numbering are discarded, numbering is
// stripped, blank results are dropped, and the list is capped at max
// entries if the model over-produces.
func ParseSubtasks(response string, max int) []string {
	var subtasks []string

	for _, line := range strings.Split(response, "\n") {
		m := numberedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[1])
		if text == "" {
			continue
		}
		subtasks = append(subtasks, text)
		if len(subtasks) == max {
			break
		}
	}

	return subtasks
}
