// Package tree provides the decomposition tree and atomic-task queue.
// All state is owned by an explicit Context threaded through the engine,
// never by package-level variables.
package tree

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ShayCichocki/taskmill/pkg/models"
)

// ErrUnknownParent indicates a node references a parent that was never recorded.
var ErrUnknownParent = errors.New("unknown parent node")

// ErrDuplicateNode indicates a node ID was recorded twice.
var ErrDuplicateNode = errors.New("duplicate node id")

// ErrChildrenFinal indicates an attempt to attach children to a node twice.
var ErrChildrenFinal = errors.New("children already attached")

// Tree records parent->child relationships produced by decomposition.
// Nodes are never deleted; the tree is retained for the final report.
type Tree struct {
	mu sync.RWMutex
	// nodes maps node ID to the node itself.
	nodes map[string]*models.TaskNode
	// order preserves insertion order for deterministic traversal.
	order []string
}

// New creates a new empty tree.
func New() *Tree {
	return &Tree{
		nodes: make(map[string]*models.TaskNode),
	}
}

// Add records a node. The parent must already exist unless it is the
// root sentinel.
func (t *Tree) Add(node *models.TaskNode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.nodes[node.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID)
	}
	if node.ParentID != models.RootSentinel {
		if _, exists := t.nodes[node.ParentID]; !exists {
			return fmt.Errorf("%w: %s", ErrUnknownParent, node.ParentID)
		}
	}

	t.nodes[node.ID] = node
	t.order = append(t.order, node.ID)
	return nil
}

// AttachChildren records a node's child IDs. A node's children are final:
// attaching twice is an error.
func (t *Tree) AttachChildren(id string, childIDs []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	node, exists := t.nodes[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownParent, id)
	}
	if node.ChildIDs != nil {
		return fmt.Errorf("%w: %s", ErrChildrenFinal, id)
	}

	node.ChildIDs = append([]string{}, childIDs...)
	return nil
}

// Get returns the node with the given ID, or nil if not present.
func (t *Tree) Get(id string) *models.TaskNode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.nodes[id]
}

// Roots returns the nodes whose parent is the root sentinel, in
// insertion order. A normal run has exactly one.
func (t *Tree) Roots() []*models.TaskNode {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var roots []*models.TaskNode
	for _, id := range t.order {
		if t.nodes[id].ParentID == models.RootSentinel {
			roots = append(roots, t.nodes[id])
		}
	}
	return roots
}

// Size returns the number of recorded nodes.
func (t *Tree) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// PathToRoot walks parent links from the given node and returns the IDs
// visited, ending at the last node before the root sentinel. Used to verify
// tree connectivity.
func (t *Tree) PathToRoot(id string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var path []string
	for id != models.RootSentinel {
		node, exists := t.nodes[id]
		if !exists {
			break
		}
		path = append(path, id)
		id = node.ParentID
	}
	return path
}
