package tree

import (
	"errors"
	"testing"
	"time"

	"github.com/ShayCichocki/taskmill/pkg/models"
)

func node(id, parent string, depth int) *models.TaskNode {
	return &models.TaskNode{
		ID:          id,
		ParentID:    parent,
		Description: "task " + id,
		Depth:       depth,
	}
}

func TestTreeAdd(t *testing.T) {
	tr := New()

	if err := tr.Add(node("a", models.RootSentinel, 0)); err != nil {
		t.Fatalf("Add root: %v", err)
	}
	if err := tr.Add(node("b", "a", 1)); err != nil {
		t.Fatalf("Add child: %v", err)
	}

	if tr.Size() != 2 {
		t.Errorf("Size() = %d, want 2", tr.Size())
	}
	if got := tr.Get("b"); got == nil || got.ParentID != "a" {
		t.Errorf("Get(b) = %+v, want parent a", got)
	}
}

func TestTreeAddDuplicate(t *testing.T) {
	tr := New()
	if err := tr.Add(node("a", models.RootSentinel, 0)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := tr.Add(node("a", models.RootSentinel, 0))
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("Add duplicate = %v, want ErrDuplicateNode", err)
	}
}

func TestTreeAddUnknownParent(t *testing.T) {
	tr := New()
	err := tr.Add(node("b", "missing", 1))
	if !errors.Is(err, ErrUnknownParent) {
		t.Errorf("Add with unknown parent = %v, want ErrUnknownParent", err)
	}
}

func TestAttachChildrenFinal(t *testing.T) {
	tr := New()
	if err := tr.Add(node("a", models.RootSentinel, 0)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := tr.AttachChildren("a", []string{"b", "c"}); err != nil {
		t.Fatalf("AttachChildren: %v", err)
	}

	err := tr.AttachChildren("a", []string{"d"})
	if !errors.Is(err, ErrChildrenFinal) {
		t.Errorf("second AttachChildren = %v, want ErrChildrenFinal", err)
	}

	got := tr.Get("a").ChildIDs
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("ChildIDs = %v, want [b c]", got)
	}
}

func TestPathToRoot(t *testing.T) {
	tr := New()
	tr.Add(node("a", models.RootSentinel, 0))
	tr.Add(node("b", "a", 1))
	tr.Add(node("c", "b", 2))

	path := tr.PathToRoot("c")
	want := []string{"c", "b", "a"}
	if len(path) != len(want) {
		t.Fatalf("PathToRoot = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("PathToRoot[%d] = %s, want %s", i, path[i], want[i])
		}
	}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"1", "2", "3"} {
		q.Enqueue(&models.AtomicTask{
			ID:        id,
			ParentID:  models.RootSentinel,
			Status:    models.TaskStatusQueued,
			CreatedAt: time.Now(),
		})
	}

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}

	for _, want := range []string{"1", "2", "3"} {
		task, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue returned empty, want task %s", want)
		}
		if task.ID != want {
			t.Errorf("Dequeue order: got %s, want %s", task.ID, want)
		}
	}

	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue on empty queue should return false")
	}
}
