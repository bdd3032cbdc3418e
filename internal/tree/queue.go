package tree

import (
	"sync"

	"github.com/ShayCichocki/taskmill/pkg/models"
)

// Queue is a FIFO queue of atomic tasks awaiting execution. Tasks are
// dequeued exactly once and never re-queued.
type Queue struct {
	mu    sync.Mutex
	items []*models.AtomicTask
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a task to the back of the queue.
func (q *Queue) Enqueue(task *models.AtomicTask) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, task)
}

// Dequeue removes and returns the task at the front of the queue.
// The second return value is false when the queue is empty.
func (q *Queue) Dequeue() (*models.AtomicTask, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	task := q.items[0]
	q.items = q.items[1:]
	return task, true
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Context owns all mutable state for one decomposition run: the tree of
// task nodes and the queue of atomic leaf tasks. Passing it explicitly
// lets multiple runs coexist without cross-contamination.
type Context struct {
	// Tree records how the initial task was decomposed.
	Tree *Tree
	// Queue holds atomic tasks awaiting execution.
	Queue *Queue
}

// NewContext creates a fresh Context with an empty tree and queue.
func NewContext() *Context {
	return &Context{
		Tree:  New(),
		Queue: NewQueue(),
	}
}
