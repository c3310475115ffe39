package swipe

import (
	"context"
	"sync"

	"github.com/muhammadolammi/icanmatch/internal/recommend"
)

// TaskState is the observable state of a load.
type TaskState int

const (
	TaskPending TaskState = iota
	TaskResolved
	TaskFailed
)

func (s TaskState) String() string {
	switch s {
	case TaskResolved:
		return "resolved"
	case TaskFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Task tracks one recommendation fetch. It settles exactly once.
type Task struct {
	done chan struct{}

	mu     sync.Mutex
	state  TaskState
	result []recommend.Recommendation
	err    error
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

func (t *Task) settle(result []recommend.Recommendation, err error) {
	t.mu.Lock()
	t.result = result
	t.err = err
	t.state = TaskResolved
	if err != nil {
		t.state = TaskFailed
	}
	t.mu.Unlock()
	close(t.done)
}

func (t *Task) State() TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Done is closed once the task has settled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Result returns the batch in source order and the fetch error, if any.
// Both are zero until the task settles.
func (t *Task) Result() ([]recommend.Recommendation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.err
}

// Wait blocks until the task settles or ctx ends.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
