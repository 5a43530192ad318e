package taskwatch

import (
	"context"

	"github.com/caeli-works/caeli-api-types/tasks"
)

// Watcher observes a single backend task until it settles.
//
// Implementations stop when the task reaches a terminal status, when the
// observe callback returns an error, or when ctx is canceled. Every observed
// state, including the terminal one, is passed to observe.
type Watcher interface {
	Watch(ctx context.Context, taskId string, observe func(tasks.Task) error) (tasks.Task, error)
}

// StatusGetter fetches the current state of a task.
//
// rest.CaeliClient satisfies this.
type StatusGetter interface {
	GetTask(ctx context.Context, taskId string) (tasks.Task, error)
}

// Fallback tries each Watcher in order, moving to the next one when Watch
// fails to start (ErrWatchUnavailable). Any other error is returned as is.
type Fallback []Watcher

func (f Fallback) Watch(ctx context.Context, taskId string, observe func(tasks.Task) error) (tasks.Task, error) {
	var lastErr error
	for _, w := range f {
		t, err := w.Watch(ctx, taskId, observe)
		if err == nil || !IsUnavailable(err) {
			return t, err
		}
		lastErr = err
	}
	return tasks.Task{}, lastErr
}
