package taskwatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/caeli-works/caeli-api-types/tasks"
)

// ErrWatchUnavailable means a Watcher could not start observing at all.
//
// Fallback moves on to its next Watcher on this error.
var ErrWatchUnavailable = errors.New("task watch unavailable")

// IsUnavailable reports whether err means the watch could not start.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrWatchUnavailable)
}

// EventStream is a sequence of task events, typically a websocket
// subscription to /v1/tasks/{id}/events.
type EventStream interface {
	// Next blocks until the next event, ctx cancellation, or stream end.
	Next(ctx context.Context) (tasks.Event, error)

	Close() error
}

// DialFunc opens an EventStream for a task.
type DialFunc func(ctx context.Context, taskId string) (EventStream, error)

// Streamer observes a task through its event stream instead of polling.
//
// When the dial fails it reports ErrWatchUnavailable, so it composes with a
// Poller in a Fallback.
type Streamer struct {
	Dial DialFunc
}

var _ Watcher = Streamer{}

func (s Streamer) Watch(ctx context.Context, taskId string, observe func(tasks.Task) error) (tasks.Task, error) {
	stream, err := s.Dial(ctx, taskId)
	if err != nil {
		return tasks.Task{}, fmt.Errorf("%w: %s", ErrWatchUnavailable, err)
	}
	defer stream.Close()

	last := tasks.Task{}
	for {
		ev, err := stream.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return last, ctx.Err()
			}
			return last, err
		}

		last = ev.Task
		if observe != nil {
			if err := observe(last); err != nil {
				return last, err
			}
		}

		if last.Status.Terminal() {
			return last, nil
		}
	}
}
