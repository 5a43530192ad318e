package taskwatch

import (
	"context"
	"log"
	"time"

	"github.com/caeli-works/caeli-api-types/tasks"
	"github.com/caeli-works/caeli/pkg/loop"
)

// DefaultInterval between status polls.
const DefaultInterval = 2 * time.Second

// Poller observes a task by fetching its status at a fixed interval.
//
// There is no backoff and no retry ceiling: a failed tick is logged and the
// loop continues, until the task settles or ctx is canceled.
type Poller struct {
	Client StatusGetter

	// Interval between polls. DefaultInterval when zero.
	Interval time.Duration

	// Logger for failed ticks. Discarded when nil.
	Logger *log.Logger
}

var _ Watcher = Poller{}

func (p Poller) Watch(ctx context.Context, taskId string, observe func(tasks.Task) error) (tasks.Task, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return loop.Start(ctx, tasks.Task{}, func(ctx context.Context, last tasks.Task) (tasks.Task, loop.Next) {
		got, err := p.Client.GetTask(ctx, taskId)
		if err != nil {
			if ctx.Err() != nil {
				return last, loop.Break(ctx.Err())
			}
			if p.Logger != nil {
				p.Logger.Printf("failed to poll task %s: %s", taskId, err)
			}
			return last, loop.Continue(interval)
		}

		if observe != nil {
			if err := observe(got); err != nil {
				return got, loop.Break(err)
			}
		}

		if got.Status.Terminal() {
			return got, loop.Break(nil)
		}
		return got, loop.Continue(interval)
	})
}
