package loop

import (
	"context"
	"fmt"
	"time"
)

type Next struct {
	// if not nil, breaks with error
	err error

	// if quit == true and err == nil, breaks without error
	quit bool

	// otherwise, continue loop with interval.
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[break] with error: %v", n.err)
	}
	if n.quit {
		return "[break] without error"
	}

	return fmt.Sprintf("[continue] interval: %s", n.interval)
}

// continue loop.
//
// args:
//
// - interval: sleep before starting next task.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// break loop.
//
// args:
//
// - err: If you break loop with error, set non nil value.
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task is one iteration of a loop.
//
// It receives the context and the value the previous iteration returned,
// and returns the next value together with Continue(interval) or Break(err).
type Task[T any] func(context.Context, T) (T, Next)

// Start runs task in a loop.
//
// Task should return 2 values:
//
// - T : any value the next iteration needs.
// For status polling, this is typically the last observed status.
//
// - Next : Continue(time.Duration) to run again after the interval,
// or Break(error) to stop. Zero value (Next{}) equals Continue(0).
//
// Example, polling a backend task until it settles:
//
//	last, err := loop.Start(ctx, tasks.Task{}, func(ctx context.Context, last tasks.Task) (tasks.Task, loop.Next) {
//		got, err := client.GetTask(ctx, taskId)
//		if err != nil {
//			return last, loop.Continue(interval) // a failed tick is not fatal
//		}
//		if got.Status.Terminal() {
//			return got, loop.Break(nil)
//		}
//		return got, loop.Continue(interval)
//	})
//
// Args
//
// - ctx : context. When it is done, the loop breaks with ctx.Err().
//
// - init : task is called as task(ctx, init) at the first time.
//
// - task : task receiving (context, last value), returning (new value, Next).
//
// Returns
//
// - T: the value task returned at last.
// It is returned whether or not the error is nil.
//
// - error: error in Break(error), or ctx.Err() on cancellation.
func Start[T any](ctx context.Context, init T, task Task[T], options ...LoopOption) (T, error) {
	select {
	case <-ctx.Done():
		return init, ctx.Err()
	default:
	}

	value := init
	for {
		interval := 0 * time.Nanosecond

		lc := &loopConfig{ctx: ctx}
		for _, opt := range options {
			lc = opt(lc)
		}

		v, n := func() (T, Next) {
			ctx := lc.ctx
			if lc.deferred != nil {
				defer lc.deferred()
			}
			return task(ctx, value)
		}()

		if n.err != nil {
			return v, n.err
		} else if n.quit {
			return v, nil
		} else {
			value = v
			interval = n.interval
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			// shutting down takes priority over the next tick.
			if !timer.Stop() {
				<-timer.C // drain. see: time.Timer.Stop's document
			}
			return value, ctx.Err()

		case <-timer.C:
			continue
		}
	}
}

type loopConfig struct {
	ctx      context.Context
	deferred func()
}

type LoopOption func(*loopConfig) *loopConfig

// set timeout per loop
//
// this timeout is set on context.Context passed to task.
func WithTimeout(d time.Duration) LoopOption {
	return func(lc *loopConfig) *loopConfig {
		ctx, cancel := context.WithTimeout(lc.ctx, d)
		return &loopConfig{
			ctx: ctx,
			deferred: func() {
				if lc.deferred != nil {
					defer lc.deferred()
				}
				cancel()
			},
		}
	}
}
