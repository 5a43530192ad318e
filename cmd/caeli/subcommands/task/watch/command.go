package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/caeli-works/caeli-api-types/tasks"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/caeli-works/caeli/pkg/taskwatch"
	"github.com/youta-t/flarc"
)

const ARG_TASK_ID = "TASK_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Watch a background task until it settles.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_TASK_ID, Required: true,
				Help: "Id of the task to watch",
			},
		},
		common.NewWatchTask(Task()),
		flarc.WithDescription(`
Watch a task, printing its state on every change, until it reaches a
terminal status (completed, failed or cancelled).

The task events stream is used when the server supports it. Otherwise
the task status is polled at a fixed interval (pollInterval of the
caelienv file, 2s when unset).

The exit code is non-zero when the task fails.
`),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		caeliEnv env.CaeliEnv,
		client krst.CaeliClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		taskId := cl.Args()[ARG_TASK_ID][0]
		return WatchTask(ctx, logger, caeliEnv, client, cl.Stdout(), taskId)
	}
}

// WatchTask observes the task until it settles, dumping each observed
// state to out as a JSON line. It returns an error when the task fails
// or is cancelled.
func WatchTask(
	ctx context.Context,
	logger *log.Logger,
	caeliEnv env.CaeliEnv,
	client krst.CaeliClient,
	out io.Writer,
	taskId string,
) error {
	watcher := taskwatch.Fallback{
		taskwatch.Streamer{Dial: client.DialTaskEvents},
		taskwatch.Poller{
			Client:   client,
			Interval: caeliEnv.Interval(taskwatch.DefaultInterval),
			Logger:   logger,
		},
	}

	enc := json.NewEncoder(out)
	last, err := watcher.Watch(ctx, taskId, func(t tasks.Task) error {
		return enc.Encode(t)
	})
	if err != nil {
		return fmt.Errorf("%w: task id:%s", err, taskId)
	}

	switch last.Status {
	case tasks.Completed:
		return nil
	case tasks.Cancelled:
		return fmt.Errorf("task id:%s is cancelled", taskId)
	default:
		return fmt.Errorf("task id:%s failed: %s", taskId, last.Error)
	}
}
