package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	task_watch "github.com/caeli-works/caeli/cmd/caeli/subcommands/task/watch"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Watch bool `flag:"watch" alias:"w" help:"Watch the analysis task until it settles"`
}

const ARG_ATTACHMENT_ID = "ATTACHMENT_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Ask the AI backend to analyze an uploaded document.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_ATTACHMENT_ID, Required: true,
				Help: "Id of the attachment to analyze",
			},
		},
		common.NewTask(Task()),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		caeliEnv env.CaeliEnv,
		client krst.CaeliClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		attachmentId := cl.Args()[ARG_ATTACHMENT_ID][0]

		task, err := client.StartAnalysis(ctx, attachmentId)
		if err != nil {
			if errors.Is(err, krst.ErrAIUnavailable) {
				return fmt.Errorf("%w: retry later", err)
			}
			return fmt.Errorf("%w: attachment id:%s", err, attachmentId)
		}

		if !cl.Flags().Watch {
			enc := json.NewEncoder(cl.Stdout())
			enc.SetIndent("", "    ")
			if err := enc.Encode(task); err != nil {
				logger.Panicf("fail to dump analysis task")
			}
			return nil
		}

		return task_watch.WatchTask(
			ctx, logger, caeliEnv, client, cl.Stdout(), task.TaskId,
		)
	}
}
