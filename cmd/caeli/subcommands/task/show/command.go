package show

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_TASK_ID = "TASK_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the current state of a background task.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_TASK_ID, Required: true,
				Help: "Id of the task to show",
			},
		},
		common.NewTask(Task()),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.CaeliEnv,
		client krst.CaeliClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		taskId := cl.Args()[ARG_TASK_ID][0]

		task, err := client.GetTask(ctx, taskId)
		if err != nil {
			return fmt.Errorf("%w: task id:%s", err, taskId)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(task); err != nil {
			logger.Panicf("fail to dump task")
		}
		return nil
	}
}
