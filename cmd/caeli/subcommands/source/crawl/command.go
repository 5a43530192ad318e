package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	task_watch "github.com/caeli-works/caeli/cmd/caeli/subcommands/task/watch"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Watch bool `flag:"watch" alias:"w" help:"Watch the crawl task until it settles"`
}

const ARG_SOURCE_ID = "SOURCE_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Start crawling a data source now.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_SOURCE_ID, Required: true,
				Help: "Id of the source to crawl",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Ask the server to crawl a data source, outside of its schedule.

The server responds with a task tracking the crawl. Pass --watch to
follow the task until it settles,

	{{ .Command }} --watch SOURCE_ID
`),
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
		sourceId := cl.Args()[ARG_SOURCE_ID][0]

		task, err := client.StartCrawl(ctx, sourceId)
		if err != nil {
			return fmt.Errorf("%w: source id:%s", err, sourceId)
		}

		if !cl.Flags().Watch {
			enc := json.NewEncoder(cl.Stdout())
			enc.SetIndent("", "    ")
			if err := enc.Encode(task); err != nil {
				logger.Panicf("fail to dump crawl task")
			}
			return nil
		}

		return task_watch.WatchTask(
			ctx, logger, caeliEnv, client, cl.Stdout(), task.TaskId,
		)
	}
}
