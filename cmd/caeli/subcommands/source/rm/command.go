package rm

import (
	"context"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_SOURCE_ID = "SOURCE_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete data source for the specified source id.",
		struct{}{},
		flarc.Args{
			{
				Name:       ARG_SOURCE_ID,
				Required:   true,
				Repeatable: false,
				Help:       "Id of the source to be deleted.",
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
		sourceId := cl.Args()[ARG_SOURCE_ID][0]
		if err := client.DeleteSource(ctx, sourceId); err != nil {
			return err
		}
		logger.Printf("deleted source id:%v", sourceId)
		return nil
	}
}
