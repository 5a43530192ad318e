package rm

import (
	"context"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_RELATION_ID = "RELATION_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete relation for the specified relation id.",
		struct{}{},
		flarc.Args{
			{
				Name:       ARG_RELATION_ID,
				Required:   true,
				Repeatable: false,
				Help:       "Id of the relation to be deleted.",
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
		relationId := cl.Args()[ARG_RELATION_ID][0]
		if err := client.DeleteRelation(ctx, relationId); err != nil {
			return err
		}
		logger.Printf("deleted relation id:%v", relationId)
		return nil
	}
}
