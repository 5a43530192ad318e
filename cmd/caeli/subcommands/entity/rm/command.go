package rm

import (
	"context"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

type Option struct {
	remove func(
		ctx context.Context,
		client krst.CaeliClient,
		entityId string,
	) error
}

func WithRemover(
	remove func(
		ctx context.Context,
		client krst.CaeliClient,
		entityId string,
	) error,
) func(*Option) *Option {
	return func(opt *Option) *Option {
		opt.remove = remove
		return opt
	}
}

const ARG_ENTITY_ID = "ENTITY_ID"

func New(
	options ...func(*Option) *Option,
) (flarc.Command, error) {
	option := &Option{
		remove: RunDeleteEntity,
	}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Delete entity for the specified entity id.",
		struct{}{},
		flarc.Args{
			{
				Name:       ARG_ENTITY_ID,
				Required:   true,
				Repeatable: false,
				Help:       "Id of the entity to be deleted.",
			},
		},
		common.NewTask(Task(option.remove)),
	)
}

func Task(
	remove func(context.Context, krst.CaeliClient, string) error,
) common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.CaeliEnv,
		client krst.CaeliClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		entityId := cl.Args()[ARG_ENTITY_ID][0]
		if err := remove(ctx, client, entityId); err != nil {
			return err
		}
		logger.Printf("deleted entity id:%v", entityId)
		return nil
	}
}

func RunDeleteEntity(ctx context.Context, client krst.CaeliClient, entityId string) error {
	return client.DeleteEntity(ctx, entityId)
}
