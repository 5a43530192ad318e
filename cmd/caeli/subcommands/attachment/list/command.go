package list

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

const ARG_ENTITY_ID = "ENTITY_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List documents uploaded for an entity.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_ENTITY_ID, Required: true,
				Help: "Id of the entity to list attachments of",
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
		entityId := cl.Args()[ARG_ENTITY_ID][0]

		found, err := client.ListAttachments(ctx, entityId)
		if err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump attachments")
		}
		return nil
	}
}
