package edit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/caeli-works/caeli-api-types/entities"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	kflag "github.com/caeli-works/caeli/pkg/commandline/flag"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Name       string           `flag:"name" help:"new display name"`
	ExternalId string           `flag:"external-id" help:"new external id"`
	Parent     string           `flag:"parent" help:"new parent entity id"`
	Attribute  *kflag.Attributes `flag:"attribute" alias:"a" metavar:"KEY=VALUE..." help:"attribute to set. Repeatable"`
}

const ARG_ENTITY_ID = "ENTITY_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Update fields of an existing entity.",
		Flags{
			Attribute: &kflag.Attributes{},
		},
		flarc.Args{
			{
				Name: ARG_ENTITY_ID, Required: true,
				Help: "Id of the entity to be updated",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Update fields of an existing entity. Flags that are not passed keep their
current value.
`),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.CaeliEnv,
		client krst.CaeliClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		entityId := cl.Args()[ARG_ENTITY_ID][0]
		flags := cl.Flags()

		current, err := client.GetEntity(ctx, entityId)
		if err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		spec := entities.Spec{
			Name:       current.Name,
			Type:       current.Type,
			ExternalId: current.ExternalId,
			ParentId:   current.ParentId,
			Attributes: current.Attributes,
		}
		if flags.Name != "" {
			spec.Name = flags.Name
		}
		if flags.ExternalId != "" {
			spec.ExternalId = flags.ExternalId
		}
		if flags.Parent != "" {
			spec.ParentId = flags.Parent
		}
		if flags.Attribute != nil && 0 < len(*flags.Attribute) {
			if spec.Attributes == nil {
				spec.Attributes = map[string]string{}
			}
			for k, v := range *flags.Attribute {
				spec.Attributes[k] = v
			}
		}

		updated, err := client.UpdateEntity(ctx, entityId, spec)
		if err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(updated); err != nil {
			logger.Panicf("fail to dump updated entity")
		}
		return nil
	}
}
