package create

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
	Type       string           `flag:"type" alias:"t" help:"entity type. Defaults to the caelienv entityType"`
	ExternalId string           `flag:"external-id" help:"identifier of this entity in an external system"`
	Parent     string           `flag:"parent" help:"id of the parent entity"`
	Attribute  *kflag.Attributes `flag:"attribute" alias:"a" metavar:"KEY=VALUE..." help:"attribute of the entity. Repeatable"`
}

const ARG_NAME = "NAME"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create a new entity.",
		Flags{
			Attribute: &kflag.Attributes{},
		},
		flarc.Args{
			{
				Name: ARG_NAME, Required: true,
				Help: "display name of the new entity",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Create a new entity and dump it as JSON.

Example:

	{{ .Command }} --type company --attribute country=NL "Acme Corp"
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
		flags := cl.Flags()

		entityType := flags.Type
		if entityType == "" {
			entityType = caeliEnv.EntityType
		}
		if entityType == "" {
			return fmt.Errorf("%w: --type is required (no caelienv entityType is set)", flarc.ErrUsage)
		}

		spec := entities.Spec{
			Name:       cl.Args()[ARG_NAME][0],
			Type:       entityType,
			ExternalId: flags.ExternalId,
			ParentId:   flags.Parent,
		}
		if flags.Attribute != nil {
			spec.Attributes = map[string]string(*flags.Attribute)
		}

		created, err := client.RegisterEntity(ctx, spec)
		if err != nil {
			return err
		}

		logger.Printf("registered entity: %s", created.Id)
		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(created); err != nil {
			logger.Panicf("fail to dump created entity")
		}
		return nil
	}
}
