package add

import (
	"context"
	"encoding/json"
	"log"

	"github.com/caeli-works/caeli-api-types/relations"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	kflag "github.com/caeli-works/caeli/pkg/commandline/flag"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Type string            `flag:"type" alias:"t" help:"relation type of the new relation"`
	Attr *kflag.Attributes `flag:"attr" alias:"a" metavar:"KEY=VALUE" help:"attribute of the relation. Repeatable"`
}

const (
	ARG_FROM_ID = "FROM_ID"
	ARG_TO_ID   = "TO_ID"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Relate two entities.",
		Flags{
			Attr: &kflag.Attributes{},
		},
		flarc.Args{
			{
				Name: ARG_FROM_ID, Required: true,
				Help: "Id of the entity the relation starts from",
			},
			{
				Name: ARG_TO_ID, Required: true,
				Help: "Id of the entity the relation points to",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Create a relation between two entities.

	{{ .Command }} --type supplies FROM_ID TO_ID

For directed relation types the order of FROM_ID and TO_ID matters.
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
		flags := cl.Flags()
		if flags.Type == "" {
			return flarc.ErrUsage
		}

		spec := relations.Spec{
			Type:   flags.Type,
			FromId: cl.Args()[ARG_FROM_ID][0],
			ToId:   cl.Args()[ARG_TO_ID][0],
		}
		if flags.Attr != nil && len(*flags.Attr) != 0 {
			spec.Attributes = *flags.Attr
		}

		registered, err := client.RegisterRelation(ctx, spec)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(registered); err != nil {
			logger.Panicf("fail to dump registered relation")
		}
		return nil
	}
}
