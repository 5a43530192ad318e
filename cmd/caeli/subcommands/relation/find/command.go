package find

import (
	"context"
	"encoding/json"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Type string `flag:"type" alias:"t" help:"relation type to find"`
	From string `flag:"from" help:"find only relations from this entity id"`
	To   string `flag:"to" help:"find only relations to this entity id"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Find relations matching the given conditions.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Find relations and dump them as JSON.

Pass no flags at all to list every relation you can read.
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

		found, err := client.FindRelations(ctx, krst.RelationFilter{
			Type:   flags.Type,
			FromId: flags.From,
			ToId:   flags.To,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump found relations")
		}
		return nil
	}
}
