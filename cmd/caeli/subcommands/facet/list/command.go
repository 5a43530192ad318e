package list

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/caeli-works/caeli-api-types/facets"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Unverified bool `flag:"unverified" help:"show only facet values which are not human-verified yet"`
}

const ARG_ENTITY_ID = "ENTITY_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List the facet values of an entity.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_ENTITY_ID, Required: true,
				Help: "Id of the entity whose facets are listed",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
List the facet values of an entity as JSON.

With --unverified, only values still waiting for human review are shown.
That is the worklist after an AI enrichment run.
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

		values, err := client.GetFacets(ctx, entityId)
		if err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		if cl.Flags().Unverified {
			filtered := make([]facets.Value, 0, len(values))
			for _, v := range values {
				if !v.Verified {
					filtered = append(filtered, v)
				}
			}
			values = filtered
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(values); err != nil {
			logger.Panicf("fail to dump facet values")
		}
		return nil
	}
}
