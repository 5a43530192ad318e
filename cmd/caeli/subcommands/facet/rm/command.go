package rm

import (
	"context"
	"fmt"
	"log"

	"github.com/caeli-works/caeli-api-types/facets"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

const (
	ARG_ENTITY_ID = "ENTITY_ID"
	ARG_FACET_ID  = "FACET_ID"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Remove facet values from an entity.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_ENTITY_ID, Required: true,
				Help: "Id of the entity to remove facets from",
			},
			{
				Name: ARG_FACET_ID, Required: true, Repeatable: true,
				Help: "Id of the facet value to be removed. Repeatable",
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
		facetIds := cl.Args()[ARG_FACET_ID]

		change := facets.Change{Remove: facetIds}
		if _, err := client.PutFacetsForEntity(ctx, entityId, change); err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		logger.Printf("removed %d facet value(s) from entity id:%s", len(facetIds), entityId)
		return nil
	}
}
