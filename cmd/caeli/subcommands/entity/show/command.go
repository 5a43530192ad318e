package show

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/caeli-works/caeli-api-types/entities"
	"github.com/caeli-works/caeli-api-types/facets"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Facets bool `flag:"facets" help:"also fetch and show the facet values of the entity"`
}

const ARG_ENTITY_ID = "ENTITY_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Return the entity information for the specified entity id.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_ENTITY_ID, Required: true,
				Help: "Id of the entity to be shown",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Return the entity information for the specified entity id.

When --facets is passed, the facet values of the entity are fetched and
shown as well.
`),
	)
}

type detailWithFacets struct {
	entities.Detail
	Facets []facets.Value `json:"facets"`
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

		detail, err := client.GetEntity(ctx, entityId)
		if err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")

		if !cl.Flags().Facets {
			if err := enc.Encode(detail); err != nil {
				logger.Panicf("fail to dump found entity")
			}
			return nil
		}

		values, err := client.GetFacets(ctx, entityId)
		if err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}
		if err := enc.Encode(detailWithFacets{Detail: detail, Facets: values}); err != nil {
			logger.Panicf("fail to dump found entity")
		}
		return nil
	}
}
