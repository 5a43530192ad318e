package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/caeli-works/caeli-api-types/ai"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	task_watch "github.com/caeli-works/caeli/cmd/caeli/subcommands/task/watch"
	kflag "github.com/caeli-works/caeli/pkg/commandline/flag"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Facet *kflag.Argslice `flag:"facet" alias:"f" metavar:"FACET_KEY" help:"facet key to enrich. Repeatable. Defaults to the caelienv enrichFacets"`
	Watch bool            `flag:"watch" alias:"w" help:"Watch the enrichment task until it settles"`
}

const ARG_ENTITY_ID = "ENTITY_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Ask the AI backend to fill facets of an entity.",
		Flags{
			Facet: &kflag.Argslice{},
		},
		flarc.Args{
			{
				Name: ARG_ENTITY_ID, Required: true,
				Help: "Id of the entity to enrich",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Start an AI enrichment task for an entity.

	{{ .Command }} --facet industry --facet headcount ENTITY_ID

When --facet is omitted, the enrichFacets of the caelienv file are
used. AI-extracted values never overwrite human-verified ones.

The server responds with a task. Pass --watch to follow it,

	{{ .Command }} --watch ENTITY_ID
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
		entityId := cl.Args()[ARG_ENTITY_ID][0]
		flags := cl.Flags()

		facetKeys := []string{}
		if flags.Facet != nil {
			facetKeys = append(facetKeys, *flags.Facet...)
		}
		if len(facetKeys) == 0 {
			facetKeys = caeliEnv.EnrichFacets
		}
		if len(facetKeys) == 0 {
			return fmt.Errorf(
				"%w: no facet to enrich. pass --facet or set enrichFacets in caelienv",
				flarc.ErrUsage,
			)
		}

		task, err := client.StartEnrichment(ctx, ai.EnrichmentRequest{
			EntityId:  entityId,
			FacetKeys: facetKeys,
		})
		if err != nil {
			if errors.Is(err, krst.ErrAIUnavailable) {
				return fmt.Errorf("%w: retry later", err)
			}
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		if !flags.Watch {
			enc := json.NewEncoder(cl.Stdout())
			enc.SetIndent("", "    ")
			if err := enc.Encode(task); err != nil {
				logger.Panicf("fail to dump enrichment task")
			}
			return nil
		}

		return task_watch.WatchTask(
			ctx, logger, caeliEnv, client, cl.Stdout(), task.TaskId,
		)
	}
}
