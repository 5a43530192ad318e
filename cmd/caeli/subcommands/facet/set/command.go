package set

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/caeli-works/caeli-api-types/facets"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	kflag "github.com/caeli-works/caeli/pkg/commandline/flag"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Set *kflag.Argslice `flag:"set" alias:"s" metavar:"KEY=VALUE..." help:"facet value to set. Repeatable"`
}

const ARG_ENTITY_ID = "ENTITY_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Set facet values on an entity.",
		Flags{
			Set: &kflag.Argslice{},
		},
		flarc.Args{
			{
				Name: ARG_ENTITY_ID, Required: true,
				Help: "Id of the entity to set facets on",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Set facet values on an entity.

VALUE is taken as JSON when it parses as JSON, and as a plain string
otherwise. So both of these work:

	{{ .Command }} --set industry=logistics ent-1
	{{ .Command }} --set 'headcount=250' --set 'tags=["freight","rail"]' ent-1

Values written this way get provenance "manual" on the server.
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

		if flags.Set == nil || len(*flags.Set) == 0 {
			return fmt.Errorf("%w: at least one --set is required", flarc.ErrUsage)
		}

		change := facets.Change{}
		for _, kv := range *flags.Set {
			key, value, ok := strings.Cut(kv, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return fmt.Errorf("%w: --set needs KEY=VALUE (got %s)", flarc.ErrUsage, kv)
			}
			change.Set = append(change.Set, facets.Setting{
				FacetKey: key,
				Value:    asJson(value),
			})
		}

		values, err := client.PutFacetsForEntity(ctx, entityId, change)
		if err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(values); err != nil {
			logger.Panicf("fail to dump facet values")
		}
		return nil
	}
}

// asJson passes v through when it is already JSON, and quotes it as a
// JSON string otherwise.
func asJson(v string) json.RawMessage {
	if json.Valid([]byte(v)) {
		return json.RawMessage(v)
	}
	quoted, err := json.Marshal(v)
	if err != nil {
		// marshalling a string cannot fail
		panic(err)
	}
	return json.RawMessage(quoted)
}
