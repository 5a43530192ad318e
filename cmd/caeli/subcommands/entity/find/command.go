package find

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/caeli-works/caeli-api-types/entities"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	kflag "github.com/caeli-works/caeli/pkg/commandline/flag"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Type         string              `flag:"type" alias:"t" help:"entity type to find. Defaults to the caelienv entityType"`
	Parent       string              `flag:"parent" help:"find only children of this entity id"`
	Query        string              `flag:"query" alias:"q" help:"free-text search over name and external id"`
	UpdatedSince *kflag.LooseRFC3339 `flag:"updated-since" help:"find entities updated at this time or later. Format: YYYY-mm-dd[THH:MM[:SS]][TZ]"`
}

type FindEntities func(
	ctx context.Context,
	client krst.CaeliClient,
	filter krst.EntityFilter,
) ([]entities.Detail, error)

type Option struct {
	find FindEntities
}

func WithFinder(find FindEntities) func(*Option) *Option {
	return func(o *Option) *Option {
		o.find = find
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{
		find: RunFindEntities,
	}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Find entities matching the given conditions.",
		Flags{
			UpdatedSince: &kflag.LooseRFC3339{},
		},
		flarc.Args{},
		common.NewTask(Task(option.find)),
		flarc.WithDescription(`
Find entities and dump them as JSON.

When --type is omitted, the entityType of the caelienv file (if any) is used.
Pass no flags at all to list every entity you can read.
`),
	)
}

func Task(find FindEntities) common.Task[Flags] {
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

		filter := krst.EntityFilter{
			Type:     entityType,
			ParentId: flags.Parent,
			Query:    flags.Query,
		}
		if t := flags.UpdatedSince.Time(); t != nil && !t.IsZero() {
			s := t.Format(time.RFC3339)
			filter.UpdatedSince = &s
		}

		found, err := find(ctx, client, filter)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump found entities")
		}
		return nil
	}
}

func RunFindEntities(
	ctx context.Context, client krst.CaeliClient, filter krst.EntityFilter,
) ([]entities.Detail, error) {
	return client.FindEntities(ctx, filter)
}
