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
	Kind     string `flag:"kind" alias:"k" help:"source kind to find. website, api, rss or sharepoint"`
	Enabled  bool   `flag:"enabled" help:"find only enabled sources"`
	Disabled bool   `flag:"disabled" help:"find only disabled sources"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Find data sources matching the given conditions.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
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
		if flags.Enabled && flags.Disabled {
			return flarc.ErrUsage
		}

		filter := krst.SourceFilter{Kind: flags.Kind}
		if flags.Enabled {
			t := true
			filter.Enabled = &t
		}
		if flags.Disabled {
			f := false
			filter.Enabled = &f
		}

		found, err := client.FindSources(ctx, filter)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump found sources")
		}
		return nil
	}
}
