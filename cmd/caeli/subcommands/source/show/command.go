package show

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_SOURCE_ID = "SOURCE_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show data source detail for the specified source id.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_SOURCE_ID, Required: true,
				Help: "Id of the source to show",
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
		sourceId := cl.Args()[ARG_SOURCE_ID][0]

		source, err := client.GetSource(ctx, sourceId)
		if err != nil {
			return fmt.Errorf("%w: source id:%s", err, sourceId)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(source); err != nil {
			logger.Panicf("fail to dump source")
		}
		return nil
	}
}
