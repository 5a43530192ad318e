package verify

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

type Flag struct {
	Revoke bool `flag:"revoke" help:"Mark the facet value as unverified instead of verified"`
}

const ARG_FACET_ID = "FACET_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Mark a facet value as verified by a human reviewer.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_FACET_ID, Required: true,
				Help: "Id of the facet value to verify",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Mark a facet value as verified.

Verified facet values are trusted over AI-extracted ones and are never
overwritten by enrichment runs.

	{{ .Command }} FACET_ID

To revoke a verification,

	{{ .Command }} --revoke FACET_ID
`),
	)
}

func Task() common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.CaeliEnv,
		client krst.CaeliClient,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		facetId := cl.Args()[ARG_FACET_ID][0]
		flags := cl.Flags()

		value, err := client.VerifyFacet(ctx, facetId, !flags.Revoke)
		if err != nil {
			return fmt.Errorf("%w: facet id:%s", err, facetId)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(value); err != nil {
			logger.Panicf("fail to dump obtained facet value")
		}
		return nil
	}
}
