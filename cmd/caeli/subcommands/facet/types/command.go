package types

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/caeli-works/caeli-api-types/facets"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Register string `flag:"register" alias:"r" metavar:"FILE" help:"Register a new facet type from a JSON file ('-' reads stdin)"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List or register facet types.",
		Flag{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
List facet types registered in Caeli.

	{{ .Command }}

To register a new facet type, pass its definition as JSON,

	{{ .Command }} --register facet-type.json
	cat facet-type.json | {{ .Command }} --register -
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
		flags := cl.Flags()

		if flags.Register == "" {
			found, err := client.FindFacetTypes(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cl.Stdout())
			enc.SetIndent("", "    ")
			if err := enc.Encode(found); err != nil {
				logger.Panicf("fail to dump found facet types")
			}
			return nil
		}

		buf, err := readSpec(cl, flags.Register)
		if err != nil {
			return fmt.Errorf("%w: fail to read %s", err, flags.Register)
		}
		spec := facets.FacetType{}
		if err := json.Unmarshal(buf, &spec); err != nil {
			return fmt.Errorf("%w: %s is not a facet type definition", err, flags.Register)
		}

		registered, err := client.RegisterFacetType(ctx, spec)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(registered); err != nil {
			logger.Panicf("fail to dump registered facet type")
		}
		return nil
	}
}

func readSpec(cl flarc.Commandline[Flag], from string) ([]byte, error) {
	if from == "-" {
		return io.ReadAll(cl.Stdin())
	}
	return os.ReadFile(from)
}
