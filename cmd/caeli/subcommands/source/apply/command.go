package apply

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/caeli-works/caeli-api-types/sources"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

type Flags struct {
	Id string `flag:"id" help:"Id of the source to be updated. When omitted, a new source is registered"`
}

const ARG_SOURCE_FILE = "SOURCE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Register or update a data source from a definition file.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_SOURCE_FILE, Required: true,
				Help: "Source definition as YAML or JSON. Pass '-' to read stdin",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Register a new data source,

	{{ .Command }} source.yaml

or replace the configuration of an existing one,

	{{ .Command }} --id SOURCE_ID source.yaml

The definition file looks like below.

	name: corporate wiki
	kind: website
	url: https://wiki.example.com
	enabled: true
	crawl:
	    interval: 24h
	    depth: 3
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
		from := cl.Args()[ARG_SOURCE_FILE][0]

		buf, err := readFrom(cl.Stdin(), from)
		if err != nil {
			return fmt.Errorf("%w: fail to read %s", err, from)
		}

		spec := sources.Spec{}
		if err := yaml.Unmarshal(buf, &spec); err != nil {
			return fmt.Errorf("%w: %s is not a source definition", err, from)
		}

		flags := cl.Flags()
		var applied sources.Detail
		if flags.Id == "" {
			applied, err = client.RegisterSource(ctx, spec)
		} else {
			applied, err = client.UpdateSource(ctx, flags.Id, spec)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(applied); err != nil {
			logger.Panicf("fail to dump applied source")
		}
		return nil
	}
}

func readFrom(stdin io.Reader, from string) ([]byte, error) {
	if from == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(from)
}
