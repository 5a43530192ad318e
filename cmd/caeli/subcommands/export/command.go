package export

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Format string `flag:"format" alias:"f" help:"export format. csv or json"`
	Output string `flag:"output" alias:"o" metavar:"FILE" help:"write the export to FILE instead of stdout"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Download an export of all entities.",
		Flags{
			Format: "csv",
		},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Download every entity you can read, as CSV or JSON.

	{{ .Command }} --format csv -o entities.csv
	{{ .Command }} --format json > entities.json
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
		flags := cl.Flags()
		if flags.Format != "csv" && flags.Format != "json" {
			return fmt.Errorf("%w: --format should be csv or json", flarc.ErrUsage)
		}

		var out io.Writer = cl.Stdout()
		if flags.Output != "" {
			f, err := os.OpenFile(
				flags.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(0644),
			)
			if err != nil {
				return fmt.Errorf("%w: fail to open %s", err, flags.Output)
			}
			defer f.Close()
			out = f
		}

		err := client.ExportEntities(ctx, flags.Format, func(r io.Reader) error {
			_, err := io.Copy(out, r)
			return err
		})
		if err != nil {
			return err
		}

		if flags.Output != "" {
			logger.Printf("exported entities to %s", flags.Output)
		}
		return nil
	}
}
