package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Name string `flag:"name" alias:"n" help:"filename stored on the server. Defaults to the local file name"`
}

const (
	ARG_ENTITY_ID = "ENTITY_ID"
	ARG_FILE      = "FILE"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Upload a document for an entity.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_ENTITY_ID, Required: true,
				Help: "Id of the entity the document belongs to",
			},
			{
				Name: ARG_FILE, Required: true,
				Help: "Path of the document to upload",
			},
		},
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
		entityId := cl.Args()[ARG_ENTITY_ID][0]
		file := cl.Args()[ARG_FILE][0]

		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("%w: fail to open %s", err, file)
		}
		defer f.Close()

		name := cl.Flags().Name
		if name == "" {
			name = filepath.Base(file)
		}

		uploaded, err := client.UploadAttachment(ctx, entityId, name, f)
		if err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(uploaded); err != nil {
			logger.Panicf("fail to dump uploaded attachment")
		}
		return nil
	}
}
