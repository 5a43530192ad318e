package tree

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/caeli-works/caeli-api-types/entities"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Depth int `flag:"depth" alias:"d" help:"maximum depth to descend. 0 means no limit"`
}

const ARG_ENTITY_ID = "ENTITY_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the children of an entity as a tree.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_ENTITY_ID, Required: true,
				Help: "Id of the entity at the root of the tree",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Show an entity and its descendants as an indented tree.

Each line is "<id>  <name> (<type>)". Children are fetched level by
level, so deep trees mean many requests; bound them with --depth.
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
		maxDepth := cl.Flags().Depth

		root, err := client.GetEntity(ctx, entityId)
		if err != nil {
			return fmt.Errorf("%w: entity id:%s", err, entityId)
		}

		out := cl.Stdout()
		printNode(out, 0, root.Summary)
		return walk(ctx, client, out, root.Id, 1, maxDepth)
	}
}

func walk(
	ctx context.Context, client krst.CaeliClient, out io.Writer,
	entityId string, depth int, maxDepth int,
) error {
	if 0 < maxDepth && maxDepth < depth {
		return nil
	}

	children, err := client.GetEntityChildren(ctx, entityId)
	if err != nil {
		return fmt.Errorf("%w: entity id:%s", err, entityId)
	}
	for _, child := range children {
		printNode(out, depth, child)
		if err := walk(ctx, client, out, child.Id, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

func printNode(out io.Writer, depth int, s entities.Summary) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(out, "    ")
	}
	fmt.Fprintf(out, "%s  %s (%s)\n", s.Id, s.Name, s.Type)
}
