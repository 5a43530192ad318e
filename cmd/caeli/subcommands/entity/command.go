package entity

import (
	entity_create "github.com/caeli-works/caeli/cmd/caeli/subcommands/entity/create"
	entity_edit "github.com/caeli-works/caeli/cmd/caeli/subcommands/entity/edit"
	entity_find "github.com/caeli-works/caeli/cmd/caeli/subcommands/entity/find"
	entity_rm "github.com/caeli-works/caeli/cmd/caeli/subcommands/entity/rm"
	entity_show "github.com/caeli-works/caeli/cmd/caeli/subcommands/entity/show"
	entity_tree "github.com/caeli-works/caeli/cmd/caeli/subcommands/entity/tree"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	find, err := entity_find.New()
	if err != nil {
		return nil, err
	}
	show, err := entity_show.New()
	if err != nil {
		return nil, err
	}
	create, err := entity_create.New()
	if err != nil {
		return nil, err
	}
	edit, err := entity_edit.New()
	if err != nil {
		return nil, err
	}
	rm, err := entity_rm.New()
	if err != nil {
		return nil, err
	}
	tree, err := entity_tree.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate Caeli entities.",
		struct{}{},
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("edit", edit),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("tree", tree),
	)
}
