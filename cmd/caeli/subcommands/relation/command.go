package relation

import (
	relation_add "github.com/caeli-works/caeli/cmd/caeli/subcommands/relation/add"
	relation_find "github.com/caeli-works/caeli/cmd/caeli/subcommands/relation/find"
	relation_rm "github.com/caeli-works/caeli/cmd/caeli/subcommands/relation/rm"
	relation_types "github.com/caeli-works/caeli/cmd/caeli/subcommands/relation/types"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	find, err := relation_find.New()
	if err != nil {
		return nil, err
	}
	add, err := relation_add.New()
	if err != nil {
		return nil, err
	}
	rm, err := relation_rm.New()
	if err != nil {
		return nil, err
	}
	types, err := relation_types.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate relations between Caeli entities.",
		struct{}{},
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("add", add),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("types", types),
	)
}
