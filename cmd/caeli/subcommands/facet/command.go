package facet

import (
	facet_list "github.com/caeli-works/caeli/cmd/caeli/subcommands/facet/list"
	facet_rm "github.com/caeli-works/caeli/cmd/caeli/subcommands/facet/rm"
	facet_set "github.com/caeli-works/caeli/cmd/caeli/subcommands/facet/set"
	facet_types "github.com/caeli-works/caeli/cmd/caeli/subcommands/facet/types"
	facet_verify "github.com/caeli-works/caeli/cmd/caeli/subcommands/facet/verify"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	list, err := facet_list.New()
	if err != nil {
		return nil, err
	}
	set, err := facet_set.New()
	if err != nil {
		return nil, err
	}
	rm, err := facet_rm.New()
	if err != nil {
		return nil, err
	}
	verify, err := facet_verify.New()
	if err != nil {
		return nil, err
	}
	types, err := facet_types.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate facet values of Caeli entities.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("set", set),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("verify", verify),
		flarc.WithSubcommand("types", types),
	)
}
