package source

import (
	source_apply "github.com/caeli-works/caeli/cmd/caeli/subcommands/source/apply"
	source_crawl "github.com/caeli-works/caeli/cmd/caeli/subcommands/source/crawl"
	source_find "github.com/caeli-works/caeli/cmd/caeli/subcommands/source/find"
	source_rm "github.com/caeli-works/caeli/cmd/caeli/subcommands/source/rm"
	source_show "github.com/caeli-works/caeli/cmd/caeli/subcommands/source/show"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	find, err := source_find.New()
	if err != nil {
		return nil, err
	}
	show, err := source_show.New()
	if err != nil {
		return nil, err
	}
	apply, err := source_apply.New()
	if err != nil {
		return nil, err
	}
	rm, err := source_rm.New()
	if err != nil {
		return nil, err
	}
	crawl, err := source_crawl.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manage the data sources Caeli ingests from.",
		struct{}{},
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("apply", apply),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("crawl", crawl),
	)
}
