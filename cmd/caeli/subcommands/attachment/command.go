package attachment

import (
	attachment_analyze "github.com/caeli-works/caeli/cmd/caeli/subcommands/attachment/analyze"
	attachment_list "github.com/caeli-works/caeli/cmd/caeli/subcommands/attachment/list"
	attachment_push "github.com/caeli-works/caeli/cmd/caeli/subcommands/attachment/push"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	push, err := attachment_push.New()
	if err != nil {
		return nil, err
	}
	list, err := attachment_list.New()
	if err != nil {
		return nil, err
	}
	analyze, err := attachment_analyze.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manage documents attached to Caeli entities.",
		struct{}{},
		flarc.WithSubcommand("push", push),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("analyze", analyze),
	)
}
