package task

import (
	task_cancel "github.com/caeli-works/caeli/cmd/caeli/subcommands/task/cancel"
	task_show "github.com/caeli-works/caeli/cmd/caeli/subcommands/task/show"
	task_watch "github.com/caeli-works/caeli/cmd/caeli/subcommands/task/watch"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	show, err := task_show.New()
	if err != nil {
		return nil, err
	}
	watch, err := task_watch.New()
	if err != nil {
		return nil, err
	}
	cancel, err := task_cancel.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Inspect and control background tasks.",
		struct{}{},
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("watch", watch),
		flarc.WithSubcommand("cancel", cancel),
	)
}
