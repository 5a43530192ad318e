package notification

import (
	notification_inbox "github.com/caeli-works/caeli/cmd/caeli/subcommands/notification/inbox"
	notification_read "github.com/caeli-works/caeli/cmd/caeli/subcommands/notification/read"
	notification_rules "github.com/caeli-works/caeli/cmd/caeli/subcommands/notification/rules"
	notification_watch "github.com/caeli-works/caeli/cmd/caeli/subcommands/notification/watch"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	inbox, err := notification_inbox.New()
	if err != nil {
		return nil, err
	}
	read, err := notification_read.New()
	if err != nil {
		return nil, err
	}
	rules, err := notification_rules.New()
	if err != nil {
		return nil, err
	}
	watch, err := notification_watch.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Read and manage Caeli notifications.",
		struct{}{},
		flarc.WithSubcommand("inbox", inbox),
		flarc.WithSubcommand("read", read),
		flarc.WithSubcommand("rules", rules),
		flarc.WithSubcommand("watch", watch),
	)
}
