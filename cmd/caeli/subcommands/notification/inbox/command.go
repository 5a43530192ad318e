package inbox

import (
	"context"
	"encoding/json"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Unread  bool   `flag:"unread" alias:"u" help:"show only unread notifications"`
	Channel string `flag:"channel" alias:"c" help:"show only notifications for this channel. email, webhook or in-app"`
	Count   bool   `flag:"count" help:"show only the number of unread notifications"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List notifications addressed to you.",
		Flags{},
		flarc.Args{},
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
		flags := cl.Flags()
		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")

		if flags.Count {
			count, err := client.GetUnreadCount(ctx)
			if err != nil {
				return err
			}
			if err := enc.Encode(count); err != nil {
				logger.Panicf("fail to dump unread count")
			}
			return nil
		}

		found, err := client.FindNotifications(ctx, krst.NotificationFilter{
			UnreadOnly: flags.Unread,
			Channel:    flags.Channel,
		})
		if err != nil {
			return err
		}
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump notifications")
		}
		return nil
	}
}
