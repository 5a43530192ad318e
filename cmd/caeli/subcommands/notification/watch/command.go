package watch

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/caeli-works/caeli/pkg/loop"
	"github.com/caeli-works/caeli/pkg/taskwatch"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Channel string `flag:"channel" alias:"c" help:"watch only notifications for this channel"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Watch for new notifications.",
		Flags{},
		flarc.Args{},
		common.NewWatchTask(Task()),
		flarc.WithDescription(`
Poll for unread notifications and print each one as a JSON line the
first time it is seen. Runs until interrupted.

The poll interval comes from the caelienv file (pollInterval, 2s when
unset).
`),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		caeliEnv env.CaeliEnv,
		client krst.CaeliClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		interval := caeliEnv.Interval(taskwatch.DefaultInterval)
		filter := krst.NotificationFilter{
			UnreadOnly: true,
			Channel:    cl.Flags().Channel,
		}
		enc := json.NewEncoder(cl.Stdout())

		seen := map[string]struct{}{}
		_, err := loop.Start(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (struct{}, loop.Next) {
			found, err := client.FindNotifications(ctx, filter)
			if err != nil {
				if ctx.Err() != nil {
					return struct{}{}, loop.Break(ctx.Err())
				}
				logger.Printf("failed to poll notifications: %s", err)
				return struct{}{}, loop.Continue(interval)
			}

			for _, n := range found {
				if _, ok := seen[n.Id]; ok {
					continue
				}
				seen[n.Id] = struct{}{}
				if err := enc.Encode(n); err != nil {
					return struct{}{}, loop.Break(err)
				}
			}
			return struct{}{}, loop.Continue(interval)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}
