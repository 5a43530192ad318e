package read

import (
	"context"
	"fmt"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_NOTIFICATION_ID = "NOTIFICATION_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Mark notifications as read.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_NOTIFICATION_ID, Required: true, Repeatable: true,
				Help: "Id of the notification to mark as read. Repeatable",
			},
		},
		common.NewTask(Task()),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.CaeliEnv,
		client krst.CaeliClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		for _, notificationId := range cl.Args()[ARG_NOTIFICATION_ID] {
			if _, err := client.MarkNotificationRead(ctx, notificationId); err != nil {
				return fmt.Errorf("%w: notification id:%s", err, notificationId)
			}
			logger.Printf("read notification id:%s", notificationId)
		}
		return nil
	}
}
