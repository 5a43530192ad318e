package logout

import (
	"context"
	"fmt"
	"log"

	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Discard the stored session of the current profile.",
		struct{}{},
		flarc.Args{},
		common.NewSessionTask(Task()),
	)
}

func Task() common.SessionTask[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.CaeliEnv,
		_ krst.CaeliClient,
		session *krst.Session,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		if _, ok := session.Token(); !ok {
			logger.Print("not logged in")
			return nil
		}
		if err := session.Clear(); err != nil {
			return fmt.Errorf("%w: failed to clear credentials", err)
		}
		logger.Print("logged out")
		return nil
	}
}
