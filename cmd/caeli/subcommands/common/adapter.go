package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/caeli-works/caeli/cmd/caeli/config/profiles"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krest "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/pkg/utils/filewatch"
	"github.com/youta-t/flarc"
)

type CaeliTaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task CaeliTaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		return task(
			ctx,
			logger,
			commonFlag,
			cl,
			newpos,
		)
	}
}

// prepare loads everything a backend-facing task needs from the
// common flags.
func prepare(commonFlag CommonFlags) (*env.CaeliEnv, krest.CaeliClient, *krest.Session, error) {
	profile, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil, fmt.Errorf(
				"%w: caeliprofile store (%s) is not found. Please try `caeli init` first. Ask your admin to get caeliprofile",
				err, commonFlag.ProfileStore,
			)
		}
		return nil, nil, nil, fmt.Errorf(
			"%w: failed to load caeliprofile store (%s)",
			err, commonFlag.ProfileStore,
		)
	}
	prof, ok := profile[commonFlag.Profile]
	if !ok {
		return nil, nil, nil, fmt.Errorf(
			"profile '%s' not found in the profile store (%s)",
			commonFlag.Profile, commonFlag.ProfileStore,
		)
	}

	e, err := env.LoadCaeliEnv(commonFlag.Env)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil, fmt.Errorf("%w: failed to load caelienv", err)
		}
	}

	session, err := krest.NewSession(commonFlag.CredentialStore, commonFlag.Profile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf(
			"%w: failed to load credentials (%s). Remove the file and try `caeli login` again",
			err, commonFlag.CredentialStore,
		)
	}

	client, err := krest.NewClient(prof, session)
	if err != nil {
		return nil, nil, nil, fmt.Errorf(
			"%w: failed to create caeli client. Your caeliprofile (%s in %s) can be broken.\n\nRemove it and try `caeli init` again. Ask your admin to get caeliprofile",
			err, commonFlag.Profile, commonFlag.ProfileStore,
		)
	}
	return e, client, session, nil
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	caeliEnv env.CaeliEnv,
	client krest.CaeliClient,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask wraps a Task with profile loading, session restore, and
// client construction. Tasks made this way just talk to the backend.
func NewTask[T any](task Task[T]) flarc.Task[T] {

	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		e, client, _, err := prepare(commonFlag)
		if err != nil {
			return err
		}
		return task(ctx, logger, *e, client, cl, params)
	})
}

// NewWatchTask is like NewTask for commands which run until
// interrupted. Such tasks are additionally stopped when the profile
// store is rewritten, so a `caeli init` in another terminal does not
// leave them running against a stale profile.
func NewWatchTask[T any](task Task[T]) flarc.Task[T] {

	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		e, client, _, err := prepare(commonFlag)
		if err != nil {
			return err
		}

		wctx, stop, err := filewatch.UntilModifyContext(ctx, commonFlag.ProfileStore)
		if err != nil {
			return fmt.Errorf(
				"%w: failed to watch the profile store (%s)",
				err, commonFlag.ProfileStore,
			)
		}
		defer stop()

		return task(wctx, logger, *e, client, cl, params)
	})
}

// SessionTask also receives the Session, for commands which manage
// credentials themselves (login, logout, whoami).
type SessionTask[T any] func(
	ctx context.Context,
	logger *log.Logger,
	caeliEnv env.CaeliEnv,
	client krest.CaeliClient,
	session *krest.Session,
	cl flarc.Commandline[T],
	params []any,
) error

func NewSessionTask[T any](task SessionTask[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		e, client, session, err := prepare(commonFlag)
		if err != nil {
			return err
		}
		return task(ctx, logger, *e, client, session, cl, params)
	})
}
