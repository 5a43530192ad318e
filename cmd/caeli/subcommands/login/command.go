package login

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/caeli-works/caeli-api-types/auth"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
	"golang.org/x/term"
)

type Flags struct {
	User     string `flag:"user" alias:"u" help:"username to login as. Asked interactively when omitted"`
	Password string `flag:"password" help:"password. Asked interactively (without echo) when omitted"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Login to the Caeli backend and store the session.",
		Flags{},
		flarc.Args{},
		common.NewSessionTask(Task(term.ReadPassword)),
		flarc.WithDescription(`
Login to the Caeli backend of the current profile.

The obtained tokens are stored in the credential store and reused by every
other command until they expire or "{{ .Command }}" is run again.
Passing --password on the command line leaks it into your shell history;
prefer the interactive prompt.
`),
	)
}

type ReadPassword func(fd int) ([]byte, error)

func Task(readPassword ReadPassword) common.SessionTask[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.CaeliEnv,
		client krst.CaeliClient,
		session *krst.Session,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()

		user := flags.User
		if user == "" {
			fmt.Fprint(cl.Stdout(), "username: ")
			line, err := bufio.NewReader(cl.Stdin()).ReadString('\n')
			if err != nil {
				return fmt.Errorf("%w: failed to read username", err)
			}
			user = strings.TrimSpace(line)
		}
		if user == "" {
			return fmt.Errorf("%w: username is required", flarc.ErrUsage)
		}

		password := flags.Password
		if password == "" {
			fmt.Fprint(cl.Stdout(), "password: ")
			raw, err := readPassword(0)
			fmt.Fprintln(cl.Stdout())
			if err != nil {
				return fmt.Errorf("%w: failed to read password", err)
			}
			password = string(raw)
		}

		pair, err := client.Login(ctx, auth.LoginRequest{
			Username: user,
			Password: password,
		})
		if err != nil {
			return err
		}

		if err := session.Update(pair); err != nil {
			return fmt.Errorf("%w: failed to store credentials", err)
		}

		logger.Printf("logged in as %s", user)
		return nil
	}
}
