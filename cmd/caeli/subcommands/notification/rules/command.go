package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/caeli-works/caeli-api-types/notifications"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

type Flags struct {
	Apply string `flag:"apply" metavar:"FILE" help:"Register a rule from a YAML or JSON file ('-' reads stdin)"`
	Id    string `flag:"id" help:"With --apply, update this rule instead of registering a new one"`
	Rm    string `flag:"rm" metavar:"RULE_ID" help:"Delete the rule with this id"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List, register, update or delete notification rules.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
List notification rules,

	{{ .Command }}

register a new one,

	{{ .Command }} --apply rule.yaml

update an existing one,

	{{ .Command }} --apply rule.yaml --id RULE_ID

or delete one.

	{{ .Command }} --rm RULE_ID

The rule file looks like below.

	name: notify crawl failures
	event: crawl.failed
	channel: email
	target: ops@example.com
	enabled: true
`),
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
		if flags.Apply != "" && flags.Rm != "" {
			return flarc.ErrUsage
		}
		if flags.Id != "" && flags.Apply == "" {
			return flarc.ErrUsage
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")

		switch {
		case flags.Rm != "":
			if err := client.DeleteNotificationRule(ctx, flags.Rm); err != nil {
				return fmt.Errorf("%w: rule id:%s", err, flags.Rm)
			}
			logger.Printf("deleted notification rule id:%s", flags.Rm)
			return nil

		case flags.Apply != "":
			buf, err := readFrom(cl.Stdin(), flags.Apply)
			if err != nil {
				return fmt.Errorf("%w: fail to read %s", err, flags.Apply)
			}
			spec := notifications.RuleSpec{}
			if err := yaml.Unmarshal(buf, &spec); err != nil {
				return fmt.Errorf("%w: %s is not a rule definition", err, flags.Apply)
			}

			var applied notifications.Rule
			if flags.Id == "" {
				applied, err = client.RegisterNotificationRule(ctx, spec)
			} else {
				applied, err = client.UpdateNotificationRule(ctx, flags.Id, spec)
			}
			if err != nil {
				return err
			}
			if err := enc.Encode(applied); err != nil {
				logger.Panicf("fail to dump applied rule")
			}
			return nil

		default:
			found, err := client.FindNotificationRules(ctx)
			if err != nil {
				return err
			}
			if err := enc.Encode(found); err != nil {
				logger.Panicf("fail to dump notification rules")
			}
			return nil
		}
	}
}

func readFrom(stdin io.Reader, from string) ([]byte, error) {
	if from == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(from)
}
