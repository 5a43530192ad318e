//go:generate go run github.com/Songmu/gocredits/cmd/gocredits@v0.3.0 -w
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path"

	subattachment "github.com/caeli-works/caeli/cmd/caeli/subcommands/attachment"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	subenrich "github.com/caeli-works/caeli/cmd/caeli/subcommands/enrich"
	subentity "github.com/caeli-works/caeli/cmd/caeli/subcommands/entity"
	subexport "github.com/caeli-works/caeli/cmd/caeli/subcommands/export"
	subfacet "github.com/caeli-works/caeli/cmd/caeli/subcommands/facet"
	subinit "github.com/caeli-works/caeli/cmd/caeli/subcommands/init"
	sublic "github.com/caeli-works/caeli/cmd/caeli/subcommands/license"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/logger"
	sublogin "github.com/caeli-works/caeli/cmd/caeli/subcommands/login"
	sublogout "github.com/caeli-works/caeli/cmd/caeli/subcommands/logout"
	subnotification "github.com/caeli-works/caeli/cmd/caeli/subcommands/notification"
	subrelation "github.com/caeli-works/caeli/cmd/caeli/subcommands/relation"
	subsource "github.com/caeli-works/caeli/cmd/caeli/subcommands/source"
	subtask "github.com/caeli-works/caeli/cmd/caeli/subcommands/task"
	subver "github.com/caeli-works/caeli/cmd/caeli/subcommands/version"
	subwhoami "github.com/caeli-works/caeli/cmd/caeli/subcommands/whoami"
	"github.com/caeli-works/caeli/pkg/utils/try"
	"github.com/youta-t/flarc"
)

//go:embed CREDITS
var CREDITS string

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	login := try.To(sublogin.New()).OrFatal(logger)
	logout := try.To(sublogout.New()).OrFatal(logger)
	whoami := try.To(subwhoami.New()).OrFatal(logger)
	entity := try.To(subentity.New()).OrFatal(logger)
	facet := try.To(subfacet.New()).OrFatal(logger)
	relation := try.To(subrelation.New()).OrFatal(logger)
	source := try.To(subsource.New()).OrFatal(logger)
	notification := try.To(subnotification.New()).OrFatal(logger)
	attachment := try.To(subattachment.New()).OrFatal(logger)
	enrich := try.To(subenrich.New()).OrFatal(logger)
	task := try.To(subtask.New()).OrFatal(logger)
	export := try.To(subexport.New()).OrFatal(logger)
	license := try.To(sublic.New(CREDITS)).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	caeli := try.To(
		flarc.NewCommandGroup(
			"Caeli commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("login", login),
			flarc.WithSubcommand("logout", logout),
			flarc.WithSubcommand("whoami", whoami),
			flarc.WithSubcommand("entity", entity),
			flarc.WithSubcommand("facet", facet),
			flarc.WithSubcommand("relation", relation),
			flarc.WithSubcommand("source", source),
			flarc.WithSubcommand("notification", notification),
			flarc.WithSubcommand("attachment", attachment),
			flarc.WithSubcommand("enrich", enrich),
			flarc.WithSubcommand("task", task),
			flarc.WithSubcommand("export", export),
			flarc.WithSubcommand("license", license),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, caeli, flarc.WithHelp(true)))
}
