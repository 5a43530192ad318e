package init

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	prof "github.com/caeli-works/caeli/cmd/caeli/config/profiles"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/common"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

const ARG_CAELI_PROFILE_FILE = "CAELI_PROFILE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"initialize this directory as a caeli-powered project.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_CAELI_PROFILE_FILE, Required: true,
				Help: "filepath to caeliprofile file, which you received from your admin.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Register a new caeliprofile into your profile store.

"caeliprofile" is a file which contains information about a Caeli backend.
"{{ .Command }}" registers the given caeliprofile into your profile store.

The name of the profile is given by "--profile" ( default: current filepath ).
`),
	)
}

func Task() common.CaeliTaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		cf common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		profFile := cl.Args()[ARG_CAELI_PROFILE_FILE][0]

		profStore, err := prof.LoadProfileStore(cf.ProfileStore)
		if errors.Is(err, prof.ErrProfileStoreNotFound) {
			profStore = prof.ProfileStore{}
		} else if err != nil {
			return fmt.Errorf(
				"%w: failed to load profile store (%s)", err, cf.ProfileStore,
			)
		}

		newProf := new(prof.CaeliProfile)
		{
			content, err := os.ReadFile(profFile)
			if err != nil {
				return fmt.Errorf("%w: failed to read profile file (%s)", err, profFile)
			}
			if err := yaml.Unmarshal(content, newProf); err != nil {
				return fmt.Errorf("%w: failed to parse profile file (%s)", err, profFile)
			}
		}
		if err := newProf.Verify(); err != nil {
			return fmt.Errorf("%w: %s", err, profFile)
		}

		profName := cf.Profile
		profStore[profName] = newProf
		if err := profStore.Save(cf.ProfileStore); err != nil {
			return fmt.Errorf(
				"%w: failed to save profile store (%s)", err, cf.ProfileStore,
			)
		}
		logger.Printf("profile %s is saved to %s", profName, cf.ProfileStore)

		f, err := os.OpenFile(".caeliprofile", os.O_RDWR|os.O_CREATE|os.O_TRUNC, os.FileMode(0600))
		if err != nil {
			return fmt.Errorf("%w: failed to open .caeliprofile", err)
		}
		defer f.Close()
		f.Write([]byte(profName))

		return nil
	}
}
