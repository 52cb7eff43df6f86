package commands

import (
	"github.com/spf13/cobra"

	"github.com/spartan-home-services/eagleeye/pkg/runtime/bootstrap"
)

// ProfileHandler prints the profiles read from a credentials file.
type ProfileHandler interface {
	Handle(path string, profiles []string) error
}

type ProfilesCmd struct {
	globals  *Globals
	reporter ProfileHandler
}

func NewProfilesCmd(globals *Globals, reporter ProfileHandler) *cobra.Command {
	pc := &ProfilesCmd{globals: globals, reporter: reporter}
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the credential profiles available in the credentials file",
		RunE:  pc.run,
	}
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := bootstrap.LoadSettings(pc.globals.Options(nil, false))
	if err != nil {
		return err
	}

	path, err := bootstrap.CredentialsPath(cfg)
	if err != nil {
		return err
	}
	registry, err := bootstrap.LoadRegistry(cfg)
	if err != nil {
		return err
	}

	profiles, err := registry.GetProfiles(cmd.Context())
	if err != nil {
		return err
	}
	return pc.reporter.Handle(path, profiles)
}
