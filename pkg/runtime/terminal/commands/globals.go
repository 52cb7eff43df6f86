package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/spartan-home-services/eagleeye/pkg/runtime/bootstrap"
)

// Opener builds the report pipeline for a command.
type Opener func(ctx context.Context, opts bootstrap.Options) (*bootstrap.App, error)

// Globals holds the persistent flags shared by every command.
type Globals struct {
	SettingsPath string
	Profile      string
	OutputDir    string
}

func (g *Globals) Bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.SettingsPath, "config", "c", "", "Path to a settings file (yaml, toml or json)")
	flags.StringVarP(&g.Profile, "profile", "p", "", "Credential profile in ~/.aurorasolarcfg")
	flags.StringVarP(&g.OutputDir, "output", "o", "", "Directory for generated reports")
}

func (g *Globals) Options(console io.Writer, logToFile bool) bootstrap.Options {
	return bootstrap.Options{
		SettingsPath: g.SettingsPath,
		Profile:      g.Profile,
		OutputDir:    g.OutputDir,
		Console:      console,
		LogToFile:    logToFile,
	}
}
