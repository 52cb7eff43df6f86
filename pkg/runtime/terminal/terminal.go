package terminal

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spartan-home-services/eagleeye/pkg/runtime/bootstrap"
	"github.com/spartan-home-services/eagleeye/pkg/runtime/terminal/commands"
	"github.com/spartan-home-services/eagleeye/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	globals  *commands.Globals
	open     commands.Opener
	reporter *export.Reporter
	profiles *ProfileReporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Logs receives console logging; defaults to stderr.
	Logs io.Writer
	// Open builds the pipeline; defaults to bootstrap.New.
	Open commands.Opener
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}
	if opts.Open == nil {
		opts.Open = bootstrap.New
	}

	cli := &CLI{
		globals:  &commands.Globals{},
		open:     opts.Open,
		reporter: export.NewReporter(opts.Output),
		profiles: NewProfileReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.Logs)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// Run executes the command line given in args.
func (cli *CLI) Run(ctx context.Context, args ...string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "eagleeye",
		Short:         "Spartan EagleEye solar design reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.globals.Bind(cmd)

	cmd.AddCommand(commands.NewGenerateCmd(cli.globals, cli.open, cli.reporter))
	cmd.AddCommand(commands.NewDumpCmd(cli.globals, cli.open))
	cmd.AddCommand(commands.NewProfilesCmd(cli.globals, cli.profiles))

	return cmd
}
