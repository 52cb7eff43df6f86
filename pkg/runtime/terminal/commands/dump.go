package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spartan-home-services/eagleeye/pkg/services/dump"
)

type DumpCmd struct {
	globals   *Globals
	open      Opener
	designID  string
	projectID string
	prefix    string
}

func NewDumpCmd(globals *Globals, open Opener) *cobra.Command {
	dc := &DumpCmd{globals: globals, open: open}
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the raw Aurora responses used to build a report",
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.designID, "design", "", "Aurora design ID")
	cmd.Flags().StringVar(&dc.projectID, "project", "", "Aurora project ID")
	cmd.Flags().StringVar(&dc.prefix, "save", "", "Write to <prefix>_<timestamp>.txt instead of stdout")

	_ = cmd.MarkFlagRequired("design")

	return cmd
}

func (dc *DumpCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := dc.open(ctx, dc.globals.Options(cmd.ErrOrStderr(), false))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer app.Close()
	ctx = app.Context(ctx)

	responses, err := app.Dump.Collect(ctx, dc.designID, dc.projectID)
	if err != nil {
		return err
	}

	if dc.prefix == "" {
		return dump.Write(cmd.OutOrStdout(), responses)
	}

	path, err := app.Dump.Save(ctx, dc.prefix, responses)
	if err != nil {
		return fmt.Errorf("failed to save responses: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "API responses saved to %s\n", path)
	return nil
}
