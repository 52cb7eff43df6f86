package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spartan-home-services/eagleeye/pkg/runtime/terminal/export"
	"github.com/spartan-home-services/eagleeye/pkg/services/report"
)

type GenerateCmd struct {
	globals   *Globals
	open      Opener
	reporter  *export.Reporter
	designID  string
	projectID string
	logFile   bool
}

func NewGenerateCmd(globals *Globals, open Opener, reporter *export.Reporter) *cobra.Command {
	gc := &GenerateCmd{globals: globals, open: open, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the PDF design report for an Aurora design",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.designID, "design", "", "Aurora design ID")
	cmd.Flags().StringVar(&gc.projectID, "project", "", "Aurora project ID for the overview section")
	cmd.Flags().BoolVar(&gc.logFile, "log-file", true, "Also write logs to <output>/logs")

	_ = cmd.MarkFlagRequired("design")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := gc.open(ctx, gc.globals.Options(cmd.ErrOrStderr(), gc.logFile))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer app.Close()

	app.Logger.Info().
		Str("design_id", gc.designID).
		Str("project_id", gc.projectID).
		Msg("starting report generation")

	result := app.Generator.Generate(app.Context(ctx), report.Request{
		DesignID:  gc.designID,
		ProjectID: gc.projectID,
	})

	if err := gc.reporter.Handle(result); err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("report generation failed: %s", result.Reason)
	}
	return nil
}
