package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a *.stories.tsx fixture next to every component file",
		Long: `Generate discovers component files below --dir, analyzes each one and
writes its fixture, overwriting any previous one. A file that fails is
reported and the run continues; the command exits non-zero when any file
failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, 1)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.generator(cmd.OutOrStdout(), dryRun).Generate(cmd.Context())
			if err != nil {
				return err
			}
			if len(report.Failed) > 0 {
				return errors.Newf("%d of %d files failed",
					len(report.Failed), len(report.Failed)+len(report.Processed)+len(report.Skipped))
			}
			return nil
		},
	}

	addTreeFlags(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render fixtures without writing them")
	return cmd
}

func newCleanCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete every generated fixture below --dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, 1)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.generator(cmd.OutOrStdout(), dryRun).Clean(cmd.Context())
			if err != nil {
				return err
			}
			if len(report.Failed) > 0 {
				return errors.Newf("%d fixtures could not be deleted", len(report.Failed))
			}
			return nil
		},
	}

	addTreeFlags(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list fixtures without deleting them")
	return cmd
}
