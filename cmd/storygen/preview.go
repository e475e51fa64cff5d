package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gnana997/storygen/pkg/generator"
)

func newPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Print the fixture a component file would get, without writing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, 1)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.generator(nil, true).Preview(args[0])
			if err != nil {
				return err
			}
			if res.Status == generator.StatusSkipped {
				return errors.WithHint(errors.Newf("%s has no exported components", args[0]),
					"run storygen inspect on the file to see why each export was rejected")
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "// %s\n", res.StoryPath)
			_, err = cmd.OutOrStdout().Write(res.Content)
			return err
		},
	}
	addTreeFlags(cmd)
	return cmd
}
