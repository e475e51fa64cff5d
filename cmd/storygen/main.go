// Command storygen generates Storybook fixture files for React components.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hints := errors.GetAllHints(err); len(hints) > 0 {
			for _, h := range hints {
				fmt.Fprintf(os.Stderr, "Hint: %s\n", h)
			}
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "storygen",
		Short: "Generate Storybook stories from React component sources",
		Long: `storygen reads React component files, works out which exports are
components and what props they take, and writes a *.stories.tsx fixture
next to each file with example args.

Commands:
  generate  Write fixtures for every component file
  clean     Delete generated fixtures
  inspect   Show how one file is analyzed
  preview   Print the fixture for one file
  watch     Regenerate fixtures as files change
  serve     Run the MCP server on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default .storygen.yaml in the working directory or $HOME)")
	flags.String("heuristics", "", "YAML file overriding the component heuristics")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text, json")
	flags.Bool("no-color", false, "disable colored output")

	root.AddCommand(
		newGenerateCommand(),
		newCleanCommand(),
		newInspectCommand(),
		newPreviewCommand(),
		newWatchCommand(),
		newServeCommand(),
		newVersionCommand(),
	)
	return root
}

// addTreeFlags registers the flags selecting the component tree.
func addTreeFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "components", "component root directory")
	cmd.Flags().String("suffix", ".stories.tsx", "fixture file suffix replacing the component extension")
	cmd.Flags().String("pattern", "**/*.tsx", "glob selecting component files below --dir")
	cmd.Flags().StringSlice("exclude", nil, "globs below --dir to skip")
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "storygen %s\n", version)
		},
	}
}
