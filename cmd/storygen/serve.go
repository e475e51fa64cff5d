package main

import (
	"github.com/spf13/cobra"

	"github.com/gnana997/storygen/pkg/mcp"
	"github.com/gnana997/storygen/pkg/mcplog"
	"github.com/gnana997/storygen/pkg/util"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Serve exposes generate_stories, clean_stories, preview_story and
inspect_component as MCP tools over stdio. Logs go to stderr; with
--log-file every tool call is also appended to a JSON-lines file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, util.GetOptimalPoolSize())
			if err != nil {
				return err
			}
			defer a.Close()

			calls, err := mcplog.NewLogger(a.cfg.MCP.LogFile)
			if err != nil {
				return err
			}
			defer calls.Close()

			mcp.Version = version
			a.log.Info("starting MCP server", "components_dir", a.cfg.ComponentsDir)
			return mcp.NewServer(a.loader, a.scanner, a.cfg.GeneratorOptions(), a.log, calls).ServeStdio()
		},
	}
	addTreeFlags(cmd)
	cmd.Flags().String("log-file", "", "append a JSON line per tool call to this file")
	return cmd
}
