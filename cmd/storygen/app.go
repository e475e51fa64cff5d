package main

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gnana997/storygen/pkg/generator"
	"github.com/gnana997/storygen/pkg/parser"
	"github.com/gnana997/storygen/pkg/parser/queries"
	"github.com/gnana997/storygen/pkg/scanner"
	"github.com/gnana997/storygen/pkg/source"
	"github.com/gnana997/storygen/pkg/util"
)

// app holds the long-lived pieces every command needs.
type app struct {
	cfg     *Config
	log     *slog.Logger
	parsers *parser.ParserManager
	queries *queries.QueryManager
	loader  *source.Loader
	scanner *scanner.Scanner
}

// newApp loads the configuration for cmd and wires the pipeline. poolSize is
// the parser pool size: 1 for sequential commands, more for the MCP server.
func newApp(cmd *cobra.Command, poolSize int) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := util.NewLogger(util.LoggerConfig{
		Level:  util.ParseLogLevel(cfg.Log.Level),
		Format: util.ParseLogFormat(cfg.Log.Format),
		Output: cmd.ErrOrStderr(),
	})

	h, err := scanner.LoadHeuristics(cfg.HeuristicsFile)
	if err != nil {
		return nil, err
	}

	pm := parser.NewParserManager(logger, poolSize)
	qm := queries.NewQueryManager(pm, logger)

	logger.Debug("configuration loaded",
		"components_dir", cfg.ComponentsDir,
		"story_suffix", cfg.StorySuffix,
		"pattern", cfg.Pattern,
		"heuristics", cfg.HeuristicsFile)

	return &app{
		cfg:     cfg,
		log:     logger,
		parsers: pm,
		queries: qm,
		loader:  source.NewLoader(pm, qm, logger),
		scanner: scanner.NewScanner(h, logger),
	}, nil
}

func (a *app) generator(out io.Writer, dryRun bool) *generator.Generator {
	opts := a.cfg.GeneratorOptions()
	opts.Out = out
	opts.DryRun = dryRun
	return generator.New(a.loader, a.scanner, opts, a.log)
}

func (a *app) Close() error {
	return errors.CombineErrors(a.queries.Close(), a.parsers.Close())
}
