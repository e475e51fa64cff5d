// Package mcp exposes fixture generation to MCP clients over stdio.
package mcp

import (
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/storygen/pkg/generator"
	"github.com/gnana997/storygen/pkg/mcplog"
	"github.com/gnana997/storygen/pkg/scanner"
	"github.com/gnana997/storygen/pkg/source"
)

// Version is reported to MCP clients.
var Version = "0.1.0-dev"

// Server implements the storygen MCP server.
type Server struct {
	mcpServer *server.MCPServer
	loader    *source.Loader
	scanner   *scanner.Scanner
	defaults  generator.Options
	log       *slog.Logger
	calls     *mcplog.Logger

	// batch serializes runs that write or delete fixtures
	batch sync.Mutex
}

// NewServer creates the server. defaults supply the options of every tool
// call; a call may override the directory and dry-run flag. calls may be
// nil to disable the tool-call log.
func NewServer(loader *source.Loader, sc *scanner.Scanner, defaults generator.Options, logger *slog.Logger, calls *mcplog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		loader:   loader,
		scanner:  sc,
		defaults: defaults,
		log:      logger,
		calls:    calls,
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if calls != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer("storygen", Version, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: generateStoriesTool(), Handler: s.handleGenerateStories},
		server.ServerTool{Tool: cleanStoriesTool(), Handler: s.handleCleanStories},
		server.ServerTool{Tool: previewStoryTool(), Handler: s.handlePreviewStory},
		server.ServerTool{Tool: inspectComponentTool(), Handler: s.handleInspectComponent},
	)
	return s
}

// ServeStdio serves MCP on stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) generator(dir string, dryRun bool) *generator.Generator {
	opts := s.defaults
	if dir != "" {
		opts.Dir = dir
	}
	opts.DryRun = opts.DryRun || dryRun
	// progress text would corrupt the stdio transport
	opts.Out = nil
	return generator.New(s.loader, s.scanner, opts, s.log)
}
