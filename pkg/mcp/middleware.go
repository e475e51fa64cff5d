package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/storygen/pkg/mcplog"
)

// loggingMiddleware writes one tool-call log entry per call. Log failures
// never change the call's result.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			result, err := next(ctx, req)
			if werr := s.calls.Write(mcplog.Record(req, start, result, err)); werr != nil {
				s.log.Warn("tool call log write failed", "tool", req.Params.Name, "error", werr)
			}
			return result, err
		}
	}
}
