package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/storygen/pkg/generator"
	"github.com/gnana997/storygen/pkg/scanner"
)

func (s *Server) handleGenerateStories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.batch.Lock()
	defer s.batch.Unlock()

	gen := s.generator(req.GetString("dir", ""), req.GetBool("dry_run", false))
	report, err := gen.Generate(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generate: %v", err)), nil
	}
	return jsonResult(generateView{
		Dir:       gen.Options().Dir,
		DryRun:    gen.Options().DryRun,
		Processed: nonNil(report.Processed),
		Skipped:   nonNil(report.Skipped),
		Failed:    report.Failed,
	})
}

func (s *Server) handleCleanStories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.batch.Lock()
	defer s.batch.Unlock()

	gen := s.generator(req.GetString("dir", ""), false)
	report, err := gen.Clean(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("clean: %v", err)), nil
	}
	return jsonResult(cleanView{
		Dir:     gen.Options().Dir,
		Deleted: nonNil(report.Deleted),
		Failed:  report.Failed,
	})
}

func (s *Server) handlePreviewStory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.generator("", true).Preview(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("preview %s: %v", file, err)), nil
	}
	if res.Status == generator.StatusSkipped {
		return mcp.NewToolResultError(fmt.Sprintf("%s: no component exports", file)), nil
	}
	return mcp.NewToolResultText(string(res.Content)), nil
}

func (s *Server) handleInspectComponent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	a, err := s.generator("", true).Inspect(file)
	if err != nil && !errors.Is(err, scanner.ErrNoComponents) {
		return mcp.NewToolResultError(fmt.Sprintf("inspect %s: %v", file, err)), nil
	}
	return jsonResult(newAnalysisView(a))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal result")
	}
	return mcp.NewToolResultText(string(data)), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
