package mcp

import "github.com/mark3labs/mcp-go/mcp"

func generateStoriesTool() mcp.Tool {
	return mcp.NewTool("generate_stories",
		mcp.WithDescription("Generate Storybook fixture files for every component below a directory. Returns the processed, skipped and failed files."),
		mcp.WithString("dir", mcp.Description("Component root. Defaults to the configured components directory.")),
		mcp.WithBoolean("dry_run", mcp.Description("Render fixtures without writing them.")),
	)
}

func cleanStoriesTool() mcp.Tool {
	return mcp.NewTool("clean_stories",
		mcp.WithDescription("Delete every generated fixture file below a directory."),
		mcp.WithString("dir", mcp.Description("Component root. Defaults to the configured components directory.")),
	)
}

func previewStoryTool() mcp.Tool {
	return mcp.NewTool("preview_story",
		mcp.WithDescription("Return the fixture text that would be generated for one component file, without writing it."),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path of the component file.")),
	)
}

func inspectComponentTool() mcp.Tool {
	return mcp.NewTool("inspect_component",
		mcp.WithDescription("Analyze one component file: filter verdicts, resolved props and synthesized args per export."),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path of the component file.")),
	)
}
