package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("task-list",
			mcp.WithDescription("List all tasks as '<ordinal>: [ ] text' (pending) or '<ordinal>: [*] text' (done)"),
		),
		s.handleList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-add",
			mcp.WithDescription("Append new pending tasks. Blank texts are skipped."),
			mcp.WithArray("tasks", mcp.Required(),
				mcp.Description("Task texts, one per task"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.handleAdd,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-done",
			mcp.WithDescription("Toggle tasks between done and not done"),
			mcp.WithArray("positions", mcp.Required(),
				mcp.Description("1-based ordinals as shown by task-list"),
				mcp.Items(map[string]any{"type": "integer"}),
			),
		),
		s.handleDone,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-rm",
			mcp.WithDescription("Remove tasks. Remaining tasks are renumbered."),
			mcp.WithArray("positions", mcp.Required(),
				mcp.Description("1-based ordinals as shown by task-list"),
				mcp.Items(map[string]any{"type": "integer"}),
			),
		),
		s.handleRemove,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-edit",
			mcp.WithDescription("Replace the text of one task, keeping its done state"),
			mcp.WithNumber("position", mcp.Required(),
				mcp.Description("1-based ordinal as shown by task-list"),
			),
			mcp.WithString("text", mcp.Required(),
				mcp.Description("New task text"),
			),
		),
		s.handleEdit,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-sort",
			mcp.WithDescription("Move done tasks below pending ones, keeping order within each group"),
		),
		s.handleSort,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-raw",
			mcp.WithDescription("Plain text of pending ('kaam') or done ('done') tasks, one per line"),
			mcp.WithString("filter", mcp.Required(),
				mcp.Enum("kaam", "done"),
			),
		),
		s.handleRaw,
	)
}
