package mcpserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/kaam/internal/store"
	"github.com/mark3labs/kaam/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// withStore opens the task file, runs fn and turns its outcome into a tool
// result. Errors become tool errors rather than protocol errors.
func (s *Server) withStore(fn func(st *store.Store) (string, error)) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := store.Open(s.cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to open task file: %v", err)), nil
	}

	text, err := fn(st)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withStore(formatList)
}

func (s *Server) handleAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.GetArguments()["tasks"].([]any)
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'tasks' parameter"), nil
	}

	texts := make([]string, 0, len(raw))
	for i, item := range raw {
		text, ok := item.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("task %d is not a string", i)), nil
		}
		texts = append(texts, text)
	}

	return s.withStore(func(st *store.Store) (string, error) {
		n, err := st.Add(texts)
		if err != nil {
			return "", err
		}
		list, err := formatList(st)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %d task(s)\n%s", n, list), nil
	})
}

func (s *Server) handleDone(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	positions, err := positionsArg(request.GetArguments(), "positions")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.withStore(func(st *store.Store) (string, error) {
		if err := st.Done(positions); err != nil {
			return "", err
		}
		return formatList(st)
	})
}

func (s *Server) handleRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	positions, err := positionsArg(request.GetArguments(), "positions")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.withStore(func(st *store.Store) (string, error) {
		if err := st.Remove(positions); err != nil {
			return "", err
		}
		return formatList(st)
	})
}

func (s *Server) handleEdit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	position, err := positionString(args["position"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid 'position' parameter: %v", err)), nil
	}
	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'text' parameter"), nil
	}

	return s.withStore(func(st *store.Store) (string, error) {
		if err := st.Edit(position, text); err != nil {
			return "", err
		}
		return formatList(st)
	})
}

func (s *Server) handleSort(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withStore(func(st *store.Store) (string, error) {
		if err := st.Sort(); err != nil {
			return "", err
		}
		return formatList(st)
	})
}

func (s *Server) handleRaw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := request.GetArguments()["filter"].(string)
	filter, err := task.ParseFilter(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.withStore(func(st *store.Store) (string, error) {
		var b strings.Builder
		if err := st.Raw(&b, filter); err != nil {
			return "", err
		}
		return b.String(), nil
	})
}

// formatList renders entries with their storage marker, which reads
// unambiguously without terminal styling.
func formatList(st *store.Store) (string, error) {
	entries, err := st.Entries()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "No tasks.", nil
	}

	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d: %s", i+1, e.EncodeStorage())
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// positionsArg reads an array of ordinals. JSON numbers arrive as float64.
func positionsArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key].([]any)
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("missing or empty '%s' parameter", key)
	}

	positions := make([]string, 0, len(raw))
	for i, v := range raw {
		p, err := positionString(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		positions = append(positions, p)
	}
	return positions, nil
}

func positionString(v any) (string, error) {
	switch p := v.(type) {
	case float64:
		if p != float64(int(p)) {
			return "", fmt.Errorf("%v is not a whole number", p)
		}
		return strconv.Itoa(int(p)), nil
	case int:
		return strconv.Itoa(p), nil
	case string:
		return p, nil
	default:
		return "", fmt.Errorf("expected a number, got %T", v)
	}
}
