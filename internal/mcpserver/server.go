// Package mcpserver exposes the task list as MCP tools.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/kaam/internal/config"
	"github.com/mark3labs/kaam/internal/logger"
	"github.com/mark3labs/mcp-go/server"
)

// Server serves task tools backed by the configured task file. Every tool
// call opens the file afresh; nothing is cached between calls.
type Server struct {
	cfg       *config.Config
	mcpServer *server.MCPServer

	// serializes tool calls so two rewrites never interleave
	mu sync.Mutex
}

// New creates a server with all tools registered.
func New(cfg *config.Config) *Server {
	s := &Server{cfg: cfg}
	s.mcpServer = server.NewMCPServer(
		"kaam",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	logger.Debug("Serving MCP over stdio for %s", s.cfg.Path)
	return server.ServeStdio(s.mcpServer)
}

// ServeHTTP serves streamable HTTP at /mcp on addr until ctx is done.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))
	httpServer := &http.Server{Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()
	logger.Info("MCP server listening on http://%s/mcp", listener.Addr())

	select {
	case <-ctx.Done():
		logger.Debug("Stopping MCP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
