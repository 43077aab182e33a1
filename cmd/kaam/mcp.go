package main

import (
	"os/signal"
	"syscall"

	"github.com/mark3labs/kaam/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the task list as MCP tools",
		Long: `Serve the task list to MCP clients.

Tools read the task file fresh on every call, so the file stays the only
source of truth. Uses stdio by default; --http serves streamable HTTP at
/mcp on the given address instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			srv := mcpserver.New(cfg)

			if httpAddr == "" {
				return srv.ServeStdio()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ServeHTTP(ctx, httpAddr)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve streamable HTTP on this address (e.g. 127.0.0.1:8765)")
	return cmd
}
