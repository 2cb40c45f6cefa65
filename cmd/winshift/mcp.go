package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winshift/internal/logging"
	"github.com/1broseidon/winshift/internal/mcp"
)

func (a *app) mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve window placement tools over stdio",
		Long: `Run an MCP server on stdin/stdout exposing list_displays, list_placements,
place_window and move_window. Logs go to stderr or the configured log file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg()
			b, err := a.connect(cfg)
			if err != nil {
				return err
			}
			server := mcp.NewServer(cfg, b)
			defer server.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logging.Info().Str("version", mcp.ServerVersion).Msg("mcp server starting")
			if err := server.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	})
	return cmd
}
