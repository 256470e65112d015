package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/mcp"
	"inkwell/internal/store"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the prompt library over MCP on stdio",
		Long: `Serve the prompt library to MCP clients over stdio.

Draft prompts are exposed as MCP prompts and project whiteboards as
resources. Register with a client as:

  { "command": "inkwell", "args": ["mcp"] }

Stdout carries the protocol, so all logging goes to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := store.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			srv, err := mcp.NewServer(cmd.Context(), st, logger)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := srv.Run(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}
