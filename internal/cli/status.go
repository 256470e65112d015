package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the configured server is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.Health(cmd.Context()); err != nil {
				_ = writeOut(cmd, app, map[string]any{
					"base_url": client.BaseURL(),
					"healthy":  false,
					"error":    err.Error(),
				})
				return err
			}
			return writeOut(cmd, app, map[string]any{
				"base_url": client.BaseURL(),
				"healthy":  true,
			})
		},
	}
	return cmd
}
