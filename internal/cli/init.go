package cli

import (
	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/store"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the state directory, database and config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.EnsureDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}

			// Opening runs migrations and seeds the Default project.
			st, err := store.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = st.Close() }()
			def, err := st.DefaultProject(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			if err := config.Save(cfg); err != nil {
				return writeErr(cmd, err)
			}

			return writeOut(cmd, app, map[string]any{
				"dir":             dir,
				"db_path":         cfg.DBPath,
				"base_url":        cfg.BaseURL,
				"default_project": def.ID,
			})
		},
	}
	return cmd
}
