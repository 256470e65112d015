package cli

import (
	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/store"
)

// Backup and restore open the database directly so they work with no
// server running. Restoring onto a live server is safe but the web UI
// only notices on its next poll.

func newBackupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup FILE",
		Short: "Write the whole library to a JSON snapshot",
		Args:  cobra.ExactArgs(1),
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

			snap, err := st.Export(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.WriteSnapshot(args[0], snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"file":     args[0],
				"projects": len(snap.Projects),
				"prompts":  len(snap.Prompts),
			})
		},
	}
}

func newRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore FILE",
		Short: "Load a JSON snapshot into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := store.ReadSnapshot(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := store.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			if err := st.Import(cmd.Context(), snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"file":     args[0],
				"projects": len(snap.Projects),
				"prompts":  len(snap.Prompts),
			})
		},
	}
}
