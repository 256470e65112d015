// Package cli wires the inkwell command tree: the server, the TUI client,
// and scriptable commands speaking to the API.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inkwell/internal/apiclient"
	"inkwell/internal/config"
	"inkwell/internal/format"
	"inkwell/internal/tui"
)

// App carries the persistent flag values shared by every command.
type App struct {
	Dir        string
	BaseURL    string
	Format     string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "inkwell",
		Short:        "Organize and reuse your text prompts",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the server (REST API + web board)
  inkwell serve

  # Interactive terminal UI
  inkwell

  # Scriptable commands
  inkwell prompts list
  inkwell projects create --name "Writing"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The config package resolves the state dir through INKWELL_DIR;
		// the flag is the same override without touching the environment
		// of the calling shell.
		if app.Dir != "" {
			return os.Setenv("INKWELL_DIR", app.Dir)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("INKWELL_DIR", ""), "State directory (default ~/.inkwell)")
	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", envOr("INKWELL_BASE_URL", ""), "Server address for client commands (default from config)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "Output format (json|table)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newPromptsCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newRestoreCmd(app))
	cmd.AddCommand(newMCPCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// apiClient builds a client for the configured server address: the
// --base-url flag when given, otherwise config (env > file > default).
func apiClient(app *App) (*apiclient.Client, error) {
	if app.BaseURL != "" {
		return apiclient.New(app.BaseURL), nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return apiclient.New(cfg.BaseURL), nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	client, err := apiClient(app)
	if err != nil {
		return writeErr(cmd, err)
	}

	// Fail fast with a useful message instead of an empty alt-screen.
	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
	defer cancel()
	if err := client.Health(ctx); err != nil {
		return writeErr(cmd, fmt.Errorf("no Inkwell server at %s (start one with `inkwell serve`): %w", client.BaseURL(), err))
	}

	return tui.Run(client)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
