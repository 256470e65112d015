package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"inkwell/internal/docs"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [TOPIC]",
		Short: "Read the built-in guides",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, docs.List())
			}

			md, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic %q (run `inkwell docs` to list topics)", args[0]))
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), renderDocsTopic(md))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the topic as plain markdown")
	return cmd
}

// renderDocsTopic styles a topic for the terminal. WithAutoStyle can block
// on terminal capability queries, so we pick light/dark ourselves; on any
// renderer trouble the raw markdown goes out instead.
func renderDocsTopic(md string) string {
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
