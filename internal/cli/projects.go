package cli

import (
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	cmd.AddCommand(newProjectsRenameCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	cmd.AddCommand(newProjectsWhiteboardCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			projects, err := client.ListProjects(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, projects)
		},
	}
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := client.CreateProject(cmd.Context(), name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT_ID",
		Short: "Show one project, whiteboard included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := client.GetProject(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}
}

func newProjectsRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename PROJECT_ID",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := client.RenameProject(cmd.Context(), args[0], name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New project name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROJECT_ID",
		Short: "Delete a project (its prompts move to Default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteProject(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": args[0]})
		},
	}
}

func newProjectsWhiteboardCmd(app *App) *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "whiteboard PROJECT_ID",
		Short: "Print or replace a project's whiteboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("set") {
				p, err := client.UpdateWhiteboard(cmd.Context(), args[0], set)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, p)
			}
			p, err := client.GetProject(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := cmd.OutOrStdout().Write([]byte(p.Whiteboard)); err != nil {
				return err
			}
			if len(p.Whiteboard) > 0 && p.Whiteboard[len(p.Whiteboard)-1] != '\n' {
				_, _ = cmd.OutOrStdout().Write([]byte("\n"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "Replace the whiteboard with this text")
	return cmd
}
