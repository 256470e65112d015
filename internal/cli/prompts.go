package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/apiclient"
	"inkwell/internal/model"
	"inkwell/internal/pack"
)

func newPromptsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Manage prompts",
	}
	cmd.AddCommand(newPromptsListCmd(app))
	cmd.AddCommand(newPromptsGetCmd(app))
	cmd.AddCommand(newPromptsCreateCmd(app))
	cmd.AddCommand(newPromptsSetStatusCmd(app))
	cmd.AddCommand(newPromptsDeleteCmd(app))
	cmd.AddCommand(newPromptsMoveCmd(app))
	cmd.AddCommand(newPromptsExportCmd(app))
	cmd.AddCommand(newPromptsImportCmd(app))
	return cmd
}

func newPromptsListCmd(app *App) *cobra.Command {
	var (
		projectID string
		status    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prompts in library order",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			q := apiclient.PromptQuery{ProjectID: projectID}
			if status != "" {
				st := model.Status(status)
				if !st.Valid() {
					return writeErr(cmd, fmt.Errorf("invalid status %q (want draft or archived)", status))
				}
				q.Status = st
			}
			prompts, err := client.ListPrompts(cmd.Context(), q)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, prompts)
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Only prompts in this project id")
	cmd.Flags().StringVar(&status, "status", "", "Only prompts with this status (draft|archived)")
	return cmd
}

func newPromptsGetCmd(app *App) *cobra.Command {
	var contentOnly bool

	cmd := &cobra.Command{
		Use:   "get PROMPT_ID",
		Short: "Show one prompt, content included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := client.GetPrompt(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if contentOnly {
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(p.Content, "\n"))
				return nil
			}
			return writeOut(cmd, app, p)
		},
	}
	cmd.Flags().BoolVar(&contentOnly, "content", false, "Print only the prompt content")
	return cmd
}

func newPromptsCreateCmd(app *App) *cobra.Command {
	var (
		name      string
		content   string
		projectID string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a prompt (name derived from content when omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			draft := apiclient.PromptDraft{Name: name, Content: content}
			if projectID != "" {
				draft.ProjectID = &projectID
			}
			p, err := client.CreatePrompt(cmd.Context(), draft)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Prompt name")
	cmd.Flags().StringVar(&content, "content", "", "Prompt content")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id (default: the Default project)")
	return cmd
}

func newPromptsSetStatusCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "set-status PROMPT_ID",
		Short: "Set a prompt's status (draft|archived)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := model.Status(status)
			if !st.Valid() {
				return writeErr(cmd, fmt.Errorf("invalid status %q (want draft or archived)", status))
			}
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := client.UpdatePrompt(cmd.Context(), args[0], apiclient.PromptPatch{Status: &st})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "New status")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newPromptsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROMPT_ID",
		Short: "Delete a prompt permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeletePrompt(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": args[0]})
		},
	}
}

// newPromptsMoveCmd moves one prompt to a position among its project's
// prompts. Like the web board's move buttons, the new order is computed
// over the global list so other projects' slots are untouched, then
// persisted in one reorder call.
func newPromptsMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move PROMPT_ID POSITION",
		Short: "Move a prompt to a zero-based position within its project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 0 {
				return writeErr(cmd, fmt.Errorf("position must be a non-negative integer, got %q", args[1]))
			}
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			p, err := client.GetPrompt(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			all, err := client.ListPrompts(cmd.Context(), apiclient.PromptQuery{})
			if err != nil {
				return writeErr(cmd, err)
			}

			// Slots in the global order held by this prompt's project.
			var slots []int
			var sibIDs []string
			cur := -1
			for i, other := range all {
				if deref(other.ProjectID) != deref(p.ProjectID) {
					continue
				}
				if other.ID == p.ID {
					cur = len(sibIDs)
				}
				slots = append(slots, i)
				sibIDs = append(sibIDs, other.ID)
			}
			if cur < 0 {
				return writeErr(cmd, fmt.Errorf("prompt %s not in its project listing", p.ID))
			}
			if pos >= len(sibIDs) {
				pos = len(sibIDs) - 1
			}

			sibIDs = append(sibIDs[:cur], sibIDs[cur+1:]...)
			sibIDs = append(sibIDs[:pos], append([]string{p.ID}, sibIDs[pos:]...)...)

			ids := make([]string, len(all))
			for i, other := range all {
				ids[i] = other.ID
			}
			for k, slot := range slots {
				ids[slot] = sibIDs[k]
			}

			if err := client.ReorderPrompts(cmd.Context(), ids); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"id": p.ID, "position": pos})
		},
	}
}

func newPromptsExportCmd(app *App) *cobra.Command {
	var (
		projectID string
		packName  string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write prompts to a YAML pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			prompts, err := client.ListPrompts(cmd.Context(), apiclient.PromptQuery{ProjectID: projectID})
			if err != nil {
				return writeErr(cmd, err)
			}

			name := packName
			if name == "" {
				name = "Inkwell export"
				if projectID != "" {
					if proj, err := client.GetProject(cmd.Context(), projectID); err == nil {
						name = proj.Name
					}
				}
			}

			p := pack.FromPrompts(name, "", prompts)
			if err := pack.WriteFile(args[0], p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"file": args[0], "prompts": len(p.Prompts)})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Export only this project's prompts")
	cmd.Flags().StringVar(&packName, "name", "", "Pack name (default: project name or \"Inkwell export\")")
	return cmd
}

func newPromptsImportCmd(app *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create prompts from a YAML pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pack.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			created := make([]model.Prompt, 0, len(p.Prompts))
			for i, e := range p.Prompts {
				draft := apiclient.PromptDraft{
					Name:    e.Name,
					Status:  e.Status,
					Content: e.Content,
				}
				if projectID != "" {
					draft.ProjectID = &projectID
				}
				pr, err := client.CreatePrompt(cmd.Context(), draft)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("prompt %d of %d: %w", i+1, len(p.Prompts), err))
				}
				created = append(created, pr)
			}
			return writeOut(cmd, app, created)
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Create imported prompts in this project id")
	return cmd
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
