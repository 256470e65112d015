package main

import (
	"os"
	"strings"

	"inkwell/internal/cli"
)

// directLookup maps a pasted id to the subcommand pair that shows it.
func directLookup(s string) []string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "prm-") && len(s) > len("prm-"):
		return []string{"prompts", "get"}
	case strings.HasPrefix(s, "proj-") && len(s) > len("proj-"):
		return []string{"projects", "show"}
	}
	return nil
}

func rewriteDirectLookupArgs(argv []string) []string {
	// Convenience: `inkwell <prompt-id>` works like `inkwell prompts get <prompt-id>`,
	// and `inkwell <project-id>` like `inkwell projects show <project-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	//
	// IMPORTANT: Users often pass persistent flags first (e.g. `inkwell --base-url ... <id>`),
	// so we must find the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Minimal persistent-flag awareness. If we see flags we don't recognize, we skip them
	// (and do NOT try to skip their value) to avoid accidentally consuming the id.
	valueFlags := map[string]bool{
		"--dir":      true,
		"--base-url": true,
		"--format":   true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Stop flag parsing; next token (if any) is the first positional.
			if i+1 < len(argv) {
				if sub := directLookup(argv[i+1]); sub != nil {
					out := make([]string, 0, len(argv)+2)
					out = append(out, argv[:i+1]...)
					out = append(out, sub...)
					out = append(out, argv[i+1:]...)
					return out
				}
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			// --flag=value form
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
				continue
			}
			continue
		}

		// First positional token.
		if sub := directLookup(a); sub != nil {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, sub...)
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
