package tui

import (
	"strings"
	"testing"
)

func TestMarkdownStyle_RespectsTUITheme(t *testing.T) {
	t.Setenv("INKWELL_TUI_MD_STYLE", "")
	t.Setenv("COLORFGBG", "")
	t.Setenv("INKWELL_TUI_DARKBG", "")

	t.Setenv("INKWELL_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("INKWELL_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_MDStyleOverridesTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("INKWELL_TUI_DARKBG", "")
	t.Setenv("INKWELL_TUI_THEME", "light")

	t.Setenv("INKWELL_TUI_MD_STYLE", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_ColorFGBGFallback(t *testing.T) {
	t.Setenv("INKWELL_TUI_MD_STYLE", "")
	t.Setenv("INKWELL_TUI_THEME", "")
	t.Setenv("INKWELL_TUI_DARKBG", "")

	t.Setenv("COLORFGBG", "15;0")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("bg 0: expected dark; got %q", got)
	}

	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("bg 15: expected light; got %q", got)
	}
}

func TestMarkdownStyleConfig_AppliesPreviewPalette(t *testing.T) {
	for _, styleName := range []string{"light", "dark"} {
		t.Run(styleName, func(t *testing.T) {
			cfg := markdownStyleConfig(styleName)

			wantLink := colorAccent.Dark
			wantHeading := colorSurfaceFg.Dark
			if styleName == "light" {
				wantLink = colorAccent.Light
				wantHeading = colorSurfaceFg.Light
			}

			if cfg.Link.Color == nil || *cfg.Link.Color != wantLink {
				t.Fatalf("Link.Color: got %v want %q", cfg.Link.Color, wantLink)
			}
			if cfg.Link.Underline == nil || !*cfg.Link.Underline {
				t.Fatalf("expected underlined links")
			}
			if cfg.H1.Color == nil || *cfg.H1.Color != wantHeading {
				t.Fatalf("H1.Color: got %v want %q", cfg.H1.Color, wantHeading)
			}
			if cfg.Strong.Color != nil {
				t.Fatalf("Strong.Color should inherit text color; got %q", *cfg.Strong.Color)
			}
			if cfg.Emph.Color != nil {
				t.Fatalf("Emph.Color should inherit text color; got %q", *cfg.Emph.Color)
			}
			if cfg.BlockQuote.Faint == nil || *cfg.BlockQuote.Faint {
				t.Fatalf("blockquotes should not render faint")
			}
		})
	}
}

func TestRenderMarkdown_EmptyAndWhitespace(t *testing.T) {
	if got := renderMarkdown("", 40); got != "" {
		t.Fatalf("empty input: got %q", got)
	}
	if got := renderMarkdown("   \n\t", 40); got != "" {
		t.Fatalf("whitespace input: got %q", got)
	}
}

func TestRenderMarkdown_KeepsContent(t *testing.T) {
	t.Setenv("INKWELL_TUI_MD_STYLE", "dark")

	out := renderMarkdown("# Title\n\nSome body text.", 40)
	if !strings.Contains(out, "Title") {
		t.Fatalf("expected heading text in output; got %q", out)
	}
	if !strings.Contains(out, "Some body text.") {
		t.Fatalf("expected body text in output; got %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trailing newline trimmed")
	}
}
