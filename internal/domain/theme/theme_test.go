package theme_test

import (
	"encoding/json"
	"testing"

	"github.com/dirmaster/dirmaster-backend/internal/domain/theme"
	"github.com/stretchr/testify/require"
)

func TestBuildCSS(t *testing.T) {
	css := theme.BuildCSS(theme.Default)
	require.Contains(t, css, "--theme-primary: #3b82f6;")
	require.Contains(t, css, "--theme-background: #ffffff;")
	require.Contains(t, css, `--theme-font-body: "Inter", system-ui, sans-serif;`)
	require.Contains(t, css, "--theme-radius: 0.5rem;")
	require.Contains(t, css, "--theme-spacing: 1.5rem;")
}

func TestBuildCSSUnknownScalesFallBack(t *testing.T) {
	cfg := theme.Default
	cfg.Spacing = "huge"
	cfg.BorderRadius = "round"
	css := theme.BuildCSS(cfg)
	require.Contains(t, css, "--theme-radius: 0.5rem;")
	require.Contains(t, css, "--theme-spacing: 1.5rem;")
}

func TestTemplateDefaults(t *testing.T) {
	bold := theme.TemplateDefaults(theme.TemplateBold)
	require.Equal(t, "#7c3aed", bold.Colors.Primary)
	require.Equal(t, "Montserrat", bold.Fonts.Heading)

	classic := theme.TemplateDefaults(theme.TemplateClassic)
	require.Equal(t, "Georgia", classic.Fonts.Body)

	unknown := theme.TemplateDefaults(theme.Template("neon"))
	require.Equal(t, theme.Default, unknown)
}

func TestFromSettings(t *testing.T) {
	require.Equal(t, theme.Default, theme.FromSettings(nil))
	require.Equal(t, theme.Default, theme.FromSettings(json.RawMessage(`{"seo":{}}`)))
	require.Equal(t, theme.Default, theme.FromSettings(json.RawMessage(`not json`)))

	raw := json.RawMessage(`{"theme":{"template":"bold","colors":{"primary":"#000000"}}}`)
	cfg := theme.FromSettings(raw)
	require.Equal(t, theme.TemplateBold, cfg.Template)
	require.Equal(t, "#000000", cfg.Colors.Primary)
	require.Equal(t, "Montserrat", cfg.Fonts.Heading, "unset fields fall back to the template preset")
}
