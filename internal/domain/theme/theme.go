// Package theme maps a project's theme settings to the CSS custom
// properties consumed by the public site templates.
package theme

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Template string

const (
	TemplateMinimal Template = "minimal"
	TemplateBold    Template = "bold"
	TemplateClassic Template = "classic"
)

type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

type Fonts struct {
	Body    string `json:"body"`
	Heading string `json:"heading"`
}

type Config struct {
	Template     Template `json:"template"`
	Colors       Colors   `json:"colors"`
	Fonts        Fonts    `json:"fonts"`
	Spacing      string   `json:"spacing"`
	BorderRadius string   `json:"borderRadius"`
}

var Default = Config{
	Template: TemplateMinimal,
	Colors: Colors{
		Primary:    "#3b82f6",
		Secondary:  "#6b7280",
		Accent:     "#f59e0b",
		Background: "#ffffff",
		Foreground: "#111827",
	},
	Fonts:        Fonts{Body: "Inter", Heading: "Inter"},
	Spacing:      "normal",
	BorderRadius: "medium",
}

var templateDefaults = map[Template]Config{
	TemplateMinimal: Default,
	TemplateBold: {
		Template: TemplateBold,
		Colors: Colors{
			Primary:    "#7c3aed",
			Secondary:  "#db2777",
			Accent:     "#f59e0b",
			Background: "#0f172a",
			Foreground: "#f8fafc",
		},
		Fonts:        Fonts{Body: "Inter", Heading: "Montserrat"},
		Spacing:      "relaxed",
		BorderRadius: "large",
	},
	TemplateClassic: {
		Template: TemplateClassic,
		Colors: Colors{
			Primary:    "#1e40af",
			Secondary:  "#92400e",
			Accent:     "#065f46",
			Background: "#fafaf9",
			Foreground: "#1c1917",
		},
		Fonts:        Fonts{Body: "Georgia", Heading: "Georgia"},
		Spacing:      "compact",
		BorderRadius: "small",
	},
}

// TemplateDefaults returns the preset for a template name, falling back
// to the minimal preset for unknown names.
func TemplateDefaults(t Template) Config {
	if cfg, ok := templateDefaults[t]; ok {
		return cfg
	}
	return Default
}

// FromSettings extracts the theme from a project's raw settings object.
// Missing or malformed theme settings fall back to the default theme.
func FromSettings(settings json.RawMessage) Config {
	if len(settings) == 0 {
		return Default
	}
	var wrapper struct {
		Theme *Config `json:"theme"`
	}
	if err := json.Unmarshal(settings, &wrapper); err != nil || wrapper.Theme == nil {
		return Default
	}
	cfg := *wrapper.Theme
	if cfg.Template == "" {
		cfg.Template = TemplateMinimal
	}
	defaults := TemplateDefaults(cfg.Template)
	if cfg.Colors.Primary == "" {
		cfg.Colors.Primary = defaults.Colors.Primary
	}
	if cfg.Colors.Secondary == "" {
		cfg.Colors.Secondary = defaults.Colors.Secondary
	}
	if cfg.Colors.Accent == "" {
		cfg.Colors.Accent = defaults.Colors.Accent
	}
	if cfg.Colors.Background == "" {
		cfg.Colors.Background = defaults.Colors.Background
	}
	if cfg.Colors.Foreground == "" {
		cfg.Colors.Foreground = defaults.Colors.Foreground
	}
	if cfg.Fonts.Body == "" {
		cfg.Fonts.Body = defaults.Fonts.Body
	}
	if cfg.Fonts.Heading == "" {
		cfg.Fonts.Heading = defaults.Fonts.Heading
	}
	if cfg.Spacing == "" {
		cfg.Spacing = defaults.Spacing
	}
	if cfg.BorderRadius == "" {
		cfg.BorderRadius = defaults.BorderRadius
	}
	return cfg
}

var radiusMap = map[string]string{
	"none":   "0px",
	"small":  "0.25rem",
	"medium": "0.5rem",
	"large":  "1rem",
}

var spacingMap = map[string]string{
	"compact": "1rem",
	"normal":  "1.5rem",
	"relaxed": "2.5rem",
}

// BuildCSS renders the theme as CSS custom-property declarations.
// Pure function, no side effects.
func BuildCSS(cfg Config) string {
	radius, ok := radiusMap[cfg.BorderRadius]
	if !ok {
		radius = radiusMap["medium"]
	}
	spacing, ok := spacingMap[cfg.Spacing]
	if !ok {
		spacing = spacingMap["normal"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--theme-primary: %s;\n", cfg.Colors.Primary)
	fmt.Fprintf(&b, "--theme-secondary: %s;\n", cfg.Colors.Secondary)
	fmt.Fprintf(&b, "--theme-accent: %s;\n", cfg.Colors.Accent)
	fmt.Fprintf(&b, "--theme-background: %s;\n", cfg.Colors.Background)
	fmt.Fprintf(&b, "--theme-foreground: %s;\n", cfg.Colors.Foreground)
	fmt.Fprintf(&b, "--theme-font-body: %q, system-ui, sans-serif;\n", cfg.Fonts.Body)
	fmt.Fprintf(&b, "--theme-font-heading: %q, system-ui, sans-serif;\n", cfg.Fonts.Heading)
	fmt.Fprintf(&b, "--theme-radius: %s;\n", radius)
	fmt.Fprintf(&b, "--theme-spacing: %s;", spacing)
	return b.String()
}
