package site

import (
	"html/template"
	"unicode/utf8"

	"github.com/dirmaster/dirmaster-backend/internal/domain/theme"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/gofiber/fiber/v2"
)

type pageData struct {
	Title       string
	Description string
	ThemeCSS    template.CSS
	Project     *db.Project
	Entries     []db.Entry
	Entry       *db.Entry
	BasePath    string
}

const layoutHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
<style>
:root {
{{.ThemeCSS}}
}
body { margin: 0; font-family: var(--theme-font-body); background: var(--theme-background); color: var(--theme-foreground); }
a { color: inherit; }
h1, h2 { font-family: var(--theme-font-heading); }
.card { border-radius: var(--theme-radius); }
main { padding: var(--theme-spacing); }
</style>
</head>
<body>
{{template "body" .}}
</body>
</html>`

const minimalBody = `{{define "body"}}
<div style="max-width: 56rem; margin: 0 auto; padding: 1rem 1rem 2rem;">
<header style="margin-bottom: 3rem; border-bottom: 1px solid var(--theme-secondary); padding-bottom: 2rem;">
<h1>{{.Project.Name}}</h1>
<nav><a href="{{.BasePath}}" style="color: var(--theme-primary);">Home</a></nav>
</header>
<main>
{{if not .Entries}}<p style="text-align: center; opacity: 0.6;">No entries yet.</p>{{else}}
{{range .Entries}}
<article class="card" style="border: 1px solid var(--theme-secondary); padding: 1.25rem; margin-bottom: var(--theme-spacing);">
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" style="width: 100%; border-radius: var(--theme-radius);">{{end}}
<h2><a href="{{$.BasePath}}/entries/{{.Slug}}" style="color: var(--theme-primary);">{{.Title}}</a></h2>
{{if .PublishedAt}}<p style="opacity: 0.6; font-size: 0.875rem;">{{.PublishedAt.Format "January 2, 2006"}}</p>{{end}}
<p style="opacity: 0.8;">{{excerpt .Content}}</p>
</article>
{{end}}
{{end}}
</main>
<footer style="margin-top: 4rem; border-top: 1px solid var(--theme-secondary); padding-top: 2rem; text-align: center; opacity: 0.6;">
{{.Project.Name}} &middot; Powered by DirMaster
</footer>
</div>
{{end}}`

const boldBody = `{{define "body"}}
<header style="padding: 4rem 1rem; text-align: center; background: var(--theme-primary); color: #fff;">
<h1 style="font-size: 3rem; margin: 0;">{{.Project.Name}}</h1>
<nav style="margin-top: 1.5rem; text-transform: uppercase; letter-spacing: 0.1em; font-size: 0.875rem;">
<a href="{{.BasePath}}" style="color: #fff;">Home</a>
</nav>
</header>
<main style="max-width: 72rem; margin: 0 auto;">
{{if not .Entries}}<p style="text-align: center; opacity: 0.6;">No entries yet.</p>{{else}}
{{range .Entries}}
<article class="card" style="box-shadow: 0 10px 15px rgba(0,0,0,0.1); overflow: hidden; margin-bottom: var(--theme-spacing);">
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" style="width: 100%;">{{end}}
<div style="padding: 1.25rem;">
<h2><a href="{{$.BasePath}}/entries/{{.Slug}}" style="text-decoration: none;">{{.Title}}</a></h2>
{{if .PublishedAt}}<p style="opacity: 0.6; font-size: 0.875rem;">{{.PublishedAt.Format "January 2, 2006"}}</p>{{end}}
<p style="opacity: 0.8;">{{excerpt .Content}}</p>
</div>
</article>
{{end}}
{{end}}
</main>
<footer style="padding: 2rem; text-align: center; background: var(--theme-primary); color: rgba(255,255,255,0.7);">
{{.Project.Name}} &middot; Powered by DirMaster
</footer>
{{end}}`

const classicBody = `{{define "body"}}
<div style="max-width: 48rem; margin: 0 auto; padding: 2rem 1rem;">
<header style="text-align: center; margin-bottom: 3rem;">
<h1 style="font-size: 2.5rem;">{{.Project.Name}}</h1>
<hr style="width: 6rem; border-color: var(--theme-accent);">
<nav style="font-style: italic;"><a href="{{.BasePath}}" style="color: var(--theme-primary);">Home</a></nav>
</header>
<main>
{{if not .Entries}}<p style="text-align: center; opacity: 0.6;">No entries yet.</p>{{else}}
{{range .Entries}}
<article style="border-bottom: 1px solid var(--theme-secondary); padding-bottom: var(--theme-spacing); margin-bottom: var(--theme-spacing);">
<h2><a href="{{$.BasePath}}/entries/{{.Slug}}" style="color: var(--theme-primary); text-decoration: none;">{{.Title}}</a></h2>
{{if .PublishedAt}}<p style="opacity: 0.6; font-size: 0.875rem; font-style: italic;">{{.PublishedAt.Format "January 2, 2006"}}</p>{{end}}
<p style="opacity: 0.8;">{{excerpt .Content}}</p>
</article>
{{end}}
{{end}}
</main>
<footer style="text-align: center; opacity: 0.6; margin-top: 4rem;">
{{.Project.Name}} &middot; Powered by DirMaster
</footer>
</div>
{{end}}`

const entryBody = `{{define "body"}}
<div style="max-width: 48rem; margin: 0 auto; padding: 2rem 1rem;">
<nav style="margin-bottom: 2rem;">
<a href="{{.BasePath}}" style="color: var(--theme-primary);">&larr; {{.Project.Name}}</a>
</nav>
<article>
{{if .Entry.ImageURL}}<img src="{{.Entry.ImageURL}}" alt="{{.Entry.Title}}" style="width: 100%; border-radius: var(--theme-radius); margin-bottom: 1.5rem;">{{end}}
<h1>{{.Entry.Title}}</h1>
{{if .Entry.PublishedAt}}<p style="opacity: 0.6;">{{.Entry.PublishedAt.Format "January 2, 2006"}}</p>{{end}}
<div style="line-height: 1.7; white-space: pre-wrap;">{{.Entry.Content}}</div>
</article>
</div>
{{end}}`

func excerpt(content string) string {
	return truncate(content, 200)
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

var funcs = template.FuncMap{"excerpt": excerpt}

var homeTemplates = map[theme.Template]*template.Template{
	theme.TemplateMinimal: template.Must(template.New("home").Funcs(funcs).Parse(layoutHTML + minimalBody)),
	theme.TemplateBold:    template.Must(template.New("home").Funcs(funcs).Parse(layoutHTML + boldBody)),
	theme.TemplateClassic: template.Must(template.New("home").Funcs(funcs).Parse(layoutHTML + classicBody)),
}

var entryTemplate = template.Must(template.New("entry").Funcs(funcs).Parse(layoutHTML + entryBody))

func (s *Server) renderHome(c *fiber.Ctx, project *db.Project, entries []db.Entry, title, description string) error {
	cfg, css := themeFor(project)
	tmpl, ok := homeTemplates[cfg.Template]
	if !ok {
		tmpl = homeTemplates[theme.TemplateMinimal]
	}

	c.Type("html")
	return tmpl.Execute(c.Response().BodyWriter(), pageData{
		Title:       title,
		Description: description,
		ThemeCSS:    template.CSS(css),
		Project:     project,
		Entries:     entries,
		BasePath:    "/site/" + project.Slug,
	})
}

func (s *Server) renderEntry(c *fiber.Ctx, project *db.Project, entry *db.Entry, title, description string) error {
	_, css := themeFor(project)

	c.Type("html")
	return entryTemplate.Execute(c.Response().BodyWriter(), pageData{
		Title:       title,
		Description: description,
		ThemeCSS:    template.CSS(css),
		Project:     project,
		Entry:       entry,
		BasePath:    "/site/" + project.Slug,
	})
}
