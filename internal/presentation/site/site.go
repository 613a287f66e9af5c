package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/query"
	"github.com/dirmaster/dirmaster-backend/internal/domain/theme"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/gofiber/fiber/v2"
)

// Server renders the public directory pages out of the cache-aside
// queries, so a hot site rarely touches the primary store.
type Server struct {
	getProject *query.GetProject
	getEntries *query.GetEntries
	getEntry   *query.GetEntry
	appURL     string
}

func NewServer(getProject *query.GetProject, getEntries *query.GetEntries, getEntry *query.GetEntry, appURL string) *Server {
	if appURL == "" {
		appURL = "http://localhost:3001"
	}
	return &Server{getProject: getProject, getEntries: getEntries, getEntry: getEntry, appURL: appURL}
}

type seoSettings struct {
	DefaultTitle       string `json:"defaultTitle"`
	TitleTemplate      string `json:"titleTemplate"`
	DefaultDescription string `json:"defaultDescription"`
}

func seoFromSettings(settings json.RawMessage) seoSettings {
	var wrapper struct {
		SEO seoSettings `json:"seo"`
	}
	_ = json.Unmarshal(settings, &wrapper)
	return wrapper.SEO
}

func baseURL(project *db.Project, appURL string) string {
	if project.Domain != nil && *project.Domain != "" {
		return "https://" + *project.Domain
	}
	return appURL
}

func (s *Server) Home(c *fiber.Ctx) error {
	ctx := c.Context()
	project, err := s.getProject.BySlug(ctx, c.Params("projectSlug"))
	if err != nil {
		return siteError(c, err)
	}
	entries, err := s.getEntries.Query(ctx, project.ID)
	if err != nil {
		return siteError(c, err)
	}

	seo := seoFromSettings(project.Settings)
	title := seo.DefaultTitle
	if title == "" {
		title = project.Name
	}
	description := seo.DefaultDescription
	if description == "" {
		description = "Browse our directory"
	}

	return s.renderHome(c, project, entries, title, description)
}

func (s *Server) Entry(c *fiber.Ctx) error {
	ctx := c.Context()
	project, err := s.getProject.BySlug(ctx, c.Params("projectSlug"))
	if err != nil {
		return siteError(c, err)
	}
	entry, err := s.getEntry.Query(ctx, project.ID, c.Params("entrySlug"))
	if err != nil {
		return siteError(c, err)
	}

	seo := seoFromSettings(project.Settings)
	title := entry.Title
	if seo.TitleTemplate != "" {
		title = strings.ReplaceAll(seo.TitleTemplate, "%s", entry.Title)
	}
	description := truncate(entry.Content, 160)

	return s.renderEntry(c, project, entry, title, description)
}

func siteError(c *fiber.Ctx, err error) error {
	var notFound errs.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).Type("html").
			SendString("<h1>404</h1><p>Page not found.</p>")
	}
	return c.Status(fiber.StatusInternalServerError).Type("html").
		SendString("<h1>500</h1><p>Something went wrong.</p>")
}

func themeFor(project *db.Project) (theme.Config, string) {
	cfg := theme.FromSettings(project.Settings)
	return cfg, theme.BuildCSS(cfg)
}

func entryURL(base, slug string) string {
	return fmt.Sprintf("%s/%s", base, slug)
}
