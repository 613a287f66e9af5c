package site

import (
	"encoding/xml"
	"time"

	"github.com/gofiber/fiber/v2"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (s *Server) Sitemap(c *fiber.Ctx) error {
	ctx := c.Context()
	project, err := s.getProject.BySlug(ctx, c.Params("projectSlug"))
	if err != nil {
		return siteError(c, err)
	}
	entries, err := s.getEntries.Query(ctx, project.ID)
	if err != nil {
		return siteError(c, err)
	}

	base := baseURL(project, s.appURL)
	now := time.Now()
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{{
			Loc:        base,
			LastMod:    now.Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   "1.0",
		}},
	}
	for _, entry := range entries {
		lastMod := now
		if entry.PublishedAt != nil {
			lastMod = *entry.PublishedAt
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        entryURL(base, entry.Slug),
			LastMod:    lastMod.Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	out, err := xml.Marshal(set)
	if err != nil {
		return siteError(c, err)
	}
	c.Type("xml")
	return c.Send(append([]byte(xml.Header), out...))
}
