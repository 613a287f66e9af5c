package rest

import (
	"strings"

	"github.com/dirmaster/dirmaster-backend/internal/application/dto"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/presentation/site"
	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// NewAuthMiddleware rejects requests without a verified bearer token
// and stores the resolved identity for the handlers downstream.
func NewAuthMiddleware(provider *auth.IdentityProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "missing bearer token"})
		}

		identity, err := provider.GetIdentity(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid token"})
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

func RegisterHandlers(app *fiber.App, server *Server, siteServer *site.Server, authMiddleware fiber.Handler) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Post("/api/submissions", server.SubmitEntry)

	app.Get("/site/:projectSlug", siteServer.Home)
	app.Get("/site/:projectSlug/sitemap.xml", siteServer.Sitemap)
	app.Get("/site/:projectSlug/entries/:entrySlug", siteServer.Entry)

	admin := app.Group("/", authMiddleware)
	admin.Post("/projects", server.CreateProject)
	admin.Get("/projects", server.ListProjects)
	admin.Get("/projects/:id", server.GetProject)
	admin.Put("/projects/:id", server.UpdateProject)
	admin.Post("/projects/:id/entries", server.CreateEntry)
	admin.Get("/projects/:id/entries", server.ListEntries)
	admin.Put("/projects/:id/entries/:entryId", server.UpdateEntry)
	admin.Delete("/projects/:id/entries/:entryId", server.DeleteEntry)
	admin.Post("/projects/:id/entries/:entryId/review", server.ReviewEntry)
	admin.Post("/files", server.UploadFile)
	admin.Get("/domains/check", server.CheckDomain)
}
