package rest

import (
	"errors"
	"log/slog"

	"github.com/dirmaster/dirmaster-backend/internal/application"
	"github.com/dirmaster/dirmaster-backend/internal/application/dto"
	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Server struct {
	handlers *application.Handlers
}

func NewServer(handlers *application.Handlers) *Server {
	return &Server{handlers: handlers}
}

// fail maps application errors onto http statuses.
func fail(c *fiber.Ctx, err error) error {
	var (
		validation errs.ValidationError
		notFound   errs.NotFoundError
		transition errs.InvalidTransitionError
		permission errs.PermissionsError
	)
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &transition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &permission):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("unhandled error", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
}

func identityFrom(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(identityKey).(*auth.Identity)
	return identity
}

func pathUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errs.ValidationError{Msg: name + " must be a valid uuid"}
	}
	return id, nil
}

func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	projectID, err := s.handlers.CreateProject.Execute(c.Context(), &req, identityFrom(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateProjectResponse{ProjectID: projectID.String()})
}

func (s *Server) ListProjects(c *fiber.Ctx) error {
	projects, err := s.handlers.ListProjects.Query(c.Context(), identityFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(projects)
}

func (s *Server) GetProject(c *fiber.Ctx) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	project, err := s.handlers.ListProjects.One(c.Context(), projectID, identityFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(project)
}

func (s *Server) UpdateProject(c *fiber.Ctx) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	updatedID, err := s.handlers.UpdateProject.Execute(c.Context(), projectID, &req, identityFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.UpdateProjectResponse{ProjectID: updatedID.String()})
}

func (s *Server) CreateEntry(c *fiber.Ctx) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	entryID, err := s.handlers.CreateEntry.Execute(c.Context(), projectID, &req, identityFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateEntryResponse{EntryID: entryID.String()})
}

func (s *Server) ListEntries(c *fiber.Ctx) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	entries, err := s.handlers.ListEntries.Query(c.Context(), projectID, c.Query("status"), identityFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}

func (s *Server) UpdateEntry(c *fiber.Ctx) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	entryID, err := pathUUID(c, "entryId")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	updatedID, err := s.handlers.UpdateEntry.Execute(c.Context(), projectID, entryID, &req, identityFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.UpdateEntryResponse{EntryID: updatedID.String()})
}

func (s *Server) DeleteEntry(c *fiber.Ctx) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	entryID, err := pathUUID(c, "entryId")
	if err != nil {
		return fail(c, err)
	}

	if err := s.handlers.DeleteEntry.Execute(c.Context(), projectID, entryID, identityFrom(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) ReviewEntry(c *fiber.Ctx) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	entryID, err := pathUUID(c, "entryId")
	if err != nil {
		return fail(c, err)
	}
	var req dto.ReviewEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	status, err := s.handlers.ReviewEntry.Execute(c.Context(), projectID, entryID, &req, identityFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.ReviewEntryResponse{EntryID: entryID.String(), Status: string(status)})
}

func (s *Server) SubmitEntry(c *fiber.Ctx) error {
	var req dto.SubmitEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	// bots fill the hidden field; pretend success and drop the payload
	if honeypotTripped(req.Honeypot) {
		return c.Status(fiber.StatusOK).JSON(dto.SubmitEntryResponse{OK: true})
	}

	entryID, err := s.handlers.SubmitEntry.Execute(c.Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.SubmitEntryResponse{OK: true, ID: entryID.String()})
}

// honeypotTripped treats the field the way a JS form handler would:
// false, 0, "" and absent all pass, anything else trips.
func honeypotTripped(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

func (s *Server) UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, err)
	}
	defer file.Close()

	var contentType *string
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		contentType = &ct
	}

	fileID, fileURL, err := s.handlers.UploadFile.Execute(c.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FileUploadedResponse{FileID: fileID.String(), FileURL: fileURL})
}

func (s *Server) CheckDomain(c *fiber.Ctx) error {
	domain := c.Query("domain")
	if domain == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "domain query param is required"})
	}

	available, err := s.handlers.CheckDomain.Query(c.Context(), domain)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.DomainAvailability{Available: available})
}
