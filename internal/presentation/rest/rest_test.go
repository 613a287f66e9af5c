package rest_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/application"
	"github.com/dirmaster/dirmaster-backend/internal/application/commands"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/cache"
	"github.com/dirmaster/dirmaster-backend/internal/presentation/rest"
	"github.com/dirmaster/dirmaster-backend/internal/presentation/site"
	"github.com/dirmaster/dirmaster-backend/internal/testinfra"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	provider, err := auth.NewIdentityProvider(context.Background(), &auth.Config{})
	require.NoError(t, err)

	app := fiber.New()
	server := rest.NewServer(&application.Handlers{})
	siteServer := site.NewServer(nil, nil, nil, "")
	rest.RegisterHandlers(app, server, siteServer, rest.NewAuthMiddleware(provider))
	return app
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminRoutesRequireBearerToken(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/projects", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Basic something")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubmissionHoneypotPretendsSuccess(t *testing.T) {
	app := newTestApp(t)

	body := `{"projectId":"` + "00000000-0000-0000-0000-000000000001" + `","data":{"name":"Bot"},"_hp":"gotcha"}`
	req := httptest.NewRequest("POST", "/api/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed struct {
		OK bool   `json:"ok"`
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.True(t, parsed.OK)
	require.Empty(t, parsed.ID, "a trapped submission must not create an entry")
}

// newSubmissionApp wires a real submit command against the test
// database so the route can be exercised end to end.
func newSubmissionApp(t *testing.T) *fiber.App {
	t.Helper()

	provider, err := auth.NewIdentityProvider(context.Background(), &auth.Config{})
	require.NoError(t, err)

	mutator := commands.NewMutator(dbs.NewUoWFactory(testinfra.Pool), cache.New(cache.NewMemoryStore(), time.Hour))
	handlers := &application.Handlers{SubmitEntry: commands.NewSubmitEntry(mutator)}

	app := fiber.New()
	rest.RegisterHandlers(app, rest.NewServer(handlers), site.NewServer(nil, nil, nil, ""), rest.NewAuthMiddleware(provider))
	return app
}

func seedSubmissionProject(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	ownerID := uuid.New()
	projectID := uuid.New()
	_, err := testinfra.Pool.Exec(ctx,
		"INSERT INTO dirmaster.owners (id, email) VALUES ($1, $2)",
		ownerID, uuid.NewString()+"@example.com")
	require.NoError(t, err)
	_, err = testinfra.Pool.Exec(ctx,
		"INSERT INTO dirmaster.projects (id, owner_id, name, slug) VALUES ($1, $2, $3, $4)",
		projectID, ownerID, "City Guide", "guide-"+uuid.NewString()[:8])
	require.NoError(t, err)
	return projectID
}

func postSubmission(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var parsed struct {
		OK bool   `json:"ok"`
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.True(t, parsed.OK)
	return resp.StatusCode, parsed.ID
}

func TestSubmissionFalsyHoneypotIsPersisted(t *testing.T) {
	app := newSubmissionApp(t)
	projectID := seedSubmissionProject(t)

	// Form libraries serialize the untouched field as false, 0 or "";
	// all of those are genuine visitors.
	for _, hp := range []string{`false`, `0`, `""`} {
		body := `{"projectId":"` + projectID.String() + `","data":{"name":"Visitor ` + hp + `"},"_hp":` + hp + `}`
		status, id := postSubmission(t, app, body)
		require.Equal(t, fiber.StatusOK, status)
		require.NotEmpty(t, id)

		var dbStatus string
		err := testinfra.Pool.QueryRow(context.Background(),
			"SELECT status FROM dirmaster.entries WHERE id = $1", uuid.MustParse(id)).Scan(&dbStatus)
		require.NoError(t, err)
		require.Equal(t, "pending", dbStatus)
	}

	status, id := postSubmission(t, app, `{"projectId":"`+projectID.String()+`","data":{"name":"Human"}}`)
	require.Equal(t, fiber.StatusOK, status)
	require.NotEmpty(t, id)
}

func TestSubmissionTruthyHoneypotIsDropped(t *testing.T) {
	app := newSubmissionApp(t)
	projectID := seedSubmissionProject(t)

	for _, hp := range []string{`true`, `1`, `"gotcha"`, `{"a":1}`} {
		body := `{"projectId":"` + projectID.String() + `","data":{"name":"Bot"},"_hp":` + hp + `}`
		status, id := postSubmission(t, app, body)
		require.Equal(t, fiber.StatusOK, status)
		require.Empty(t, id)
	}

	var count int
	err := testinfra.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM dirmaster.entries WHERE project_id = $1", projectID).Scan(&count)
	require.NoError(t, err)
	require.Zero(t, count)
}
