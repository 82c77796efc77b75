package routes

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadhub/config"
	"leadhub/store/relational"
	"leadhub/utils"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig.JWTSecret = "routes-test-secret"
	config.AppConfig.RateLimitWrites = 60

	dir := t.TempDir()
	st, err := relational.Open(config.Config{
		StoreBackend: "sqlite",
		SQLitePath:   filepath.Join(dir, "leadhub.db"),
		BackupDir:    filepath.Join(dir, "backups"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	app := fiber.New()
	SetupRoutes(app, st)
	return app
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	body, err := json.Marshal(fiber.Map{
		"username": "admin",
		"password": utils.DefaultAdminPassword,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Data.AccessToken)
	return payload.Data.AccessToken
}

func TestHealthEndpointIsPublic(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := newTestApp(t)

	// The live activity feed carries lead names, so its upgrade
	// request must be rejected without a token like any other route.
	paths := []string{
		"/api/v1/leads",
		"/api/v1/activity",
		"/api/v1/activity/live",
	}
	for _, path := range paths {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestActivityFeedRequiresUpgradeOnceAuthorized(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/activity/live", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestLeadsListWithToken(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
