package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DhavalCK/actify/internal/database"
	"github.com/DhavalCK/actify/internal/models"
	"github.com/DhavalCK/actify/internal/routes"
	"github.com/DhavalCK/actify/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.DB = db
	require.NoError(t, database.Migrate())
	services.Init(db, time.Now)

	app := fiber.New()
	routes.Setup(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerUser(t *testing.T, app *fiber.App) (string, string) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Email:    "dhaval@example.com",
		Password: "secret123",
		Name:     "Dhaval",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := body["token"].(string)
	user := body["user"].(map[string]interface{})
	return token, user["id"].(string)
}

func TestActionLifecycleThroughAPI(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerUser(t, app)

	resp, created := doJSON(t, app, http.MethodPost, "/api/actions/", token, models.CreateActionRequest{Title: "ship it"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	actionID := created["id"].(string)

	resp, toggled := doJSON(t, app, http.MethodPost, "/api/actions/"+actionID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, toggled["done"])

	resp, dashboard := doJSON(t, app, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 100, dashboard["ratio"])
	assert.EqualValues(t, 1, dashboard["current"])
	assert.EqualValues(t, 1, dashboard["best"])

	resp, stats := doJSON(t, app, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, stats["totalActions"])
	assert.EqualValues(t, 1, stats["completedActions"])
}

func TestCreateAction_EmptyTitleRejected(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerUser(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/actions/", token, models.CreateActionRequest{Title: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActions_RequireAuth(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/actions/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGenerateMotivation_Contract(t *testing.T) {
	app := newTestApp(t)
	_, userID := registerUser(t, app)

	// Missing fields
	resp, body := doJSON(t, app, http.MethodPost, "/api/motivation/generate", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	// Wrong method
	req := httptest.NewRequest(http.MethodGet, "/api/motivation/generate", nil)
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, raw.StatusCode)

	// The zero UUID parses but identifies no user
	zero := models.GenerateMotivationRequest{UID: uuid.Nil.String(), DateKey: "2024-05-02"}
	resp, body = doJSON(t, app, http.MethodPost, "/api/motivation/generate", "", zero)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	// Happy path, cached on second call
	payload := models.GenerateMotivationRequest{UID: userID, DateKey: "2024-05-02"}
	resp, first := doJSON(t, app, http.MethodPost, "/api/motivation/generate", "", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, first["text"])
	assert.Equal(t, "2024-05-02", first["date"])

	resp, second := doJSON(t, app, http.MethodPost, "/api/motivation/generate", "", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, first["text"], second["text"])
}

func TestGetPerformance_BadDateKey(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerUser(t, app)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/performance/not-a-day", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
