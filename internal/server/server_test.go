package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quicknotes-be/internal/bootstrap"
	"quicknotes-be/internal/config"
	"quicknotes-be/internal/pkg/dbtest"
	"quicknotes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Id        string    `json:"id"`
	UserId    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newTestApp(t *testing.T) *fiber.App {
	cfg := &config.Config{
		App: config.AppConfig{
			Environment:        "test",
			CorsAllowedOrigins: "*",
			NoteEventsTopic:    "note.events",
		},
		Database: config.DatabaseConfig{Driver: "sqlite"},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
	}
	container := bootstrap.NewContainerWithLoggers(dbtest.New(t), cfg, bootstrap.Loggers{
		System:   logger.NewNopLogger(),
		Activity: logger.NewNopLogger(),
	})
	t.Cleanup(func() { _ = container.Close() })

	return New(cfg, container).GetApp()
}

func do(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func messageOf(t *testing.T, raw []byte) string {
	return decode[map[string]interface{}](t, raw)["message"].(string)
}

func credentials(username, password string) map[string]string {
	return map[string]string{"username": username, "password": password}
}

func registerAndLogin(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	status, _ := do(t, app, http.MethodPost, "/auth/register", "", credentials(username, password))
	require.Equal(t, http.StatusCreated, status)
	status, raw := do(t, app, http.MethodPost, "/auth/login", "", credentials(username, password))
	require.Equal(t, http.StatusOK, status)
	return decode[map[string]string](t, raw)["token"]
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	status, raw := do(t, app, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "quicknotes backend is running live", string(raw))
}

func TestRegisterLoginAndNoteLifecycle(t *testing.T) {
	app := newTestApp(t)

	status, raw := do(t, app, http.MethodPost, "/auth/register", "", credentials("alice", "pw1"))
	require.Equal(t, http.StatusCreated, status)
	reg := decode[struct {
		Message string            `json:"message"`
		User    map[string]string `json:"user"`
	}](t, raw)
	assert.Equal(t, "User registered successfully", reg.Message)
	assert.Equal(t, "alice", reg.User["username"])
	assert.NotEmpty(t, reg.User["id"])
	assert.NotContains(t, string(raw), "password")

	status, raw = do(t, app, http.MethodPost, "/auth/login", "", credentials("alice", "pw1"))
	require.Equal(t, http.StatusOK, status)
	tok := decode[map[string]string](t, raw)["token"]
	require.NotEmpty(t, tok)

	status, raw = do(t, app, http.MethodPost, "/notes", tok, map[string]string{"title": "a", "content": "b"})
	require.Equal(t, http.StatusCreated, status)
	created := decode[struct {
		Message string `json:"message"`
		Note    note   `json:"note"`
	}](t, raw)
	assert.Equal(t, "Note created successfully", created.Message)
	n := created.Note
	assert.Equal(t, reg.User["id"], n.UserId)

	status, raw = do(t, app, http.MethodGet, "/notes", tok, nil)
	require.Equal(t, http.StatusOK, status)
	listed := decode[[]note](t, raw)
	require.Len(t, listed, 1)
	assert.Equal(t, n.Id, listed[0].Id)
	assert.Equal(t, "a", listed[0].Title)
	assert.Equal(t, "b", listed[0].Content)

	status, raw = do(t, app, http.MethodPut, "/notes/"+n.Id, tok, map[string]string{"title": "a2", "content": "b2"})
	require.Equal(t, http.StatusOK, status)
	updated := decode[struct {
		Message string `json:"message"`
		Note    note   `json:"note"`
	}](t, raw)
	assert.Equal(t, "Note updated successfully", updated.Message)
	assert.Equal(t, n.Id, updated.Note.Id)
	assert.Equal(t, "a2", updated.Note.Title)
	assert.Equal(t, "b2", updated.Note.Content)

	status, raw = do(t, app, http.MethodDelete, "/notes/"+n.Id, tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Note deleted successfully", messageOf(t, raw))

	status, raw = do(t, app, http.MethodGet, "/notes", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestAuthErrors(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "alice", "pw1")

	tests := []struct {
		name    string
		path    string
		body    interface{}
		status  int
		message string
	}{
		{"duplicate", "/auth/register", credentials("alice", "other"), 400, "Username is already taken"},
		{"register missing password", "/auth/register", map[string]string{"username": "bob"}, 400, "Username and password are required"},
		{"register empty body", "/auth/register", nil, 400, "Username and password are required"},
		{"login unknown user", "/auth/login", credentials("nobody", "pw1"), 400, "User not found"},
		{"login wrong password", "/auth/login", credentials("alice", "nope"), 400, "Invalid credentials"},
		{"login missing username", "/auth/login", map[string]string{"password": "pw1"}, 400, "Username and password are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := do(t, app, http.MethodPost, tt.path, "", tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, messageOf(t, raw))
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodPost, "/auth/logout"},
		{http.MethodGet, "/auth/register"},
	} {
		status, raw := do(t, app, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusNotFound, status, tc.method+" "+tc.path)
		assert.Equal(t, "Route not found", messageOf(t, raw))
	}
}

func TestMalformedJSON(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"username":`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/notes"},
		{http.MethodPost, "/notes"},
		{http.MethodPut, "/notes/00000000-0000-0000-0000-000000000000"},
		{http.MethodDelete, "/notes/00000000-0000-0000-0000-000000000000"},
	} {
		status, raw := do(t, app, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, tc.method+" "+tc.path)
		assert.Equal(t, "Missing token", messageOf(t, raw))

		status, raw = do(t, app, tc.method, tc.path, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid token", messageOf(t, raw))
	}
}

func TestCrossUserIsolationOverHTTP(t *testing.T) {
	app := newTestApp(t)
	alice := registerAndLogin(t, app, "alice", "pw1")
	bob := registerAndLogin(t, app, "bob", "pw2")

	status, raw := do(t, app, http.MethodPost, "/notes", alice, map[string]string{"title": "mine", "content": "secret"})
	require.Equal(t, http.StatusCreated, status)
	id := decode[struct {
		Note note `json:"note"`
	}](t, raw).Note.Id

	status, raw = do(t, app, http.MethodGet, "/notes", bob, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))

	status, raw = do(t, app, http.MethodPut, "/notes/"+id, bob, map[string]string{"title": "x", "content": "y"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Note not found", messageOf(t, raw))

	status, _ = do(t, app, http.MethodDelete, "/notes/"+id, bob, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodPut, "/notes/not-a-uuid", alice, map[string]string{"title": "x", "content": "y"})
	assert.Equal(t, http.StatusNotFound, status)

	status, raw = do(t, app, http.MethodGet, "/notes", alice, nil)
	require.Equal(t, http.StatusOK, status)
	listed := decode[[]note](t, raw)
	require.Len(t, listed, 1)
	assert.Equal(t, "secret", listed[0].Content)
}

func TestNoteValidation(t *testing.T) {
	app := newTestApp(t)
	tok := registerAndLogin(t, app, "alice", "pw1")

	status, raw := do(t, app, http.MethodPost, "/notes", tok, map[string]string{"title": "only title"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Title and content are required", messageOf(t, raw))

	status, raw = do(t, app, http.MethodGet, "/notes", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/notes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}
