package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"studiodeck/internal/middleware"
	"studiodeck/pkg/auth"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *auth.SessionGate) {
	t.Helper()

	gate, err := auth.NewSessionGate("test-secret", "studio-pass", "", time.Hour)
	if err != nil {
		t.Fatalf("failed to create gate: %v", err)
	}

	app := fiber.New()
	h := NewAuthHandler(gate)
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/logout", h.Logout)
	app.Get("/api/auth/session", middleware.SessionMiddleware(gate), h.Session)
	return app, gate
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	return resp
}

func TestLoginSuccess(t *testing.T) {
	app, gate := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/auth/login", map[string]string{"password": "studio-pass"})
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Token == "" {
		t.Fatal("expected a session token")
	}
	if err := gate.VerifyToken(body.Token); err != nil {
		t.Errorf("issued token does not verify: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/auth/login", map[string]string{"password": "nope"})
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLoginUnconfiguredGate(t *testing.T) {
	app := fiber.New()
	app.Post("/api/auth/login", NewAuthHandler(nil).Login)

	resp := postJSON(t, app, "/api/auth/login", map[string]string{"password": "anything"})
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestSessionRequiresToken(t *testing.T) {
	app, gate := newAuthTestApp(t)

	req := httptest.NewRequest("GET", "/api/auth/session", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 without a token, got %d", resp.StatusCode)
	}

	token, _, err := gate.IssueToken()
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	req = httptest.NewRequest("GET", "/api/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 with a valid token, got %d", resp.StatusCode)
	}
}

func TestSessionAcceptsQueryToken(t *testing.T) {
	app, gate := newAuthTestApp(t)

	token, _, err := gate.IssueToken()
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/auth/session?token="+token, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 with a query token, got %d", resp.StatusCode)
	}
}

func TestLogout(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/auth/logout", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
