package handlers

import (
	"github.com/gofiber/fiber/v2"

	"studiodeck/pkg/auth"
)

// AuthHandler handles the shared-password admin gate
type AuthHandler struct {
	gate *auth.SessionGate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(gate *auth.SessionGate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// Login checks the studio password and issues a session token
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if h.gate == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Authentication is not configured",
		})
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if !h.gate.Login(body.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid password"})
	}

	token, expiresAt, err := h.gate.IssueToken()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"token":     token,
		"expiresAt": expiresAt,
	})
}

// Logout acknowledges a logout. Session tokens are stateless; the client
// discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "logged out"})
}

// Session reports whether the presented token is still valid. Mounted behind
// the session middleware, so reaching it means the token checked out.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
