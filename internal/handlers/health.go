package handlers

import (
	"github.com/gofiber/fiber/v2"

	"studiodeck/internal/database"
	"studiodeck/internal/services"
)

// HealthHandler reports service health
type HealthHandler struct {
	mongo *database.MongoDB
	redis *services.RedisService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(mongo *database.MongoDB, redis *services.RedisService) *HealthHandler {
	return &HealthHandler{mongo: mongo, redis: redis}
}

// Handle returns overall status plus per-dependency detail
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	status := "healthy"
	deps := fiber.Map{}

	if h.mongo != nil {
		if err := h.mongo.Ping(c.Context()); err != nil {
			status = "degraded"
			deps["mongodb"] = "unreachable"
		} else {
			deps["mongodb"] = "connected"
		}
	} else {
		status = "degraded"
		deps["mongodb"] = "not configured"
	}

	if h.redis != nil {
		deps["redis"] = "connected"
	} else {
		deps["redis"] = "disabled"
	}

	code := 200
	if status != "healthy" {
		code = 503
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"services": deps,
	})
}
