package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studiodeck/internal/models"
	"studiodeck/internal/services"
)

// PageHandler handles presentation page CRUD
type PageHandler struct {
	pages *services.PageService
	decks *services.DeckService
}

// NewPageHandler creates a new page handler
func NewPageHandler(pages *services.PageService, decks *services.DeckService) *PageHandler {
	return &PageHandler{pages: pages, decks: decks}
}

// List returns all pages, newest first
func (h *PageHandler) List(c *fiber.Ctx) error {
	pages, err := h.pages.List(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"pages": pages})
}

// Get returns a single page with its full content list
func (h *PageHandler) Get(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid page ID"})
	}

	page, err := h.pages.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Page not found"})
	}
	return c.JSON(page)
}

// Create validates and stores a new page
func (h *PageHandler) Create(c *fiber.Ctx) error {
	var input models.PageInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	page, err := h.pages.Create(c.Context(), input)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return c.Status(400).JSON(fiber.Map{"error": verr.Error(), "fields": verr.Fields})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(page)
}

// Update replaces a page's mutable fields and drops its cached deck. When the
// slug changed both the old and new public URLs are invalidated.
func (h *PageHandler) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid page ID"})
	}

	existing, err := h.pages.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Page not found"})
	}

	var input models.PageInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.pages.Update(c.Context(), id, input); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return c.Status(400).JSON(fiber.Map{"error": verr.Error(), "fields": verr.Fields})
		}
		if err.Error() == "page not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Page not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	h.decks.InvalidateSlug(c.Context(), existing.Slug)
	if input.Slug != existing.Slug {
		h.decks.InvalidateSlug(c.Context(), input.Slug)
	}

	page, err := h.pages.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(page)
}

// Delete removes a page and drops its cached deck
func (h *PageHandler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid page ID"})
	}

	existing, err := h.pages.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Page not found"})
	}

	if err := h.pages.Delete(c.Context(), id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	h.decks.InvalidateSlug(c.Context(), existing.Slug)
	return c.JSON(fiber.Map{"status": "deleted"})
}
