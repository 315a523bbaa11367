package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"studiodeck/internal/models"
	"studiodeck/internal/services"
)

// PresentationHandler serves the public flattened decks
type PresentationHandler struct {
	pages *services.PageService
	decks *services.DeckService
}

// NewPresentationHandler creates a new presentation handler
func NewPresentationHandler(pages *services.PageService, decks *services.DeckService) *PresentationHandler {
	return &PresentationHandler{pages: pages, decks: decks}
}

// Get resolves a public slug to its page and returns the flattened deck.
// A page whose content list is empty is a real page with no deck; the viewer
// shows an empty state rather than a 404.
func (h *PresentationHandler) Get(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if !models.ValidSlug(slug) {
		return c.Status(404).JSON(fiber.Map{"error": "Presentation not found"})
	}

	page, err := h.pages.GetBySlug(c.Context(), slug)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Presentation not found"})
	}

	deck, err := h.decks.BuildDeckCached(c.Context(), page)
	if err != nil {
		if errors.Is(err, services.ErrNoContent) {
			return c.JSON(fiber.Map{
				"slug":   page.Slug,
				"name":   page.Name,
				"slides": []models.RenderSlide{},
				"empty":  true,
			})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(deck)
}
