package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studiodeck/internal/composition"
	"studiodeck/internal/models"
	"studiodeck/internal/services"
)

// BuilderHandler handles the content mutations performed by the page builder.
// Every mutation persists the updated content list, returns the fresh page and
// drops the page's cached deck.
type BuilderHandler struct {
	pages *services.PageService
	decks *services.DeckService
}

// NewBuilderHandler creates a new builder handler
func NewBuilderHandler(pages *services.PageService, decks *services.DeckService) *BuilderHandler {
	return &BuilderHandler{pages: pages, decks: decks}
}

// AddProject appends a project reference to the page's content list
func (h *BuilderHandler) AddProject(c *fiber.Ctx) error {
	pageID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid page ID"})
	}

	var body struct {
		ProjectID string `json:"projectId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.ProjectID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "projectId is required"})
	}

	page, err := h.pages.AddProjectItem(c.Context(), pageID, body.ProjectID)
	return h.respond(c, page, err)
}

// AddBreak appends a slide break, or edits one in place when editingIndex is set
func (h *BuilderHandler) AddBreak(c *fiber.Ctx) error {
	pageID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid page ID"})
	}

	var body struct {
		Title        string `json:"title"`
		Text         string `json:"text"`
		EditingIndex *int   `json:"editingIndex"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	page, err := h.pages.AddOrUpdateBreak(c.Context(), pageID,
		composition.BreakInput{Title: body.Title, Text: body.Text}, body.EditingIndex)
	return h.respond(c, page, err)
}

// DeleteItem removes one content item by its stable id
func (h *BuilderHandler) DeleteItem(c *fiber.Ctx) error {
	pageID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid page ID"})
	}

	page, err := h.pages.DeleteContentItem(c.Context(), pageID, c.Params("itemId"))
	return h.respond(c, page, err)
}

// Reorder moves the item fromId to the position currently held by toId
func (h *BuilderHandler) Reorder(c *fiber.Ctx) error {
	pageID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid page ID"})
	}

	var body struct {
		FromID string `json:"fromId"`
		ToID   string `json:"toId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.FromID == "" || body.ToID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "fromId and toId are required"})
	}

	page, err := h.pages.ReorderContent(c.Context(), pageID, body.FromID, body.ToID)
	return h.respond(c, page, err)
}

// UpdateSlides replaces the slide selection of one project item
func (h *BuilderHandler) UpdateSlides(c *fiber.Ctx) error {
	pageID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid page ID"})
	}

	var body struct {
		SelectedSlides []string `json:"selectedSlides"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	page, err := h.pages.UpdateItemSlides(c.Context(), pageID, c.Params("itemId"), body.SelectedSlides)
	return h.respond(c, page, err)
}

// respond maps a builder mutation result to an HTTP response and, on success,
// invalidates the page's cached deck.
func (h *BuilderHandler) respond(c *fiber.Ctx, page *models.Page, err error) error {
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return c.Status(400).JSON(fiber.Map{"error": verr.Error(), "fields": verr.Fields})
		}
		switch err.Error() {
		case "page not found":
			return c.Status(404).JSON(fiber.Map{"error": "Page not found"})
		case "project not found":
			return c.Status(404).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	h.decks.InvalidateSlug(c.Context(), page.Slug)
	return c.JSON(page)
}
