package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studiodeck/internal/models"
	"studiodeck/internal/services"
	"studiodeck/internal/storage"
)

// ProjectHandler handles project catalog CRUD
type ProjectHandler struct {
	projects *services.ProjectService
	blobs    *storage.BlobStore
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *services.ProjectService, blobs *storage.BlobStore) *ProjectHandler {
	return &ProjectHandler{projects: projects, blobs: blobs}
}

// List returns all projects, newest first
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.projects.List(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"projects": projects})
}

// Get returns a single project
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	project, err := h.projects.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Project not found"})
	}
	return c.JSON(project)
}

// Create adds a project to the catalog
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var input models.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	project, err := h.projects.Create(c.Context(), input)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return c.Status(400).JSON(fiber.Map{"error": verr.Error(), "fields": verr.Fields})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(project)
}

// Update replaces a project's editable fields
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	var input models.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.projects.Update(c.Context(), id, input); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return c.Status(400).JSON(fiber.Map{"error": verr.Error(), "fields": verr.Fields})
		}
		if err.Error() == "project not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	project, err := h.projects.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(project)
}

// Delete removes a project and its stored slide images
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	if err := h.projects.Delete(c.Context(), id); err != nil {
		if err.Error() == "project not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	// Blob cleanup is best effort; the catalog record is already gone.
	if h.blobs != nil {
		if err := h.blobs.DeletePrefix(c.Context(), storage.ProjectPrefix(id.Hex())); err != nil {
			log.Printf("⚠️ Failed to delete slide images for project %s: %v", id.Hex(), err)
		}
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
