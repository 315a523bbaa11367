package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"studiodeck/internal/models"
	"studiodeck/internal/storage"
)

// maxSlideSize caps a single uploaded slide image at 20MB
const maxSlideSize = 20 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadHandler handles slide image uploads to blob storage
type UploadHandler struct {
	blobs *storage.BlobStore
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(blobs *storage.BlobStore) *UploadHandler {
	return &UploadHandler{blobs: blobs}
}

// Slides accepts up to three slide images as multipart form files. The
// optional projectId form field targets an existing project; without it a
// temp- id is minted so images can be staged before the project record exists.
// The optional startIndex offsets key numbering when appending to a project
// that already has slides.
func (h *UploadHandler) Slides(c *fiber.Ctx) error {
	if h.blobs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Blob storage is not configured",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid multipart form"})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "no files provided"})
	}

	startIndex := 0
	if raw := c.FormValue("startIndex"); raw != "" {
		startIndex, err = strconv.Atoi(raw)
		if err != nil || startIndex < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "invalid startIndex"})
		}
	}
	if startIndex+len(files) > models.MaxProjectSlides {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("a project holds at most %d slides", models.MaxProjectSlides),
		})
	}

	projectID := strings.TrimSpace(c.FormValue("projectId"))
	if projectID == "" {
		projectID = storage.TempProjectID()
	}

	urls := make([]string, 0, len(files))
	for i, file := range files {
		if file.Size > maxSlideSize {
			return c.Status(400).JSON(fiber.Map{
				"error": fmt.Sprintf("%s exceeds the 20MB limit", file.Filename),
			})
		}

		contentType := file.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			return c.Status(400).JSON(fiber.Map{
				"error": fmt.Sprintf("%s is not a supported image type", file.Filename),
			})
		}

		data, err := readUpload(file)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to read uploaded file"})
		}

		key := storage.SlideKey(projectID, startIndex+i, file.Filename)
		url, err := h.blobs.Upload(c.Context(), key, data, contentType)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		urls = append(urls, url)
	}

	return c.Status(201).JSON(fiber.Map{
		"projectId": projectID,
		"urls":      urls,
	})
}

// Delete removes one stored object by key
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	if h.blobs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Blob storage is not configured",
		})
	}

	var body struct {
		Path string `json:"path"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.Path == "" {
		return c.Status(400).JSON(fiber.Map{"error": "path is required"})
	}

	if err := h.blobs.Delete(c.Context(), body.Path); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
