package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studiodeck/internal/composition"
	"studiodeck/internal/database"
	"studiodeck/internal/models"
)

// PageService handles CRUD and builder operations for presentation pages
type PageService struct {
	collection *mongo.Collection
	projects   *ProjectService
}

// NewPageService creates a new page service
func NewPageService(mongodb *database.MongoDB, projects *ProjectService) *PageService {
	return &PageService{
		collection: mongodb.Collection(database.CollectionPages),
		projects:   projects,
	}
}

// List returns all pages, newest first
func (s *PageService) List(ctx context.Context) ([]models.Page, error) {
	cursor, err := s.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer cursor.Close(ctx)

	var pages []models.Page
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, fmt.Errorf("failed to decode pages: %w", err)
	}
	return pages, nil
}

// GetByID returns a page by ID
func (s *PageService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Page, error) {
	var page models.Page
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&page)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("page not found")
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &page, nil
}

// GetBySlug returns the page served at a public slug. Slug uniqueness is not
// enforced at write time; when duplicates exist the oldest page wins, which
// makes the first-match rule deterministic.
func (s *PageService) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var page models.Page
	err := s.collection.FindOne(ctx, bson.M{"slug": slug},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})).Decode(&page)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("page not found")
		}
		return nil, fmt.Errorf("failed to get page by slug: %w", err)
	}
	return &page, nil
}

// Create validates and inserts a new page. A missing slug is derived from the
// name; this is the only moment derivation happens. New pages start active.
func (s *PageService) Create(ctx context.Context, input models.PageInput) (*models.Page, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Slug == "" {
		input.Slug = models.DeriveSlug(input.Name)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if n, err := s.collection.CountDocuments(ctx, bson.M{"slug": input.Slug}); err == nil && n > 0 {
		log.Printf("⚠️  Duplicate slug %q: the oldest page keeps the public URL", input.Slug)
	}

	input.StartSlide.ApplyDefaults()

	now := time.Now()
	page := models.Page{
		Name:       input.Name,
		Slug:       input.Slug,
		Content:    composition.Reindex(ensureItemIDs(input.Content)),
		StartSlide: input.StartSlide,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result, err := s.collection.InsertOne(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.ID = result.InsertedID.(primitive.ObjectID)
	return &page, nil
}

// Update validates and replaces the mutable fields of a page. The slug is
// taken verbatim: it is never re-derived once a page exists.
func (s *PageService) Update(ctx context.Context, id primitive.ObjectID, input models.PageInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.TrimSpace(input.Slug)
	if err := input.Validate(); err != nil {
		return err
	}

	input.StartSlide.ApplyDefaults()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":       input.Name,
		"slug":       input.Slug,
		"content":    composition.Reindex(ensureItemIDs(input.Content)),
		"startSlide": input.StartSlide,
		"updatedAt":  time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("page not found")
	}
	return nil
}

// Delete removes a page by ID
func (s *PageService) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("page not found")
	}
	return nil
}

// AddProjectItem appends a project reference to a page's content. A project
// already present in the content list is rejected, mirroring the selector's
// exclusion set in the builder UI.
func (s *PageService) AddProjectItem(ctx context.Context, pageID primitive.ObjectID, projectHexID string) (*models.Page, error) {
	page, err := s.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if composition.ContainsProject(page.Content, projectHexID) {
		return nil, &models.ValidationError{Fields: map[string]string{"projectId": "Project is already part of this page"}}
	}

	project, err := s.projects.GetByHexID(ctx, projectHexID)
	if err != nil {
		return nil, err
	}

	page.Content = composition.AddProject(page.Content, project)
	return page, s.saveContent(ctx, page)
}

// AddOrUpdateBreak appends a slide break, or edits the one at editingIndex.
func (s *PageService) AddOrUpdateBreak(ctx context.Context, pageID primitive.ObjectID, data composition.BreakInput, editingIndex *int) (*models.Page, error) {
	page, err := s.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}

	content, err := composition.AddOrUpdateSlideBreak(page.Content, data, editingIndex)
	if err != nil {
		return nil, err
	}
	page.Content = content
	return page, s.saveContent(ctx, page)
}

// DeleteContentItem removes one content item by its stable id.
func (s *PageService) DeleteContentItem(ctx context.Context, pageID primitive.ObjectID, itemID string) (*models.Page, error) {
	page, err := s.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	page.Content = composition.DeleteItem(page.Content, itemID)
	return page, s.saveContent(ctx, page)
}

// ReorderContent moves the item fromID to the position of toID.
func (s *PageService) ReorderContent(ctx context.Context, pageID primitive.ObjectID, fromID, toID string) (*models.Page, error) {
	page, err := s.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	page.Content = composition.ReorderItems(page.Content, fromID, toID)
	return page, s.saveContent(ctx, page)
}

// UpdateItemSlides replaces the slide selection of one project item.
func (s *PageService) UpdateItemSlides(ctx context.Context, pageID primitive.ObjectID, itemID string, selected []string) (*models.Page, error) {
	page, err := s.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	page.Content = composition.UpdateSelectedSlides(page.Content, itemID, selected)
	return page, s.saveContent(ctx, page)
}

// saveContent persists a page's content list after a builder mutation.
func (s *PageService) saveContent(ctx context.Context, page *models.Page) error {
	page.UpdatedAt = time.Now()
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": page.ID}, bson.M{"$set": bson.M{
		"content":   page.Content,
		"updatedAt": page.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to save page content: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("page not found")
	}
	return nil
}

// ensureItemIDs assigns stable synthetic ids to items that arrived without
// one. Ids are never recomputed for items that already have them.
func ensureItemIDs(items []models.ContentItem) []models.ContentItem {
	for i := range items {
		if items[i].ID != "" {
			continue
		}
		switch items[i].Type {
		case models.ContentTypeSlideBreak:
			items[i].ID = fmt.Sprintf("break-%s", uuid.NewString())
		default:
			items[i].ID = fmt.Sprintf("project-%s", uuid.NewString())
		}
	}
	return items
}
