package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studiodeck/internal/database"
	"studiodeck/internal/models"
)

// ProjectService handles CRUD for catalog projects in MongoDB
type ProjectService struct {
	collection *mongo.Collection
}

// NewProjectService creates a new project service
func NewProjectService(mongodb *database.MongoDB) *ProjectService {
	return &ProjectService{
		collection: mongodb.Collection(database.CollectionProjects),
	}
}

// List returns all projects, newest first
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	cursor, err := s.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// GetByID returns a project by ID
func (s *ProjectService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project not found")
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// GetByHexID returns a project by its hex id string. An unparseable id is
// treated the same as a missing document: content items may carry dangling
// references and the caller skips whatever fails to resolve.
func (s *ProjectService) GetByHexID(ctx context.Context, hex string) (*models.Project, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, fmt.Errorf("project not found")
	}
	return s.GetByID(ctx, id)
}

// Create validates and inserts a new project
func (s *ProjectService) Create(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	project := models.Project{
		Name:             input.Name,
		Slides:           append([]string(nil), input.Slides...),
		Type:             input.Type,
		Industry:         input.Industry,
		LiveWebsiteLink:  input.LiveWebsiteLink,
		LiveWebsiteLabel: input.LiveWebsiteLabel,
		SDWorkLink:       input.SDWorkLink,
		SDWorkLabel:      input.SDWorkLabel,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	result, err := s.collection.InsertOne(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)
	return &project, nil
}

// Update validates and replaces the mutable fields of a project
func (s *ProjectService) Update(ctx context.Context, id primitive.ObjectID, input models.ProjectInput) error {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return err
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":             input.Name,
		"slides":           input.Slides,
		"type":             input.Type,
		"industry":         input.Industry,
		"liveWebsiteLink":  input.LiveWebsiteLink,
		"liveWebsiteLabel": input.LiveWebsiteLabel,
		"sdWorkLink":       input.SDWorkLink,
		"sdWorkLabel":      input.SDWorkLabel,
		"updatedAt":        time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("project not found")
	}
	return nil
}

// Delete removes a project by ID. References to it inside existing pages are
// left in place and skipped at render time.
func (s *ProjectService) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("project not found")
	}
	return nil
}
