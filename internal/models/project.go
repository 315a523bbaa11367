package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Slide count bounds for a project. The operators pre-compose each project
// into at most three wide boards, so the catalog enforces the same range.
const (
	MinProjectSlides = 1
	MaxProjectSlides = 3
)

// Project is a named set of ordered slide images plus optional links and taxonomy.
// Slide order is significant and independently editable.
type Project struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Slides           []string           `bson:"slides" json:"slides"`
	Type             string             `bson:"type,omitempty" json:"type,omitempty"`
	Industry         string             `bson:"industry,omitempty" json:"industry,omitempty"`
	LiveWebsiteLink  string             `bson:"liveWebsiteLink,omitempty" json:"liveWebsiteLink,omitempty"`
	LiveWebsiteLabel string             `bson:"liveWebsiteLabel,omitempty" json:"liveWebsiteLabel,omitempty"`
	SDWorkLink       string             `bson:"sdWorkLink,omitempty" json:"sdWorkLink,omitempty"`
	SDWorkLabel      string             `bson:"sdWorkLabel,omitempty" json:"sdWorkLabel,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProjectInput is the mutable part of a project as submitted by the admin UI.
type ProjectInput struct {
	Name             string   `json:"name"`
	Slides           []string `json:"slides"`
	Type             string   `json:"type"`
	Industry         string   `json:"industry"`
	LiveWebsiteLink  string   `json:"liveWebsiteLink"`
	LiveWebsiteLabel string   `json:"liveWebsiteLabel"`
	SDWorkLink       string   `json:"sdWorkLink"`
	SDWorkLabel      string   `json:"sdWorkLabel"`
}

// Validate checks required fields and the slide count bounds.
// Returns a ValidationError carrying per-field messages, or nil.
func (in *ProjectInput) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "Project name is required"
	}
	if len(in.Slides) < MinProjectSlides {
		fields["slides"] = "At least 1 image is required"
	} else if len(in.Slides) > MaxProjectSlides {
		fields["slides"] = "A project can have at most 3 slides"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Normalize trims free-text fields in place.
func (in *ProjectInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Industry = strings.TrimSpace(in.Industry)
	in.LiveWebsiteLink = strings.TrimSpace(in.LiveWebsiteLink)
	in.LiveWebsiteLabel = strings.TrimSpace(in.LiveWebsiteLabel)
	in.SDWorkLink = strings.TrimSpace(in.SDWorkLink)
	in.SDWorkLabel = strings.TrimSpace(in.SDWorkLabel)
}
