package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default opening-slide settings applied when a page is created without them.
const (
	DefaultStartSlideVideoURL   = "https://customer-7ahfkoeo2pbpo29s.cloudflarestream.com/b28021ef74c9a19e977887d1517205ca/manifest/video.m3u8"
	DefaultStartSlideTitle      = "Portfolio"
	DefaultStartSlideFontWeight = "500"
	DefaultStartSlideFontSize   = "8xl"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

	slugStrip   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)

	allowedFontWeights = map[string]bool{"400": true, "500": true, "600": true, "700": true}
	allowedFontSizes   = map[string]bool{"6xl": true, "7xl": true, "8xl": true, "9xl": true}
)

// StartSlide holds the opening slide display settings for a page.
type StartSlide struct {
	VideoURL   string `bson:"videoUrl" json:"videoUrl"`
	Title      string `bson:"title" json:"title"`
	FontWeight string `bson:"fontWeight" json:"fontWeight"`
	FontSize   string `bson:"fontSize" json:"fontSize"`
}

// ApplyDefaults fills unset fields with the studio defaults.
func (s *StartSlide) ApplyDefaults() {
	if strings.TrimSpace(s.VideoURL) == "" {
		s.VideoURL = DefaultStartSlideVideoURL
	}
	if strings.TrimSpace(s.Title) == "" {
		s.Title = DefaultStartSlideTitle
	}
	if !allowedFontWeights[s.FontWeight] {
		s.FontWeight = DefaultStartSlideFontWeight
	}
	if !allowedFontSizes[s.FontSize] {
		s.FontSize = DefaultStartSlideFontSize
	}
}

// Page is a named, slugged, ordered composition of content items plus
// opening-slide display settings. Served publicly at its slug URL.
type Page struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Slug       string             `bson:"slug" json:"slug"`
	Content    []ContentItem      `bson:"content" json:"content"`
	StartSlide StartSlide         `bson:"startSlide" json:"startSlide"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PageInput is the mutable part of a page as submitted by the builder.
// An empty Slug on create triggers automatic derivation from Name; the slug
// is never re-derived after that.
type PageInput struct {
	Name       string        `json:"name"`
	Slug       string        `json:"slug"`
	Content    []ContentItem `json:"content"`
	StartSlide StartSlide    `json:"startSlide"`
}

// Validate checks the builder's save rules: required name, slug shape, at
// least one content item, and per-variant item fields.
func (in *PageInput) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "Page name is required"
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		fields["slug"] = "URL slug is required"
	} else if !slugPattern.MatchString(slug) {
		fields["slug"] = "Slug can only contain lowercase letters, numbers, and hyphens"
	}

	if len(in.Content) == 0 {
		fields["content"] = "At least one content item is required"
	}
	for _, item := range in.Content {
		switch item.Type {
		case ContentTypeProject:
			if item.ProjectID == "" {
				fields["content"] = "Project items must reference a project"
			}
		case ContentTypeSlideBreak:
			if strings.TrimSpace(item.Title) == "" {
				fields["content"] = "Slide break title is required"
			}
		default:
			fields["content"] = "Unknown content item type"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// DeriveSlug generates a URL slug from a page name: lowercase, trim, strip
// characters outside [a-z0-9\s-], collapse whitespace runs to single hyphens,
// collapse repeated hyphens. Applied only when a new page arrives without a
// slug; a persisted or operator-edited slug is never overwritten.
func DeriveSlug(name string) string {
	slug := strings.TrimSpace(strings.ToLower(name))
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	return slug
}

// ValidSlug reports whether s matches the public slug pattern.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
