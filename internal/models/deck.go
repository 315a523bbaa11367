package models

// RenderSlideKind tags the slide variants of a flattened deck.
type RenderSlideKind string

const (
	RenderSlideOpening    RenderSlideKind = "opening"
	RenderSlideProject    RenderSlideKind = "project"
	RenderSlideSlideBreak RenderSlideKind = "slideBreak"
	RenderSlideClosing    RenderSlideKind = "closing"
)

// RenderSlide is one fully-resolved, displayable slide in the flattened deck.
// It is computed at request time and never persisted.
type RenderSlide struct {
	Kind RenderSlideKind `json:"kind"`

	// project slides
	ImageURL         string `json:"imageUrl,omitempty"`
	ProjectName      string `json:"projectName,omitempty"`
	LiveWebsiteLink  string `json:"liveWebsiteLink,omitempty"`
	LiveWebsiteLabel string `json:"liveWebsiteLabel,omitempty"`
	SDWorkLink       string `json:"sdWorkLink,omitempty"`
	SDWorkLabel      string `json:"sdWorkLabel,omitempty"`

	// slide breaks
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`

	// opening slide settings, set only on the opening bookend
	StartSlide *StartSlide `json:"startSlide,omitempty"`
}

// Deck is the public payload for a resolved presentation.
type Deck struct {
	Slug   string        `json:"slug"`
	Name   string        `json:"name"`
	Slides []RenderSlide `json:"slides"`
}
