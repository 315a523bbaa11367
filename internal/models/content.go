package models

// ContentItemType tags the two content variants a page can hold.
type ContentItemType string

const (
	ContentTypeProject    ContentItemType = "project"
	ContentTypeSlideBreak ContentItemType = "slideBreak"
)

// ContentItem is one entry in a page's ordered content list: either a project
// reference carrying its own slide selection, or a text-only slide break.
//
// Order is always the dense 0-based array position and is re-derived after
// every mutation. ID is a stable synthetic identifier assigned at creation
// time and used as the reorder key; it is never recomputed from position.
type ContentItem struct {
	ID    string          `bson:"id" json:"id"`
	Type  ContentItemType `bson:"type" json:"type"`
	Order int             `bson:"order" json:"order"`

	// project variant. ProjectID references a catalog project by hex id.
	// SelectedSlides is a positionally-ordered subset snapshot of the
	// project's slides; empty means "not customized", which falls back to
	// the project's live slides at render time.
	ProjectID      string   `bson:"projectId,omitempty" json:"projectId,omitempty"`
	SelectedSlides []string `bson:"selectedSlides,omitempty" json:"selectedSlides,omitempty"`

	// slideBreak variant
	Title string `bson:"title,omitempty" json:"title,omitempty"`
	Text  string `bson:"text,omitempty" json:"text,omitempty"`
}

// IsProject reports whether the item is a project reference.
func (ci *ContentItem) IsProject() bool {
	return ci.Type == ContentTypeProject
}

// IsSlideBreak reports whether the item is a text interstitial.
func (ci *ContentItem) IsSlideBreak() bool {
	return ci.Type == ContentTypeSlideBreak
}
