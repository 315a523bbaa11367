// Package composition maintains the ordered, heterogeneous content list of a
// page under insert, delete, reorder and edit operations. All operations keep
// the dense-order invariant: every item's Order equals its array position.
//
// Operations are value-semantics: they take a content slice and return the
// resulting slice, leaving the input untouched on rejection.
package composition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"studiodeck/internal/models"
)

// BreakInput is the editable body of a slide break.
type BreakInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// NewProjectItem builds a project content item referencing project, with the
// selection defaulted to the project's full current slide list.
func NewProjectItem(project *models.Project) models.ContentItem {
	return models.ContentItem{
		ID:             fmt.Sprintf("project-%s", uuid.NewString()),
		Type:           models.ContentTypeProject,
		ProjectID:      project.ID.Hex(),
		SelectedSlides: append([]string(nil), project.Slides...),
	}
}

// AddProject appends a project item to the content list. No-op when project
// is nil. Duplicate exclusion is the caller's concern, not this function's.
func AddProject(items []models.ContentItem, project *models.Project) []models.ContentItem {
	if project == nil {
		return items
	}
	item := NewProjectItem(project)
	item.Order = len(items)
	return append(items, item)
}

// AddOrUpdateSlideBreak appends a new slide break, or, when editingIndex is
// non-nil, updates the title and text of the item at that index in place.
// An empty title is rejected with a field-level validation error and the
// input list is returned unchanged.
func AddOrUpdateSlideBreak(items []models.ContentItem, data BreakInput, editingIndex *int) ([]models.ContentItem, error) {
	if strings.TrimSpace(data.Title) == "" {
		return items, &models.ValidationError{Fields: map[string]string{"title": "Title is required"}}
	}

	if editingIndex != nil {
		idx := *editingIndex
		if idx < 0 || idx >= len(items) {
			return items, &models.ValidationError{Fields: map[string]string{"editingIndex": "No content item at that position"}}
		}
		if !items[idx].IsSlideBreak() {
			return items, &models.ValidationError{Fields: map[string]string{"editingIndex": "Item at that position is not a slide break"}}
		}
		out := append([]models.ContentItem(nil), items...)
		out[idx].Title = data.Title
		out[idx].Text = data.Text
		return out, nil
	}

	item := models.ContentItem{
		ID:    fmt.Sprintf("break-%s", uuid.NewString()),
		Type:  models.ContentTypeSlideBreak,
		Title: data.Title,
		Text:  data.Text,
		Order: len(items),
	}
	return append(append([]models.ContentItem(nil), items...), item), nil
}

// DeleteItem removes the item with the matching id and re-derives Order for
// the remaining items. No-op when the id is not found.
func DeleteItem(items []models.ContentItem, id string) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.ID == id {
			continue
		}
		out = append(out, item)
	}
	if len(out) == len(items) {
		return items
	}
	return Reindex(out)
}

// ReorderItems moves the item identified by fromID to the position currently
// occupied by toID, then re-derives Order for every item. Identity is the
// stable item id; when an item carries no id its array position serves as a
// degraded fallback key. No-op when either key is unknown or the keys match.
func ReorderItems(items []models.ContentItem, fromID, toID string) []models.ContentItem {
	if fromID == toID {
		return items
	}
	oldIndex := indexByKey(items, fromID)
	newIndex := indexByKey(items, toID)
	if oldIndex == -1 || newIndex == -1 {
		return items
	}
	return Reindex(arrayMove(items, oldIndex, newIndex))
}

// UpdateSelectedSlides replaces the slide selection on the named project item
// wholesale. No-op when itemID does not resolve to a project item.
func UpdateSelectedSlides(items []models.ContentItem, itemID string, selected []string) []models.ContentItem {
	for i, item := range items {
		if item.ID == itemID && item.IsProject() {
			out := append([]models.ContentItem(nil), items...)
			out[i].SelectedSlides = append([]string(nil), selected...)
			return out
		}
	}
	return items
}

// Reindex re-derives every item's Order from its array position.
func Reindex(items []models.ContentItem) []models.ContentItem {
	for i := range items {
		items[i].Order = i
	}
	return items
}

// ProjectIDs returns the project ids already referenced by the content list,
// used by callers as the selector exclusion set.
func ProjectIDs(items []models.ContentItem) []string {
	var ids []string
	for _, item := range items {
		if item.IsProject() {
			ids = append(ids, item.ProjectID)
		}
	}
	return ids
}

// ContainsProject reports whether the content list already references the
// given project.
func ContainsProject(items []models.ContentItem, projectID string) bool {
	for _, item := range items {
		if item.IsProject() && item.ProjectID == projectID {
			return true
		}
	}
	return false
}

// indexByKey resolves an item key to an array index. The key is the item id
// when present, otherwise the item's position rendered as a string.
func indexByKey(items []models.ContentItem, key string) int {
	for i, item := range items {
		k := item.ID
		if k == "" {
			k = strconv.Itoa(i)
		}
		if k == key {
			return i
		}
	}
	return -1
}

// arrayMove removes the element at from and inserts it at to, preserving the
// relative order of everything else.
func arrayMove(items []models.ContentItem, from, to int) []models.ContentItem {
	out := append([]models.ContentItem(nil), items...)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]models.ContentItem{moved}, out[to:]...)...)
	return out
}
