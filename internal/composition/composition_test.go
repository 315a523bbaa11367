package composition

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"studiodeck/internal/models"
)

func testProject(name string, slides ...string) *models.Project {
	return &models.Project{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Slides: slides,
	}
}

func assertDenseOrder(t *testing.T, items []models.ContentItem) {
	t.Helper()
	for i, item := range items {
		if item.Order != i {
			t.Fatalf("item %d has order %d, want %d", i, item.Order, i)
		}
	}
}

func itemIDs(items []models.ContentItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestAddProjectAssignsIDAndSelection(t *testing.T) {
	project := testProject("Alpha", "a.jpg", "b.jpg", "c.jpg")

	items := AddProject(nil, project)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if !strings.HasPrefix(item.ID, "project-") {
		t.Errorf("expected project- id prefix, got %q", item.ID)
	}
	if item.ProjectID != project.ID.Hex() {
		t.Errorf("expected project reference %s, got %s", project.ID.Hex(), item.ProjectID)
	}
	if len(item.SelectedSlides) != 3 {
		t.Errorf("expected full slide selection, got %v", item.SelectedSlides)
	}
	if item.Order != 0 {
		t.Errorf("expected order 0, got %d", item.Order)
	}

	// selection must be a copy, not an alias of the project's slice
	item.SelectedSlides[0] = "mutated"
	if project.Slides[0] != "a.jpg" {
		t.Error("selection aliases the project slide list")
	}
}

func TestAddProjectNilIsNoop(t *testing.T) {
	items := AddProject(nil, nil)
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestAddSlideBreakRequiresTitle(t *testing.T) {
	items := AddProject(nil, testProject("Alpha", "a.jpg"))

	out, err := AddOrUpdateSlideBreak(items, BreakInput{Title: "   ", Text: "body"}, nil)
	if err == nil {
		t.Fatal("expected validation error for empty title")
	}
	verr, ok := err.(*models.ValidationError)
	if !ok {
		t.Fatalf("expected *models.ValidationError, got %T", err)
	}
	if verr.Fields["title"] == "" {
		t.Error("expected a field-level message for title")
	}
	if len(out) != len(items) {
		t.Error("rejected edit must leave the list unchanged")
	}
}

func TestAddSlideBreakAppends(t *testing.T) {
	items := AddProject(nil, testProject("Alpha", "a.jpg"))

	out, err := AddOrUpdateSlideBreak(items, BreakInput{Title: "Chapter Two", Text: "intro"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	brk := out[1]
	if !strings.HasPrefix(brk.ID, "break-") {
		t.Errorf("expected break- id prefix, got %q", brk.ID)
	}
	if brk.Title != "Chapter Two" || brk.Text != "intro" {
		t.Errorf("unexpected break body: %+v", brk)
	}
	assertDenseOrder(t, out)
}

func TestEditSlideBreakInPlace(t *testing.T) {
	items, err := AddOrUpdateSlideBreak(nil, BreakInput{Title: "Old", Text: "old"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	originalID := items[0].ID

	idx := 0
	out, err := AddOrUpdateSlideBreak(items, BreakInput{Title: "New", Text: "new"}, &idx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("edit must not grow the list, got %d items", len(out))
	}
	if out[0].ID != originalID {
		t.Error("edit must preserve the item id")
	}
	if out[0].Title != "New" || out[0].Text != "new" {
		t.Errorf("edit did not apply: %+v", out[0])
	}
}

func TestEditSlideBreakOutOfRange(t *testing.T) {
	items, _ := AddOrUpdateSlideBreak(nil, BreakInput{Title: "Only"}, nil)

	idx := 5
	_, err := AddOrUpdateSlideBreak(items, BreakInput{Title: "New"}, &idx)
	if err == nil {
		t.Fatal("expected error for out-of-range editingIndex")
	}
}

func TestEditSlideBreakRejectsProjectTarget(t *testing.T) {
	items := AddProject(nil, testProject("Alpha", "a.jpg"))
	items, _ = AddOrUpdateSlideBreak(items, BreakInput{Title: "Break"}, nil)

	idx := 0
	out, err := AddOrUpdateSlideBreak(items, BreakInput{Title: "Grafted", Text: "oops"}, &idx)
	if err == nil {
		t.Fatal("expected error when editingIndex points at a project item")
	}
	verr, ok := err.(*models.ValidationError)
	if !ok {
		t.Fatalf("expected *models.ValidationError, got %T", err)
	}
	if verr.Fields["editingIndex"] == "" {
		t.Error("expected a field-level message for editingIndex")
	}
	if out[0].Title != "" || out[0].Text != "" {
		t.Errorf("project item must stay untouched: %+v", out[0])
	}
}

func TestDeleteItemReindexes(t *testing.T) {
	items := AddProject(nil, testProject("Alpha", "a.jpg"))
	items = AddProject(items, testProject("Beta", "b.jpg"))
	items, _ = AddOrUpdateSlideBreak(items, BreakInput{Title: "Break"}, nil)

	out := DeleteItem(items, items[1].ID)

	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	assertDenseOrder(t, out)
	if out[0].ID != items[0].ID || out[1].ID != items[2].ID {
		t.Error("wrong items survived the delete")
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	items := AddProject(nil, testProject("Alpha", "a.jpg"))
	out := DeleteItem(items, "break-missing")
	if len(out) != 1 {
		t.Fatalf("expected untouched list, got %d items", len(out))
	}
}

func TestReorderMovesItem(t *testing.T) {
	items := AddProject(nil, testProject("Alpha", "a.jpg"))
	items = AddProject(items, testProject("Beta", "b.jpg"))
	items = AddProject(items, testProject("Gamma", "c.jpg"))
	a, b, g := items[0].ID, items[1].ID, items[2].ID

	// move first to last
	out := ReorderItems(items, a, g)
	got := itemIDs(out)
	want := []string{b, g, a}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after forward move got %v, want %v", got, want)
		}
	}
	assertDenseOrder(t, out)

	// move it straight back
	out = ReorderItems(out, a, b)
	got = itemIDs(out)
	want = []string{a, b, g}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after backward move got %v, want %v", got, want)
		}
	}
	assertDenseOrder(t, out)
}

func TestReorderUnknownKeyIsNoop(t *testing.T) {
	items := AddProject(nil, testProject("Alpha", "a.jpg"))
	items = AddProject(items, testProject("Beta", "b.jpg"))

	out := ReorderItems(items, items[0].ID, "project-missing")
	if out[0].ID != items[0].ID || out[1].ID != items[1].ID {
		t.Error("unknown target key must leave the order unchanged")
	}
}

func TestReorderPositionalFallback(t *testing.T) {
	// legacy items persisted before stable ids existed
	items := []models.ContentItem{
		{Type: models.ContentTypeSlideBreak, Title: "One", Order: 0},
		{Type: models.ContentTypeSlideBreak, Title: "Two", Order: 1},
		{Type: models.ContentTypeSlideBreak, Title: "Three", Order: 2},
	}

	out := ReorderItems(items, "2", "0")
	if out[0].Title != "Three" || out[1].Title != "One" || out[2].Title != "Two" {
		t.Fatalf("positional reorder failed: %v", itemIDs(out))
	}
	assertDenseOrder(t, out)
}

func TestUpdateSelectedSlides(t *testing.T) {
	project := testProject("Alpha", "a.jpg", "b.jpg", "c.jpg")
	items := AddProject(nil, project)

	out := UpdateSelectedSlides(items, items[0].ID, []string{"c.jpg"})
	if len(out[0].SelectedSlides) != 1 || out[0].SelectedSlides[0] != "c.jpg" {
		t.Fatalf("selection not replaced: %v", out[0].SelectedSlides)
	}

	// unknown item id is a no-op
	out = UpdateSelectedSlides(items, "project-missing", []string{"a.jpg"})
	if len(out[0].SelectedSlides) != 3 {
		t.Error("unknown item id must leave selections unchanged")
	}
}

func TestUpdateSelectedSlidesIgnoresBreaks(t *testing.T) {
	items, _ := AddOrUpdateSlideBreak(nil, BreakInput{Title: "Break"}, nil)
	out := UpdateSelectedSlides(items, items[0].ID, []string{"a.jpg"})
	if len(out[0].SelectedSlides) != 0 {
		t.Error("slide breaks must not accept slide selections")
	}
}

func TestDenseOrderSurvivesOperationSequence(t *testing.T) {
	items := AddProject(nil, testProject("Alpha", "a.jpg"))
	items, _ = AddOrUpdateSlideBreak(items, BreakInput{Title: "Break"}, nil)
	items = AddProject(items, testProject("Beta", "b.jpg"))
	items = ReorderItems(items, items[2].ID, items[0].ID)
	items = DeleteItem(items, items[1].ID)
	items = AddProject(items, testProject("Gamma", "c.jpg"))

	assertDenseOrder(t, items)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
}

func TestContainsProject(t *testing.T) {
	project := testProject("Alpha", "a.jpg")
	items := AddProject(nil, project)

	if !ContainsProject(items, project.ID.Hex()) {
		t.Error("expected project to be found")
	}
	if ContainsProject(items, primitive.NewObjectID().Hex()) {
		t.Error("unexpected match for unknown project")
	}
}

func TestProjectIDs(t *testing.T) {
	alpha := testProject("Alpha", "a.jpg")
	beta := testProject("Beta", "b.jpg")
	items := AddProject(nil, alpha)
	items, _ = AddOrUpdateSlideBreak(items, BreakInput{Title: "Break"}, nil)
	items = AddProject(items, beta)

	ids := ProjectIDs(items)
	if len(ids) != 2 || ids[0] != alpha.ID.Hex() || ids[1] != beta.ID.Hex() {
		t.Fatalf("unexpected exclusion set: %v", ids)
	}
}
