package models

import "testing"

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Real Estate All Projects!", "real-estate-all-projects"},
		{"  Spring 2025  Showcase ", "spring-2025-showcase"},
		{"Café & Bistro", "caf-bistro"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER CASE", "upper-case"},
		{"hy--phens  -- galore", "hy-phens-galore"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DeriveSlug(tt.name); got != tt.want {
			t.Errorf("DeriveSlug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValidSlug(t *testing.T) {
	valid := []string{"a", "spring-2025", "x9"}
	invalid := []string{"", "Has Caps", "with space", "tra!l"}

	for _, s := range valid {
		if !ValidSlug(s) {
			t.Errorf("expected %q to be a valid slug", s)
		}
	}
	for _, s := range invalid {
		if ValidSlug(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestPageInputValidate(t *testing.T) {
	valid := PageInput{
		Name: "Spring Showcase",
		Slug: "spring-showcase",
		Content: []ContentItem{
			{Type: ContentTypeProject, ProjectID: "abc123"},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	empty := PageInput{Name: "X", Slug: "x"}
	err := empty.Validate()
	if err == nil {
		t.Fatal("expected error for empty content")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Fields["content"] == "" {
		t.Error("expected a content field message")
	}

	badSlug := valid
	badSlug.Slug = "Not A Slug"
	if err := badSlug.Validate(); err == nil {
		t.Error("expected error for invalid slug")
	}

	noName := valid
	noName.Name = "   "
	if err := noName.Validate(); err == nil {
		t.Error("expected error for missing name")
	}

	breakNoTitle := valid
	breakNoTitle.Content = []ContentItem{{Type: ContentTypeSlideBreak}}
	if err := breakNoTitle.Validate(); err == nil {
		t.Error("expected error for untitled slide break")
	}
}

func TestStartSlideApplyDefaults(t *testing.T) {
	var s StartSlide
	s.ApplyDefaults()

	if s.VideoURL != DefaultStartSlideVideoURL {
		t.Errorf("video url not defaulted: %q", s.VideoURL)
	}
	if s.Title != DefaultStartSlideTitle {
		t.Errorf("title not defaulted: %q", s.Title)
	}
	if s.FontWeight != DefaultStartSlideFontWeight {
		t.Errorf("font weight not defaulted: %q", s.FontWeight)
	}
	if s.FontSize != DefaultStartSlideFontSize {
		t.Errorf("font size not defaulted: %q", s.FontSize)
	}

	custom := StartSlide{VideoURL: "https://example.com/v.m3u8", Title: "Hello", FontWeight: "700", FontSize: "6xl"}
	custom.ApplyDefaults()
	if custom.Title != "Hello" || custom.FontWeight != "700" || custom.FontSize != "6xl" {
		t.Errorf("custom settings overwritten: %+v", custom)
	}

	bogus := StartSlide{FontWeight: "123", FontSize: "xxl"}
	bogus.ApplyDefaults()
	if bogus.FontWeight != DefaultStartSlideFontWeight || bogus.FontSize != DefaultStartSlideFontSize {
		t.Errorf("out-of-range typography must fall back to defaults: %+v", bogus)
	}
}
