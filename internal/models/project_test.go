package models

import "testing"

func TestProjectInputValidate(t *testing.T) {
	valid := ProjectInput{Name: "Alpha", Slides: []string{"a.jpg"}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	three := ProjectInput{Name: "Alpha", Slides: []string{"a.jpg", "b.jpg", "c.jpg"}}
	if err := three.Validate(); err != nil {
		t.Fatalf("three slides must be allowed, got %v", err)
	}

	noName := ProjectInput{Slides: []string{"a.jpg"}}
	err := noName.Validate()
	if err == nil {
		t.Fatal("expected error for missing name")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Fields["name"] == "" {
		t.Error("expected a name field message")
	}

	noSlides := ProjectInput{Name: "Alpha"}
	if err := noSlides.Validate(); err == nil {
		t.Error("expected error for zero slides")
	}

	four := ProjectInput{Name: "Alpha", Slides: []string{"a", "b", "c", "d"}}
	if err := four.Validate(); err == nil {
		t.Error("expected error for four slides")
	}
}

func TestProjectInputNormalize(t *testing.T) {
	in := ProjectInput{
		Name:            "  Alpha  ",
		Type:            " Web ",
		LiveWebsiteLink: " https://example.com ",
	}
	in.Normalize()
	if in.Name != "Alpha" || in.Type != "Web" || in.LiveWebsiteLink != "https://example.com" {
		t.Errorf("fields not trimmed: %+v", in)
	}
}
