package models

import "testing"

func TestValidationErrorDeterministicMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"slides": "At least 1 image is required",
		"name":   "Project name is required",
	}}

	want := "Project name is required; At least 1 image is required"
	for i := 0; i < 10; i++ {
		if got := err.Error(); got != want {
			t.Fatalf("Error() = %q, want %q", got, want)
		}
	}
}

func TestValidationErrorEmptyFields(t *testing.T) {
	err := &ValidationError{}
	if err.Error() != "validation failed" {
		t.Errorf("Error() = %q", err.Error())
	}
}
