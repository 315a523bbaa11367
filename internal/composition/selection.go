package composition

import "studiodeck/internal/models"

// SlideSelection lets the operator toggle visibility of a project's slides
// and reorder the selected subset. The selected sequence has its own order;
// hidden slides keep the project's original order and none of their own.
type SlideSelection struct {
	all      []string
	selected []string
}

// NewSlideSelection initializes the manager from a project's full slide list
// and a content item's current selection. An empty selection means "not yet
// customized" and expands to all of the project's slides in project order.
func NewSlideSelection(project *models.Project, selected []string) *SlideSelection {
	s := &SlideSelection{
		all: append([]string(nil), project.Slides...),
	}
	if len(selected) > 0 {
		s.selected = append([]string(nil), selected...)
	} else {
		s.selected = append([]string(nil), project.Slides...)
	}
	return s
}

// Toggle flips the visibility of one slide. A newly shown slide goes to the
// end of the selected sequence, not back to its original position.
func (s *SlideSelection) Toggle(url string) {
	for i, u := range s.selected {
		if u == url {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	s.selected = append(s.selected, url)
}

// ReorderSelected moves fromURL to the position of toURL within the selected
// sequence. No-op when either url is not selected or the urls match.
func (s *SlideSelection) ReorderSelected(fromURL, toURL string) {
	if fromURL == toURL {
		return
	}
	from, to := -1, -1
	for i, u := range s.selected {
		if u == fromURL {
			from = i
		}
		if u == toURL {
			to = i
		}
	}
	if from == -1 || to == -1 {
		return
	}
	moved := s.selected[from]
	s.selected = append(s.selected[:from], s.selected[from+1:]...)
	s.selected = append(s.selected[:to], append([]string{moved}, s.selected[to:]...)...)
}

// Remove drops a slide from both the full list and the selection.
func (s *SlideSelection) Remove(url string) {
	s.all = without(s.all, url)
	s.selected = without(s.selected, url)
}

// SelectAll marks every slide visible, in project order.
func (s *SlideSelection) SelectAll() {
	s.selected = append([]string(nil), s.all...)
}

// DeselectAll hides every slide.
func (s *SlideSelection) DeselectAll() {
	s.selected = nil
}

// Selected returns the visible slides in selection order.
func (s *SlideSelection) Selected() []string {
	return append([]string(nil), s.selected...)
}

// Hidden returns the invisible slides in original project order.
func (s *SlideSelection) Hidden() []string {
	var hidden []string
	for _, u := range s.all {
		if !contains(s.selected, u) {
			hidden = append(hidden, u)
		}
	}
	return hidden
}

// Save emits the current selected sequence verbatim as the item's new
// selectedSlides value.
func (s *SlideSelection) Save() []string {
	return append([]string(nil), s.selected...)
}

func contains(urls []string, url string) bool {
	for _, u := range urls {
		if u == url {
			return true
		}
	}
	return false
}

func without(urls []string, url string) []string {
	out := urls[:0]
	for _, u := range urls {
		if u != url {
			out = append(out, u)
		}
	}
	return out
}
