package sections

import (
	"strings"

	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/textnorm"
)

// State accumulates sections while a document region is walked in order.
// The zero value is not ready; use NewState.
type State struct {
	title    string
	content  strings.Builder
	sections []domain.Section
	finished bool
}

// NewState opens the implicit leading section.
func NewState() *State {
	return &State{title: IntroTitle}
}

// Heading closes the open section and opens one titled text.
func (s *State) Heading(text string) {
	s.flush()
	s.title = textnorm.Normalize(text)
}

// Text appends a text node to the open section.
func (s *State) Text(text string) {
	if t := strings.TrimSpace(text); t != "" {
		s.content.WriteString(t)
		s.content.WriteByte(' ')
	}
}

// Finish closes the open section and returns every non-empty section in
// document order. Calling Finish again returns the same result.
func (s *State) Finish() []domain.Section {
	if !s.finished {
		s.flush()
		s.finished = true
	}
	return s.sections
}

func (s *State) flush() {
	content := textnorm.Normalize(s.content.String())
	s.content.Reset()
	if content == "" {
		return
	}
	s.sections = append(s.sections, domain.Section{Title: s.title, Content: content})
}
