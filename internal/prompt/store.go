// Package prompt manages named review templates. A template shapes the
// focus of a review: which categories it emphasizes and the preamble
// recorded with the stored review.
package prompt

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultTemplate is the template used when none is requested or the
// requested name is unknown
const DefaultTemplate = "comprehensive"

// Template describes a named review focus
type Template struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories,omitempty"`
	Preamble    string   `json:"preamble"`
	BuiltIn     bool     `json:"built_in"`
}

// Store holds templates by name. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewStore creates a store seeded with the built-in templates
func NewStore() *Store {
	s := &Store{templates: make(map[string]Template)}
	for _, t := range builtinTemplates() {
		s.templates[t.Name] = t
	}
	return s
}

// Get retrieves a template by exact name
func (s *Store) Get(name string) (Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("template not found: %s", name)
	}
	return t, nil
}

// Resolve returns the named template, falling back to the default when
// the name is empty or unknown
func (s *Store) Resolve(name string) Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.templates[name]; ok {
		return t
	}
	return s.templates[DefaultTemplate]
}

// Add registers a new template. It fails if the name is already taken.
func (s *Store) Add(t Template) error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[t.Name]; ok {
		return fmt.Errorf("template already exists: %s", t.Name)
	}
	s.templates[t.Name] = t
	return nil
}

// Update replaces an existing template. Built-in templates cannot be
// modified.
func (s *Store) Update(t Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.templates[t.Name]
	if !ok {
		return fmt.Errorf("template not found: %s", t.Name)
	}
	if existing.BuiltIn {
		return fmt.Errorf("cannot modify built-in template: %s", t.Name)
	}
	s.templates[t.Name] = t
	return nil
}

// Remove deletes a template by name. Built-in templates cannot be
// removed.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	if existing.BuiltIn {
		return fmt.Errorf("cannot remove built-in template: %s", name)
	}
	delete(s.templates, name)
	return nil
}

// List returns all templates sorted by name
func (s *Store) List() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func builtinTemplates() []Template {
	return []Template{
		{
			Name:        "comprehensive",
			Description: "Full review across every detector category",
			Preamble: "Review the following changes for code quality, security, " +
				"best practices, logic errors, documentation and performance.",
			BuiltIn: true,
		},
		{
			Name:        "security",
			Description: "Focus on credentials and unsafe patterns",
			Categories:  []string{"security", "logic"},
			Preamble: "Review the following changes with a focus on security: " +
				"hardcoded credentials, unchecked input and unsafe comparisons.",
			BuiltIn: true,
		},
		{
			Name:        "performance",
			Description: "Focus on loops, I/O and allocation patterns",
			Categories:  []string{"performance"},
			Preamble: "Review the following changes with a focus on performance: " +
				"loop bounds, synchronous I/O and repeated expensive work.",
			BuiltIn: true,
		},
		{
			Name:        "quick",
			Description: "Fast pass over style and obvious mistakes",
			Categories:  []string{"quality", "best_practice"},
			Preamble: "Do a quick pass over the following changes for style " +
				"issues and obvious mistakes.",
			BuiltIn: true,
		},
	}
}
