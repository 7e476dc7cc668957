// Package projects holds the static project records shown in the showcase
// carousel and the loaders that read them from disk.
package projects

import (
	"errors"
	"fmt"
	"strings"
)

// DemoUnavailable marks a project that has no live demo.
const DemoUnavailable = "N/A"

// Entry is one project record. Entries are immutable once loaded.
type Entry struct {
	ID           int      `yaml:"id" toml:"id" json:"id"`
	Title        string   `yaml:"title" toml:"title" json:"title"`
	Description  string   `yaml:"description" toml:"description" json:"description"`
	Image        string   `yaml:"image" toml:"image" json:"image"`
	Technologies []string `yaml:"technologies" toml:"technologies" json:"technologies"`
	DemoLink     string   `yaml:"demo_link" toml:"demo_link" json:"demo_link"`
	CodeLink     string   `yaml:"code_link" toml:"code_link" json:"code_link"`
}

// HasDemo reports whether the entry links to a live demo.
func (e Entry) HasDemo() bool {
	link := strings.TrimSpace(e.DemoLink)
	return link != "" && link != DemoUnavailable
}

// ErrNoEntries is returned when a project list is empty.
var ErrNoEntries = errors.New("projects: no entries")

// Validate checks that a list can back a carousel: it must be non-empty and
// every entry needs a unique positive id, a title and a code link.
func Validate(entries []Entry) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	seen := make(map[int]int, len(entries))
	for i, e := range entries {
		if e.ID <= 0 {
			return fmt.Errorf("projects: entry %d: id must be positive, got %d", i, e.ID)
		}
		if prev, ok := seen[e.ID]; ok {
			return fmt.Errorf("projects: entry %d: duplicate id %d (first used by entry %d)", i, e.ID, prev)
		}
		seen[e.ID] = i
		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("projects: entry %d (id %d): missing title", i, e.ID)
		}
		if strings.TrimSpace(e.CodeLink) == "" {
			return fmt.Errorf("projects: entry %d (id %d): missing code link", i, e.ID)
		}
	}
	return nil
}
