package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/projects"
)

// showcase holds the live project list and builds a carousel over it for
// each visitor. The list can be swapped at runtime.
type showcase struct {
	interval time.Duration
	log      *slog.Logger

	mu      sync.RWMutex
	entries []projects.Entry
}

func newShowcase(entries []projects.Entry, interval time.Duration, log *slog.Logger) (*showcase, error) {
	s := &showcase{interval: interval, log: log}
	if err := s.replace(entries); err != nil {
		return nil, err
	}
	return s, nil
}

// build returns a stopped carousel over the current list.
func (s *showcase) build() *carousel.Controller {
	s.mu.RLock()
	entries := s.entries
	s.mu.RUnlock()
	ctrl, err := carousel.New(entries, carousel.WithInterval(s.interval), carousel.WithLogger(s.log))
	if err != nil {
		// replace never stores a list carousel.New rejects.
		panic(err)
	}
	return ctrl
}

// replace swaps in entries. The list is left alone when entries is not a
// usable carousel.
func (s *showcase) replace(entries []projects.Entry) error {
	if _, err := carousel.New(entries); err != nil {
		return err
	}
	entries = append([]projects.Entry(nil), entries...)
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// refocus points next at the project prev is showing, when it still exists.
func refocus(prev, next *carousel.Controller) {
	id := prev.Focused().ID
	for i, e := range next.Entries() {
		if e.ID == id {
			next.Focus(i)
			return
		}
	}
}
