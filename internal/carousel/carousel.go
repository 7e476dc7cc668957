// Package carousel keeps the focus over an ordered list of projects and
// advances it on a timer.
package carousel

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Zachkp/showcase/internal/projects"
)

// DefaultInterval is the autoplay period.
const DefaultInterval = 5 * time.Second

// ErrEmpty is returned by New when there is nothing to show.
var ErrEmpty = errors.New("carousel: no entries")

// Slide pairs an entry with the role it currently plays.
type Slide struct {
	Index int
	Entry projects.Entry
	Role  Role
}

// State is a copy of the controller state handed to subscribers.
type State struct {
	Current int
	Count   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval overrides the autoplay period.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns the focused index. All methods are safe for concurrent use.
//
// Autoplay and manual navigation are independent: Advance and Retreat never
// reschedule the ticker, so a tick may land right after a click.
type Controller struct {
	entries  []projects.Entry
	interval time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	current int
	subs    map[int]func(State)
	nextSub int

	// stop is non-nil while the autoplay ticker is armed.
	stop chan struct{}
	done chan struct{}
}

// New creates a controller focused on the first entry. It fails with
// ErrEmpty when entries is empty.
func New(entries []projects.Entry, opts ...Option) (*Controller, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	c := &Controller{
		entries:  append([]projects.Entry(nil), entries...),
		interval: DefaultInterval,
		log:      slog.Default(),
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Len returns the number of entries.
func (c *Controller) Len() int { return len(c.entries) }

// Interval returns the autoplay period.
func (c *Controller) Interval() time.Duration { return c.interval }

// Entries returns a copy of the entries in display order.
func (c *Controller) Entries() []projects.Entry {
	return append([]projects.Entry(nil), c.entries...)
}

// Current returns the focused index.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Focused returns the focused entry.
func (c *Controller) Focused() projects.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[c.current]
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Current: c.current, Count: len(c.entries)}
}

// Advance moves focus to the next entry, wrapping after the last one.
func (c *Controller) Advance() {
	c.move(1)
}

// Retreat moves focus to the previous entry, wrapping before the first one.
func (c *Controller) Retreat() {
	c.move(-1)
}

// Focus moves directly to index. Out of range indexes are wrapped.
func (c *Controller) Focus(index int) {
	n := len(c.entries)
	c.mu.Lock()
	c.current = ((index % n) + n) % n
	st := State{Current: c.current, Count: n}
	subs := c.subscribers()
	c.mu.Unlock()
	notify(subs, st)
}

func (c *Controller) move(delta int) {
	n := len(c.entries)
	c.mu.Lock()
	c.current = (c.current + delta + n) % n
	st := State{Current: c.current, Count: n}
	subs := c.subscribers()
	c.mu.Unlock()
	notify(subs, st)
}

// PositionOf returns the role of the entry at index.
func (c *Controller) PositionOf(index int) Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Position(c.current, index, len(c.entries))
}

// Slides returns every entry with its role, in entry order. All roles are
// computed from one snapshot of the focused index.
func (c *Controller) Slides() []Slide {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()

	slides := make([]Slide, len(c.entries))
	for i, e := range c.entries {
		slides[i] = Slide{Index: i, Entry: e, Role: Position(current, i, len(c.entries))}
	}
	return slides
}

// Subscribe registers fn to be called after every focus change. Callbacks
// run on the goroutine that caused the change, outside the controller lock.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Start arms the autoplay ticker. Calling Start while the ticker is armed
// does nothing, so only one ticker is ever live.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop, c.done = stop, done
	go c.autoplay(stop, done)
	c.log.Debug("carousel autoplay started", "interval", c.interval, "entries", len(c.entries))
}

// Stop disarms the ticker and waits for it to exit. After Stop returns no
// tick will change the focus. Stop is safe to call more than once, but not
// from inside a subscriber callback.
func (c *Controller) Stop() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
	c.log.Debug("carousel autoplay stopped")
}

// Running reports whether autoplay is armed.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *Controller) autoplay(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A tick and a stop can be ready together; stop wins.
			select {
			case <-stop:
				return
			default:
			}
			c.Advance()
		}
	}
}

// subscribers must be called with c.mu held.
func (c *Controller) subscribers() []func(State) {
	if len(c.subs) == 0 {
		return nil
	}
	out := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}
