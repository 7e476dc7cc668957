package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/contact"
)

const sessionCookie = "showcase_session"

// session is one visitor's page state: their carousel and contact form.
type session struct {
	form *contact.Controller

	mu  sync.Mutex
	car *carousel.Controller

	lastSeen time.Time // guarded by sessions.mu
}

func (s *session) carousel() *carousel.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.car
}

// swapCarousel replaces the carousel, keeping focus and autoplay.
func (s *session) swapCarousel(next *carousel.Controller) {
	s.mu.Lock()
	prev := s.car
	s.car = next
	s.mu.Unlock()

	refocus(prev, next)
	if prev.Running() {
		prev.Stop()
		next.Start()
	}
}

func (s *session) close() {
	s.carousel().Stop()
	s.form.Close()
}

// sessions gives every visitor their own controllers, keyed by a random
// cookie. A session is created only when the visitor interacts; idle
// sessions are closed by sweep.
type sessions struct {
	newForm     func() *contact.Controller
	newCarousel func() *carousel.Controller
	ttl         time.Duration
	now         func() time.Time
	log         *slog.Logger

	mu     sync.Mutex
	m      map[string]*session
	closed bool
}

func newSessions(newForm func() *contact.Controller, newCarousel func() *carousel.Controller, ttl time.Duration, log *slog.Logger) *sessions {
	return &sessions{
		newForm:     newForm,
		newCarousel: newCarousel,
		ttl:         ttl,
		now:         time.Now,
		log:         log,
		m:           make(map[string]*session),
	}
}

// get returns the caller's session, creating it and arming its carousel
// autoplay on first use.
func (s *sessions) get(c *gin.Context) *session {
	id := cookieID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.m[id]; ok {
		s.touchLocked(c, id, sess)
		return sess
	}

	sess := &session{form: s.newForm(), car: s.newCarousel()}
	if s.closed {
		sess.form.Close()
		return sess
	}
	sess.car.Start()
	id = uuid.NewString()
	s.m[id] = sess
	s.touchLocked(c, id, sess)
	return sess
}

// peek returns the caller's session, or nil without creating one.
func (s *sessions) peek(c *gin.Context) *session {
	id := cookieID(c)
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return nil
	}
	s.touchLocked(c, id, sess)
	return sess
}

// touchLocked marks the session as active and renews the cookie, so the
// cookie lives as long as the server keeps the session.
func (s *sessions) touchLocked(c *gin.Context, id string, sess *session) {
	sess.lastSeen = s.now()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(s.ttl.Seconds()), "/", "", false, true)
}

func cookieID(c *gin.Context) string {
	id, err := c.Cookie(sessionCookie)
	if err != nil || uuid.Validate(id) != nil {
		return ""
	}
	return id
}

// rebuildCarousels gives every session a fresh carousel from build.
func (s *sessions) rebuildCarousels(build func() *carousel.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, sess := range s.m {
		sess.swapCarousel(build())
	}
}

// sweep closes and forgets sessions idle for longer than the TTL.
func (s *sessions) sweep() int {
	cutoff := s.now().Add(-s.ttl)
	var expired []*session

	s.mu.Lock()
	for id, sess := range s.m {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.m, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.close()
	}
	return len(expired)
}

// run sweeps every interval until ctx is done.
func (s *sessions) run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				s.log.Debug("expired visitor sessions", "count", n)
			}
		}
	}
}

// closeAll closes every session. Sessions requested afterwards are never
// stored or started.
func (s *sessions) closeAll() {
	s.mu.Lock()
	all := s.m
	s.m = make(map[string]*session)
	s.closed = true
	s.mu.Unlock()
	for _, sess := range all {
		sess.close()
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
