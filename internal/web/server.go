// Package web serves the portfolio: the page itself, the HTMX fragments that
// drive the project carousel and the contact form, and the admin dashboard.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/contact"
	"github.com/Zachkp/showcase/internal/projects"
	"github.com/Zachkp/showcase/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Options are the collaborators a Server needs. Store may be nil, in which
// case visits and submissions are not recorded and the admin area is off.
type Options struct {
	Config    config.Config
	Projects  []projects.Entry
	Transport contact.Transport
	Store     *store.Store
	Logger    *slog.Logger
}

// Server is the HTTP front end.
type Server struct {
	cfg      config.Config
	log      *slog.Logger
	store    *store.Store
	engine   *gin.Engine
	reload   sync.Mutex
	showcase *showcase
	sessions *sessions
	admin    *admin
}

// New builds the server. Each visitor gets a carousel and a contact form
// once they interact with the page.
func New(opts Options) (*Server, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	sc, err := newShowcase(opts.Projects, opts.Config.Carousel.Interval, log)
	if err != nil {
		return nil, err
	}

	cc := opts.Config.Contact
	newForm := func() *contact.Controller {
		return contact.New(opts.Transport,
			contact.WithNoticeDurations(cc.ValidationNotice, cc.ResultNotice),
			contact.WithLogger(log))
	}
	ttl := cc.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	s := &Server{
		cfg:      opts.Config,
		log:      log,
		store:    opts.Store,
		showcase: sc,
		sessions: newSessions(newForm, sc.build, ttl, log),
	}
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the gin engine.
func (s *Server) Handler() http.Handler { return s.engine }

// SetProjects replaces the project list. Open sessions get a new carousel
// that stays on the project they were looking at.
func (s *Server) SetProjects(entries []projects.Entry) error {
	s.reload.Lock()
	defer s.reload.Unlock()
	if err := s.showcase.replace(entries); err != nil {
		return err
	}
	s.sessions.rebuildCarousels(s.showcase.build)
	return nil
}

// Run sweeps idle visitor sessions until ctx is done.
func (s *Server) Run(ctx context.Context) {
	s.sessions.run(ctx, time.Minute)
}

// Close stops every visitor's autoplay and closes their contact forms.
func (s *Server) Close() {
	s.reload.Lock()
	defer s.reload.Unlock()
	s.sessions.closeAll()
}

func (s *Server) routes() error {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	r.Static("/images", "./images")
	r.Static("/static", "./static")
	if s.store != nil {
		r.Use(visitorTracking(s.store, s.log))
	}

	r.GET("/", s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work", Experience)
	})

	r.GET("/projects/carousel", s.handleCarousel)
	r.POST("/projects/next", s.handleNext)
	r.POST("/projects/prev", s.handlePrev)
	r.GET("/projects.json", s.handleProjectsJSON)

	r.GET("/contact-form", s.handleContactForm)
	r.PUT("/contact/fields", s.handleSetField)
	r.POST("/contact", s.handleSubmit)
	r.GET("/contact/notice", s.handleNotice)

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy"})
	})

	if s.store != nil && s.cfg.Admin.Password != "" {
		s.admin = newAdmin(s.cfg.Admin, s.cfg.Database.Retention, s.store, s.log)
		s.admin.routes(r)
	} else {
		s.log.Info("admin dashboard disabled", "reason", "no store or admin password")
	}

	s.engine = r
	return nil
}

var templateFuncs = template.FuncMap{
	"seconds": func(d time.Duration) int {
		if d < time.Second {
			return 1
		}
		return int(d / time.Second)
	},
	"join": strings.Join,
}

type carouselView struct {
	Slides   []carousel.Slide
	Current  int
	Count    int
	Interval time.Duration
}

func newCarouselView(ctrl *carousel.Controller) carouselView {
	slides := ctrl.Slides()
	current := 0
	for _, sl := range slides {
		if sl.Role == carousel.Center {
			current = sl.Index
		}
	}
	return carouselView{Slides: slides, Current: current, Count: len(slides), Interval: ctrl.Interval()}
}

// views renders the caller's state, or a fresh page for visitors without a
// session. No session is created.
func (s *Server) views(c *gin.Context) (carouselView, contact.Snapshot) {
	if sess := s.sessions.peek(c); sess != nil {
		return newCarouselView(sess.carousel()), sess.form.Snapshot()
	}
	return newCarouselView(s.showcase.build()), contact.Snapshot{}
}

func (s *Server) handleIndex(c *gin.Context) {
	view, snap := s.views(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"heroHeadline": HeroHeadline,
		"heroIntro":    HeroIntro,
		"about":        AboutMe,
		"skills":       Skills,
		"github":       GitHubProfile,
		"contactBlurb": ContactBlurb,
		"carousel":     view,
		"contact":      snap,
	})
}

// handleCarousel serves the autoplay poll. The first poll starts the
// visitor's session and with it their autoplay.
func (s *Server) handleCarousel(c *gin.Context) {
	ctrl := s.sessions.get(c).carousel()
	c.HTML(http.StatusOK, "carousel", newCarouselView(ctrl))
}

func (s *Server) handleNext(c *gin.Context) {
	ctrl := s.sessions.get(c).carousel()
	ctrl.Advance()
	c.HTML(http.StatusOK, "carousel", newCarouselView(ctrl))
}

func (s *Server) handlePrev(c *gin.Context) {
	ctrl := s.sessions.get(c).carousel()
	ctrl.Retreat()
	c.HTML(http.StatusOK, "carousel", newCarouselView(ctrl))
}

type slideJSON struct {
	Index   int            `json:"index"`
	Role    carousel.Role  `json:"role"`
	HasDemo bool           `json:"has_demo"`
	Project projects.Entry `json:"project"`
}

func (s *Server) handleProjectsJSON(c *gin.Context) {
	view, _ := s.views(c)
	slides := make([]slideJSON, len(view.Slides))
	for i, sl := range view.Slides {
		slides[i] = slideJSON{Index: sl.Index, Role: sl.Role, HasDemo: sl.Entry.HasDemo(), Project: sl.Entry}
	}
	c.JSON(http.StatusOK, gin.H{
		"current":     view.Current,
		"count":       view.Count,
		"interval_ms": view.Interval.Milliseconds(),
		"slides":      slides,
	})
}

// contactSnapshot is the caller's form state, empty without a session.
func (s *Server) contactSnapshot(c *gin.Context) contact.Snapshot {
	if sess := s.sessions.peek(c); sess != nil {
		return sess.form.Snapshot()
	}
	return contact.Snapshot{}
}

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form", s.contactSnapshot(c))
}

func (s *Server) handleSetField(c *gin.Context) {
	form := s.sessions.get(c).form
	field := c.PostForm("field")
	// htmx sends the input under its own name; plain clients may use "value".
	value, ok := c.GetPostForm("value")
	if !ok {
		value = c.PostForm(field)
	}
	form.SetField(contact.FieldID(field), value)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSubmit(c *gin.Context) {
	form := s.sessions.get(c).form
	for _, id := range []contact.FieldID{contact.FieldName, contact.FieldEmail, contact.FieldMessage} {
		if v, ok := c.GetPostForm(string(id)); ok {
			form.SetField(id, v)
		}
	}

	// A visitor closing the tab must not abort a send that already started.
	err := form.Submit(context.WithoutCancel(c.Request.Context()))
	switch {
	case errors.Is(err, contact.ErrInFlight):
		c.HTML(http.StatusConflict, "contact-form", form.Snapshot())
		return
	case errors.Is(err, contact.ErrClosed):
		c.HTML(http.StatusGone, "contact-form", contact.Snapshot{})
		return
	}

	snap := form.Snapshot()
	s.recordSubmission(c.ClientIP(), snap.Submission)
	c.HTML(http.StatusOK, "contact-form", snap)
}

func (s *Server) handleNotice(c *gin.Context) {
	c.HTML(http.StatusOK, "notice", s.contactSnapshot(c).Notice)
}

func (s *Server) recordSubmission(ip string, sub contact.Submission) {
	if s.store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.RecordSubmission(ctx, ip, sub.Status.String(), sub.Reason); err != nil {
			s.log.Warn("recording submission failed", "err", err)
		}
	}()
}
