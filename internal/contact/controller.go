package contact

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Transport delivers a message to the site owner.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, msg Message) error

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// Status is the phase of the submission lifecycle.
type Status int

const (
	Idle Status = iota
	Validating
	Sending
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Sending:
		return "sending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submission is the lifecycle state. Reason is set only when Status is Failed.
type Submission struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Busy reports whether a submission is being validated or sent.
func (s Submission) Busy() bool {
	return s.Status == Validating || s.Status == Sending
}

// Snapshot is a copy of the controller state.
type Snapshot struct {
	Fields     Fields     `json:"fields"`
	Submission Submission `json:"submission"`
	Notice     *Notice    `json:"notice,omitempty"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithNoticeDurations overrides how long validation notices and send result
// notices stay visible. Zero keeps the default.
func WithNoticeDurations(validation, result time.Duration) Option {
	return func(c *Controller) {
		if validation > 0 {
			c.validationNotice = validation
		}
		if result > 0 {
			c.resultNotice = result
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns one visitor's form. It is safe for concurrent use; the
// lifecycle status doubles as the guard that keeps at most one transport call
// in flight.
type Controller struct {
	transport        Transport
	validationNotice time.Duration
	resultNotice     time.Duration
	log              *slog.Logger
	now              func() time.Time

	mu          sync.Mutex
	fields      Fields
	submission  Submission
	notice      *Notice
	noticeSeq   uint64
	noticeTimer *time.Timer
	closed      bool
	subs        map[int]func(Snapshot)
	nextSub     int
}

// New returns an idle controller with empty fields.
func New(transport Transport, opts ...Option) *Controller {
	c := &Controller{
		transport:        transport,
		validationNotice: DefaultValidationNotice,
		resultNotice:     DefaultResultNotice,
		log:              slog.Default(),
		now:              time.Now,
		subs:             make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetField overwrites one field. Values are not validated here. Unknown
// field ids are ignored.
func (c *Controller) SetField(id FieldID, value string) {
	c.mu.Lock()
	if c.closed || !c.fields.set(id, value) {
		c.mu.Unlock()
		return
	}
	snap, subs := c.snapshotLocked(), c.subscribers()
	c.mu.Unlock()
	notify(subs, snap)
}

// Snapshot returns a copy of the current state. An expired notice that has
// not been cleared yet is omitted.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.snapshotLocked()
	if snap.Notice != nil && snap.Notice.Expired(c.now()) {
		snap.Notice = nil
	}
	return snap
}

// Submit validates the fields and, when they pass, sends them through the
// transport exactly once. It blocks until the send completes.
//
// It returns nil on success, a *ValidationError or *TransportError on
// failure, ErrInFlight if another submission has not finished, and
// ErrClosed if the controller was closed before or during the call. In the
// last case a late transport result is discarded.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.submission.Busy() {
		c.mu.Unlock()
		return ErrInFlight
	}
	c.submission = Submission{Status: Validating}
	fields := c.fields
	snap, subs := c.snapshotLocked(), c.subscribers()
	c.mu.Unlock()
	notify(subs, snap)

	if err := fields.Validate(); err != nil {
		reason := err.(*ValidationError).Reason
		if !c.finish(Submission{Status: Failed, Reason: reason}, NoticeError, validationText(reason), c.validationNotice, false) {
			return ErrClosed
		}
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.submission = Submission{Status: Sending}
	c.clearNoticeLocked()
	snap, subs = c.snapshotLocked(), c.subscribers()
	c.mu.Unlock()
	notify(subs, snap)

	c.log.Debug("sending contact message", "name", fields.Name)
	sendErr := c.transport.Send(ctx, fields.message())

	if sendErr != nil {
		c.log.Warn("contact message send failed", "err", sendErr)
		if !c.finish(Submission{Status: Failed, Reason: sendErr.Error()}, NoticeError, TextSendFailed, c.resultNotice, false) {
			return ErrClosed
		}
		return &TransportError{Err: sendErr}
	}
	c.log.Info("contact message sent", "name", fields.Name)
	if !c.finish(Submission{Status: Succeeded}, NoticeSuccess, TextSent, c.resultNotice, true) {
		return ErrClosed
	}
	return nil
}

// finish records a terminal outcome and shows its notice. It reports false,
// changing nothing, when the controller was closed in the meantime.
func (c *Controller) finish(sub Submission, kind NoticeKind, text string, d time.Duration, clearFields bool) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.Debug("dropping submission result for closed controller", "status", sub.Status)
		return false
	}
	c.submission = sub
	if clearFields {
		c.fields = Fields{}
	}
	c.showNoticeLocked(kind, text, d)
	snap, subs := c.snapshotLocked(), c.subscribers()
	c.mu.Unlock()
	notify(subs, snap)
	return true
}

func (c *Controller) showNoticeLocked(kind NoticeKind, text string, d time.Duration) {
	c.clearNoticeLocked()
	seq := c.noticeSeq
	c.notice = &Notice{Kind: kind, Text: text, ExpiresAt: c.now().Add(d)}
	c.noticeTimer = time.AfterFunc(d, func() { c.expireNotice(seq) })
}

// clearNoticeLocked removes the notice and invalidates any pending expiry.
func (c *Controller) clearNoticeLocked() {
	c.noticeSeq++
	c.notice = nil
	if c.noticeTimer != nil {
		c.noticeTimer.Stop()
		c.noticeTimer = nil
	}
}

// expireNotice clears the notice identified by seq and returns a finished
// submission to Idle. Stale timers are ignored.
func (c *Controller) expireNotice(seq uint64) {
	c.mu.Lock()
	if c.closed || seq != c.noticeSeq {
		c.mu.Unlock()
		return
	}
	c.notice = nil
	c.noticeTimer = nil
	if !c.submission.Busy() {
		c.submission = Submission{Status: Idle}
	}
	snap, subs := c.snapshotLocked(), c.subscribers()
	c.mu.Unlock()
	notify(subs, snap)
}

// Subscribe registers fn to be called after every state change, outside the
// controller lock. The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) (cancel func()) {
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

// Close tears the controller down. Pending notice timers are stopped,
// subscribers are dropped, and an in-flight send finishes without touching
// the state. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.noticeTimer != nil {
		c.noticeTimer.Stop()
		c.noticeTimer = nil
	}
	c.subs = map[int]func(Snapshot){}
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{Fields: c.fields, Submission: c.submission}
	if c.notice != nil {
		n := *c.notice
		snap.Notice = &n
	}
	return snap
}

func (c *Controller) subscribers() []func(Snapshot) {
	if len(c.subs) == 0 {
		return nil
	}
	out := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
