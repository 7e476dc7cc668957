package contact

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport records calls and optionally blocks until released.
type fakeTransport struct {
	err     error
	calls   atomic.Int32
	got     []Message
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
}

func (f *fakeTransport) Send(ctx context.Context, msg Message) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.got = append(f.got, msg)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func blockingTransport(err error) *fakeTransport {
	return &fakeTransport{err: err, started: make(chan struct{}), release: make(chan struct{})}
}

func fillValid(c *Controller) {
	c.SetField(FieldName, "Jo")
	c.SetField(FieldEmail, "jo@example.com")
	c.SetField(FieldMessage, "Hello there")
}

func TestNew_Idle(t *testing.T) {
	c := New(&fakeTransport{})
	defer c.Close()
	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.Submission.Status)
	assert.True(t, snap.Fields.IsZero())
	assert.Nil(t, snap.Notice)
}

func TestSetField(t *testing.T) {
	c := New(&fakeTransport{})
	defer c.Close()
	c.SetField(FieldName, "Jo")
	c.SetField(FieldName, "Joanna")
	c.SetField("unknown", "x")
	assert.Equal(t, Fields{Name: "Joanna"}, c.Snapshot().Fields)
}

func TestSubmit_Success(t *testing.T) {
	tr := &fakeTransport{}
	c := New(tr)
	defer c.Close()
	fillValid(c)

	require.NoError(t, c.Submit(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, Succeeded, snap.Submission.Status)
	assert.True(t, snap.Fields.IsZero(), "fields are cleared on success")
	require.NotNil(t, snap.Notice)
	assert.Equal(t, NoticeSuccess, snap.Notice.Kind)
	assert.Equal(t, TextSent, snap.Notice.Text)
	assert.Equal(t, int32(1), tr.calls.Load())
	assert.Equal(t, []Message{{Name: "Jo", Email: "jo@example.com", Message: "Hello there"}}, tr.got)
}

func TestSubmit_TransportFailureKeepsFields(t *testing.T) {
	cause := errors.New("relay returned 400")
	tr := &fakeTransport{err: cause}
	c := New(tr)
	defer c.Close()
	fillValid(c)

	err := c.Submit(context.Background())
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, cause)

	snap := c.Snapshot()
	assert.Equal(t, Failed, snap.Submission.Status)
	assert.Equal(t, cause.Error(), snap.Submission.Reason)
	assert.Equal(t, Fields{Name: "Jo", Email: "jo@example.com", Message: "Hello there"}, snap.Fields)
	require.NotNil(t, snap.Notice)
	assert.Equal(t, NoticeError, snap.Notice.Kind)
	assert.Equal(t, TextSendFailed, snap.Notice.Text)
	assert.Equal(t, int32(1), tr.calls.Load(), "no automatic retry")
}

func TestSubmit_ValidationFailure(t *testing.T) {
	tr := &fakeTransport{}
	c := New(tr)
	defer c.Close()
	c.SetField(FieldName, "Jo")
	c.SetField(FieldEmail, "not-an-email")
	c.SetField(FieldMessage, "hi")

	err := c.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonInvalidEmail, verr.Reason)

	snap := c.Snapshot()
	assert.Equal(t, Submission{Status: Failed, Reason: ReasonInvalidEmail}, snap.Submission)
	assert.Equal(t, "not-an-email", snap.Fields.Email)
	require.NotNil(t, snap.Notice)
	assert.Equal(t, "Please enter a valid email.", snap.Notice.Text)
	assert.Zero(t, tr.calls.Load())
}

func TestSubmit_NoticeDurations(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(&fakeTransport{})
	defer c.Close()
	c.now = func() time.Time { return base }

	_ = c.Submit(context.Background())
	assert.Equal(t, base.Add(DefaultValidationNotice), c.Snapshot().Notice.ExpiresAt)

	fillValid(c)
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, base.Add(DefaultResultNotice), c.Snapshot().Notice.ExpiresAt)
}

func TestSubmit_SecondCallWhileSendingIsIgnored(t *testing.T) {
	tr := blockingTransport(nil)
	c := New(tr)
	defer c.Close()
	fillValid(c)

	first := make(chan error, 1)
	go func() { first <- c.Submit(context.Background()) }()
	<-tr.started

	assert.Equal(t, Sending, c.Snapshot().Submission.Status)
	assert.ErrorIs(t, c.Submit(context.Background()), ErrInFlight)
	assert.ErrorIs(t, c.Submit(context.Background()), ErrInFlight)

	close(tr.release)
	require.NoError(t, <-first)
	assert.Equal(t, int32(1), tr.calls.Load())

	// Once sending has ended a new submit is accepted again.
	fillValid(c)
	tr2 := &fakeTransport{}
	c.transport = tr2
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, int32(1), tr2.calls.Load())
}

func TestSubmit_ConcurrentCallersSendOnce(t *testing.T) {
	tr := blockingTransport(nil)
	c := New(tr)
	defer c.Close()
	fillValid(c)

	var wg sync.WaitGroup
	var inFlight atomic.Int32
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.Submit(context.Background())
			if errors.Is(err, ErrInFlight) {
				inFlight.Add(1)
			}
			results <- err
		}()
	}
	<-tr.started
	assert.Eventually(t, func() bool { return inFlight.Load() == 9 }, time.Second, time.Millisecond)
	close(tr.release)
	wg.Wait()
	assert.Equal(t, int32(1), tr.calls.Load())
}

func TestNoticeExpires(t *testing.T) {
	c := New(&fakeTransport{err: errors.New("down")}, WithNoticeDurations(20*time.Millisecond, 20*time.Millisecond))
	defer c.Close()
	fillValid(c)

	var mu sync.Mutex
	var last Snapshot
	c.Subscribe(func(s Snapshot) {
		mu.Lock()
		last = s
		mu.Unlock()
	})

	require.Error(t, c.Submit(context.Background()))
	require.NotNil(t, c.Snapshot().Notice)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return last.Notice == nil && last.Submission.Status == Idle
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Jo", c.Snapshot().Fields.Name, "fields survive notice expiry")
}

func TestNoticeOlderTimerDoesNotClearNewer(t *testing.T) {
	c := New(&fakeTransport{}, WithNoticeDurations(30*time.Millisecond, time.Hour))
	defer c.Close()

	_ = c.Submit(context.Background()) // short validation notice
	fillValid(c)
	require.NoError(t, c.Submit(context.Background())) // long success notice

	time.Sleep(80 * time.Millisecond)
	snap := c.Snapshot()
	require.NotNil(t, snap.Notice)
	assert.Equal(t, NoticeSuccess, snap.Notice.Kind)
	assert.Equal(t, Succeeded, snap.Submission.Status)
}

func TestSubscribe_SeesLifecycle(t *testing.T) {
	c := New(&fakeTransport{})
	defer c.Close()
	fillValid(c)

	var statuses []Status
	cancel := c.Subscribe(func(s Snapshot) { statuses = append(statuses, s.Submission.Status) })
	require.NoError(t, c.Submit(context.Background()))
	cancel()
	c.SetField(FieldName, "after")

	assert.Equal(t, []Status{Validating, Sending, Succeeded}, statuses)
}

func TestClose_DropsLateCompletion(t *testing.T) {
	tr := blockingTransport(nil)
	c := New(tr)
	fillValid(c)

	var notified atomic.Int32
	c.Subscribe(func(Snapshot) { notified.Add(1) })

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-tr.started
	before := notified.Load()

	c.Close()
	close(tr.release)

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Equal(t, before, notified.Load(), "no notification after close")
	snap := c.Snapshot()
	assert.Equal(t, Sending, snap.Submission.Status)
	assert.False(t, snap.Fields.IsZero(), "late success does not clear fields")
}

func TestClose_RejectsSubmit(t *testing.T) {
	tr := &fakeTransport{}
	c := New(tr)
	fillValid(c)
	c.Close()
	c.Close()
	assert.ErrorIs(t, c.Submit(context.Background()), ErrClosed)
	assert.Zero(t, tr.calls.Load())
}

func TestTransportFunc(t *testing.T) {
	var got Message
	c := New(TransportFunc(func(_ context.Context, m Message) error {
		got = m
		return nil
	}))
	defer c.Close()
	fillValid(c)
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, "Jo", got.Name)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "sending", Sending.String())
	assert.Equal(t, "unknown", Status(42).String())
}
