package swipe_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/notify"
	"github.com/muhammadolammi/icanmatch/internal/recommend"
	"github.com/muhammadolammi/icanmatch/internal/swipe"
)

// reply is one scripted Recommend result. When gate is non-nil the call
// blocks until it is closed.
type reply struct {
	recs []recommend.Recommendation
	err  error
	gate chan struct{}
}

type scriptedSource struct {
	mu      sync.Mutex
	replies []reply
	calls   int
}

func (s *scriptedSource) Recommend(ctx context.Context, _ recommend.Profile, _ []catalog.Job, _ []catalog.Certification) ([]recommend.Recommendation, error) {
	s.mu.Lock()
	r := s.replies[s.calls%len(s.replies)]
	s.calls++
	s.mu.Unlock()

	if r.gate != nil {
		<-r.gate
	}
	return r.recs, r.err
}

type recordingCart struct {
	mu    sync.Mutex
	added []catalog.Certification
}

func (c *recordingCart) Add(cert catalog.Certification) {
	c.mu.Lock()
	c.added = append(c.added, cert)
	c.mu.Unlock()
}

func (c *recordingCart) Added() []catalog.Certification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]catalog.Certification(nil), c.added...)
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.err
}

func (n *recordingNotifier) Messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.msgs...)
}

var errRemote = errors.New("remote failed")

// manualScheduler queues callbacks until Fire is called.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) swipe.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Pending returns the durations of timers that have not run.
func (s *manualScheduler) Pending() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []time.Duration
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t.d)
		}
	}
	return out
}

// Fire runs every pending timer.
func (s *manualScheduler) Fire() {
	s.mu.Lock()
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

func fixture(t *testing.T) (*catalog.Catalog, catalog.User) {
	t.Helper()
	c := catalog.Default()
	u, ok := c.User(1)
	require.True(t, ok)
	return c, u
}

func jobRec(t *testing.T, c *catalog.Catalog, id int) recommend.Recommendation {
	t.Helper()
	j, ok := c.Job(id)
	require.True(t, ok)
	return recommend.NewJob(j, "fits")
}

func certRec(t *testing.T, c *catalog.Catalog, id int) recommend.Recommendation {
	t.Helper()
	cert, ok := c.Certification(id)
	require.True(t, ok)
	return recommend.NewCertification(cert, "fits")
}

func stackKeys(s swipe.State) []string {
	out := make([]string, len(s.Stack))
	for i, r := range s.Stack {
		out[i] = r.Key().String()
	}
	return out
}

func waitLoaded(t *testing.T, task *swipe.Task) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, task.Wait(ctx))
}
