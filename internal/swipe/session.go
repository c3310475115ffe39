package swipe

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/logging"
	"github.com/muhammadolammi/icanmatch/internal/metrics"
	"github.com/muhammadolammi/icanmatch/internal/recommend"
)

var ErrSessionNotFound = errors.New("matchmaking session not found")

// DefaultViewportWidth is used when a drag does not report one.
const DefaultViewportWidth = 1024.0

// Session binds a controller to the gesture recognizer of its active card.
type Session struct {
	ID         string
	Controller *Controller

	sched Scheduler

	mu      sync.Mutex
	touched time.Time
	card    *Card
	cardOf  recommend.Key
	cardGen uint64
}

// ActiveCard returns the recognizer for the current top card. A new one is
// created when the top item changes or the stack is replaced, so a reloaded
// batch never inherits a card that already flew out. ok is false when the
// stack is empty.
func (s *Session) ActiveCard(ctx context.Context) (*Card, recommend.Key, bool) {
	snap := s.Controller.Snapshot()
	top, ok := snap.Top()
	if !ok {
		return nil, recommend.Key{}, false
	}
	key, gen := top.Key(), snap.Generation

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.card == nil || s.cardOf != key || s.cardGen != gen {
		if s.card != nil {
			s.card.SetActive(false)
		}
		// Detached: the decision fires after the request that dragged has returned.
		bg := context.WithoutCancel(ctx)
		s.card = NewCard(DefaultViewportWidth, func(dir Direction) {
			if err := s.Controller.DecideIn(bg, gen, key, dir); err != nil {
				logging.Ctx(bg).Debug().Err(err).Str("item", key.String()).Msg("swipe decision dropped")
			}
		}, WithScheduler(s.sched))
		s.card.SetActive(true)
		s.cardOf = key
		s.cardGen = gen
	}
	return s.card, key, true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.touched = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.touched)
}

// DragResult reports what a complete drag did to the active card.
type DragResult struct {
	Item    string  `json:"item"`
	Release Release `json:"release"`
	Visual  Visual  `json:"visual"`
}

// Drag replays a full pointer sequence on the active card: down at startX,
// move to endX, up.
func (s *Session) Drag(ctx context.Context, startX, endX, viewportWidth float64) (DragResult, error) {
	card, key, ok := s.ActiveCard(ctx)
	if !ok {
		return DragResult{}, ErrNotTop
	}
	if viewportWidth > 0 {
		card.SetViewportWidth(viewportWidth)
	}
	if !card.PointerDown(startX) {
		// Mid fly-out; report where it is.
		return DragResult{Item: key.String(), Visual: card.Visual()}, nil
	}
	card.PointerMove(endX)
	rel := card.PointerUp()
	return DragResult{Item: key.String(), Release: rel, Visual: card.Visual()}, nil
}

// Registry holds live sessions by id.
type Registry struct {
	deps  Deps
	sched Scheduler
	idle  time.Duration
	now   func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

type RegistryOption func(*Registry)

// WithSessionScheduler overrides the timer source for card gestures.
func WithSessionScheduler(s Scheduler) RegistryOption {
	return func(r *Registry) { r.sched = s }
}

// WithIdleTimeout makes Sweep drop sessions untouched for d. Zero keeps
// sessions until they are deleted.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idle = d }
}

func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry returns an empty registry. deps.Cart is ignored; carts are
// resolved per user through carts.
func NewRegistry(deps Deps, opts ...RegistryOption) *Registry {
	r := &Registry{
		deps:     deps,
		sched:    realScheduler{},
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Create opens a session for user and starts its first load.
func (r *Registry) Create(ctx context.Context, user catalog.User, cart Cart) (*Session, error) {
	deps := r.deps
	deps.Cart = cart
	ctrl, err := NewController(user, deps)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:         uuid.NewString(),
		Controller: ctrl,
		sched:      r.sched,
		touched:    r.now(),
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))

	ctrl.Load(ctx)
	logging.Ctx(ctx).Info().Str("session_id", s.ID).Int("user_id", user.ID).Msg("matchmaking session opened")
	return s, nil
}

// Get returns the session if it exists and belongs to userID, and marks it
// as used.
func (r *Registry) Get(id string, userID int) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || s.Controller.User().ID != userID {
		return nil, ErrSessionNotFound
	}
	s.touch(r.now())
	return s, nil
}

func (r *Registry) Delete(id string, userID int) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok || s.Controller.User().ID != userID {
		r.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the idle timeout and returns
// how many it removed.
func (r *Registry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	now := r.now()

	r.mu.Lock()
	removed := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.idle {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		metrics.ActiveSessions.Set(float64(n))
		logging.Info().Int("removed", removed).Int("active", n).Msg("expired idle matchmaking sessions")
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	if r.idle <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
