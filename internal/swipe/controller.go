// Package swipe implements the swipe matchmaker: a stack of recommendation
// cards the user decides on one at a time, the per-card drag gesture that
// produces those decisions, and the mapping from stack state to a screen.
//
// The stack is ordered bottom to top. The last element is the active card and
// is the only one a decision may target.
package swipe

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/logging"
	"github.com/muhammadolammi/icanmatch/internal/metrics"
	"github.com/muhammadolammi/icanmatch/internal/notify"
	"github.com/muhammadolammi/icanmatch/internal/recommend"
)

var (
	// ErrNotJobSeeker is returned when a controller is requested for a user
	// who may not use the matchmaker.
	ErrNotJobSeeker = errors.New("matchmaking is only available to job seekers")

	// ErrNotTop is returned when a decision names a card that is not the
	// active one. The stack is left untouched.
	ErrNotTop = errors.New("item is not the top of the stack")
)

// LoadTimeout bounds a single recommendation fetch.
const LoadTimeout = time.Minute

// Direction is the outcome of a swipe.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionLeft, DirectionRight:
		return d, nil
	}
	return "", fmt.Errorf("unknown swipe direction %q", s)
}

// Recommender produces a batch, most relevant first.
type Recommender interface {
	Recommend(ctx context.Context, p recommend.Profile, jobs []catalog.Job, certs []catalog.Certification) ([]recommend.Recommendation, error)
}

// Cart receives certifications the user liked.
type Cart interface {
	Add(c catalog.Certification)
}

// Deps are the collaborators a Controller works with.
type Deps struct {
	Source   Recommender
	Catalog  *catalog.Catalog
	Cart     Cart
	Notifier notify.Notifier
}

// State is a point-in-time copy of a controller. Generation changes every
// time the stack is replaced by Reset or a settling load; decisions do not
// change it.
type State struct {
	Loading    bool
	Stack      []recommend.Recommendation
	Generation uint64
}

// Top returns the active card, if any.
func (s State) Top() (recommend.Recommendation, bool) {
	if len(s.Stack) == 0 {
		return recommend.Recommendation{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Controller owns one user's swipe stack.
type Controller struct {
	user    catalog.User
	profile recommend.Profile
	deps    Deps

	mu      sync.Mutex
	stack   []recommend.Recommendation
	gen     uint64
	pending int
	last    *Task
	subs    map[int]chan State
	nextSub int

	// pubMu orders snapshots handed to subscribers. Never taken while mu is held.
	pubMu sync.Mutex
}

// NewController gates on role: only job seekers get a stack.
func NewController(user catalog.User, deps Deps) (*Controller, error) {
	if !user.Role.IsJobSeeker() {
		return nil, ErrNotJobSeeker
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.LogNotifier{}
	}
	return &Controller{
		user:    user,
		profile: recommend.ProfileOf(user),
		deps:    deps,
		subs:    make(map[int]chan State),
	}, nil
}

func (c *Controller) User() catalog.User { return c.user }

// Load fetches a batch in the background and replaces the stack with it once
// it arrives. Loads are neither coalesced nor cancelled: when two overlap,
// the one that settles last decides the stack.
func (c *Controller) Load(ctx context.Context) *Task {
	t := newTask()

	c.mu.Lock()
	c.pending++
	c.last = t
	c.mu.Unlock()
	c.publish()

	// The fetch outlives the request that triggered it.
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
	go func() {
		defer cancel()
		recs, err := c.deps.Source.Recommend(bg, c.profile, c.deps.Catalog.Jobs, c.deps.Catalog.Certifications)
		if err != nil {
			logging.Ctx(bg).Warn().Err(err).Int("user_id", c.user.ID).Msg("recommendation load failed, showing empty stack")
		}

		stack := slices.Clone(recs)
		slices.Reverse(stack)

		c.mu.Lock()
		c.stack = stack
		c.gen++
		c.pending--
		c.mu.Unlock()

		t.settle(recs, err)
		c.publish()
	}()

	return t
}

// Reset clears the stack and loads a fresh batch.
func (c *Controller) Reset(ctx context.Context) *Task {
	c.mu.Lock()
	c.stack = nil
	c.gen++
	c.mu.Unlock()
	return c.Load(ctx)
}

// Decide applies a swipe to the active card. The card is removed whatever
// the direction, and whether or not the like side effects succeed.
func (c *Controller) Decide(ctx context.Context, key recommend.Key, dir Direction) error {
	return c.decide(ctx, nil, key, dir)
}

// DecideIn is Decide for a card taken from the stack at generation gen. It
// returns ErrNotTop once the stack has been replaced, even if the new batch
// has the same item on top.
func (c *Controller) DecideIn(ctx context.Context, gen uint64, key recommend.Key, dir Direction) error {
	return c.decide(ctx, &gen, key, dir)
}

func (c *Controller) decide(ctx context.Context, gen *uint64, key recommend.Key, dir Direction) error {
	c.mu.Lock()
	n := len(c.stack)
	if n == 0 || c.stack[n-1].Key() != key || (gen != nil && *gen != c.gen) {
		c.mu.Unlock()
		return ErrNotTop
	}
	top := c.stack[n-1]
	c.stack = c.stack[:n-1:n-1]
	c.mu.Unlock()

	metrics.SwipeDecisions.WithLabelValues(string(key.Kind), string(dir)).Inc()
	if dir == DirectionRight {
		c.like(ctx, top)
	}
	c.publish()
	return nil
}

func (c *Controller) like(ctx context.Context, rec recommend.Recommendation) {
	msg := recommend.Match(rec,
		func(j catalog.Job) notify.Message {
			return notify.Message{
				UserID: c.user.ID,
				Event:  notify.EventJobInterest,
				ItemID: j.ID,
				Title:  j.Title,
				Text:   fmt.Sprintf("You liked the job: %q! We saved your interest.", j.Title),
			}
		},
		func(cert catalog.Certification) notify.Message {
			if c.deps.Cart != nil {
				c.deps.Cart.Add(cert)
			}
			return notify.Message{
				UserID: c.user.ID,
				Event:  notify.EventCartAdd,
				ItemID: cert.ID,
				Title:  cert.Title,
				Text:   fmt.Sprintf("%q added to your cart! Check it out from the cart page.", cert.Title),
			}
		},
	)

	if err := c.deps.Notifier.Notify(ctx, msg); err != nil {
		metrics.SideEffectFailures.WithLabelValues(string(rec.Item.Kind())).Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("item", rec.Key().String()).Msg("like notification failed")
	}
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Loading: c.pending > 0, Stack: slices.Clone(c.stack), Generation: c.gen}
}

// WaitIdle blocks until no load is in flight and returns that state. On ctx
// expiry it returns the current state with ctx's error.
func (c *Controller) WaitIdle(ctx context.Context) (State, error) {
	ch, cancel := c.Subscribe()
	defer cancel()

	if s := c.Snapshot(); !s.Loading {
		return s, nil
	}
	for {
		select {
		case s := <-ch:
			if !s.Loading {
				return s, nil
			}
		case <-ctx.Done():
			return c.Snapshot(), ctx.Err()
		}
	}
}

// LastTask returns the most recently started load, or nil.
func (c *Controller) LastTask() *Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Subscribe returns a channel that always holds the latest state after each
// change. Older undelivered states are overwritten. Call cancel to stop.
// WaitIdle is built on it.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	return ch, func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Controller) publish() {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	s := c.Snapshot()
	c.mu.Lock()
	subs := make([]chan State, 0, len(c.subs))
	for _, ch := range c.subs {
		subs = append(subs, ch)
	}
	c.mu.Unlock()

	for _, ch := range subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
