package swipe

import (
	"math"
	"sync"
	"time"
)

// Phase is the state of a card's drag gesture.
//
//	idle ──down──► dragging ──up, |dx| ≤ threshold──► settling-back ──timer──► idle
//	                   │
//	                   └──up, |dx| > threshold──► flying-out ──timer──► decision
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseSettlingBack
	PhaseFlyingOut
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseSettlingBack:
		return "settling-back"
	case PhaseFlyingOut:
		return "flying-out"
	default:
		return "idle"
	}
}

const (
	// CommitThreshold is the drag distance in px a swipe must exceed to count.
	CommitThreshold = 120.0
	// WatermarkFullOffset is the offset in px at which LIKE/NOPE are fully opaque.
	WatermarkFullOffset = 100.0
	// RotationDivisor converts px of offset to degrees of tilt.
	RotationDivisor = 20.0
	// FlyOutMargin is added to half the viewport so the card leaves the screen.
	FlyOutMargin = 300.0
	// FlyOutDrop is the vertical drop in px applied while flying out.
	FlyOutDrop = 75.0

	SettleDuration = 400 * time.Millisecond
	FlyOutDuration = 500 * time.Millisecond
	// DecisionDelay fires the decision while the fly-out is still animating.
	DecisionDelay = 100 * time.Millisecond
)

// Transition is the CSS transition a client should apply to the card.
type Transition string

const (
	TransitionNone   Transition = "none"
	TransitionSpring Transition = "transform 0.4s cubic-bezier(0.175, 0.885, 0.32, 1.275)"
	TransitionFlyOut Transition = "transform 0.5s ease-out"
)

// Classify decides what releasing a drag at offset dx does.
func Classify(dx float64) (commit bool, dir Direction) {
	if math.Abs(dx) <= CommitThreshold {
		return false, ""
	}
	if dx > 0 {
		return true, DirectionRight
	}
	return true, DirectionLeft
}

// Rotation returns the card tilt in degrees for offset dx.
func Rotation(dx float64) float64 { return dx / RotationDivisor }

// WatermarkOpacity returns the LIKE and NOPE overlay opacities for offset dx.
// Only the overlay on the side of the drag is visible.
func WatermarkOpacity(dx float64) (like, nope float64) {
	switch {
	case dx > 0:
		like = math.Min(dx, WatermarkFullOffset) / WatermarkFullOffset
	case dx < 0:
		nope = math.Min(-dx, WatermarkFullOffset) / WatermarkFullOffset
	}
	return like, nope
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d. The default uses time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Visual is what a client needs to draw a card.
type Visual struct {
	Phase       string     `json:"phase"`
	OffsetX     float64    `json:"offsetX"`
	OffsetY     float64    `json:"offsetY"`
	Rotation    float64    `json:"rotation"`
	LikeOpacity float64    `json:"likeOpacity"`
	NopeOpacity float64    `json:"nopeOpacity"`
	Transition  Transition `json:"transition"`
}

// Release describes the result of lifting the pointer.
type Release struct {
	Committed bool      `json:"committed"`
	Direction Direction `json:"direction,omitempty"`
}

// Card is the gesture recognizer for one card. Only an active card reacts to
// pointer input; everything sent to an inactive card is ignored.
type Card struct {
	sched    Scheduler
	onDecide func(Direction)

	mu            sync.Mutex
	active        bool
	phase         Phase
	startX        float64
	offsetX       float64
	offsetY       float64
	transition    Transition
	viewportWidth float64
	timer         Timer
}

type CardOption func(*Card)

func WithScheduler(s Scheduler) CardOption {
	return func(c *Card) { c.sched = s }
}

// NewCard returns an inactive idle card. onDecide is called once, from the
// scheduler, when a swipe commits.
func NewCard(viewportWidth float64, onDecide func(Direction), opts ...CardOption) *Card {
	c := &Card{
		sched:         realScheduler{},
		onDecide:      onDecide,
		viewportWidth: viewportWidth,
		transition:    TransitionSpring,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Card) SetActive(active bool) {
	c.mu.Lock()
	c.active = active
	c.mu.Unlock()
}

func (c *Card) SetViewportWidth(w float64) {
	c.mu.Lock()
	c.viewportWidth = w
	c.mu.Unlock()
}

func (c *Card) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// PointerDown starts a drag at x. It reports whether the card accepted it.
func (c *Card) PointerDown(x float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active || (c.phase != PhaseIdle && c.phase != PhaseSettlingBack) {
		return false
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.phase = PhaseDragging
	c.startX = x - c.offsetX
	c.offsetY = 0
	c.transition = TransitionNone
	return true
}

// PointerMove tracks the pointer 1:1 horizontally.
func (c *Card) PointerMove(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active || c.phase != PhaseDragging {
		return
	}
	c.offsetX = x - c.startX
	c.offsetY = 0
}

// PointerUp ends the drag: past the threshold the card flies out and the
// decision fires after DecisionDelay, otherwise it springs back to center.
func (c *Card) PointerUp() Release {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active || c.phase != PhaseDragging {
		return Release{}
	}

	commit, dir := Classify(c.offsetX)
	if !commit {
		c.phase = PhaseSettlingBack
		c.transition = TransitionSpring
		c.offsetX, c.offsetY = 0, 0
		c.timer = c.sched.AfterFunc(SettleDuration, c.settled)
		return Release{}
	}

	sign := 1.0
	if dir == DirectionLeft {
		sign = -1
	}
	c.phase = PhaseFlyingOut
	c.transition = TransitionFlyOut
	c.offsetX = sign * (c.viewportWidth/2 + FlyOutMargin)
	c.offsetY += FlyOutDrop
	c.timer = c.sched.AfterFunc(DecisionDelay, func() {
		if c.onDecide != nil {
			c.onDecide(dir)
		}
	})
	return Release{Committed: true, Direction: dir}
}

// PointerCancel behaves like PointerUp.
func (c *Card) PointerCancel() Release { return c.PointerUp() }

func (c *Card) settled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseSettlingBack {
		c.phase = PhaseIdle
		c.timer = nil
	}
}

// Visual returns the current drawing parameters.
func (c *Card) Visual() Visual {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := Visual{
		Phase:      c.phase.String(),
		OffsetX:    c.offsetX,
		OffsetY:    c.offsetY,
		Rotation:   Rotation(c.offsetX),
		Transition: c.transition,
	}
	v.LikeOpacity, v.NopeOpacity = WatermarkOpacity(c.offsetX)
	return v
}
