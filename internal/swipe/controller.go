// Package swipe turns a pan gesture stream into card motion and discrete
// accept/reject decisions.
//
// Controller is stepped once per display frame. While the finger is down the
// card follows the gesture 1:1; once released, one spring per axis carries
// it either back to center or off-screen, and a swipe outcome is reported on
// the frame the horizontal spring comes to rest away from center.
package swipe

import (
	"errors"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/olivier-w/swipe/internal/deck"
	"github.com/olivier-w/swipe/internal/gesture"
	"github.com/olivier-w/swipe/internal/spring"
)

// ErrExhausted is returned when input arrives for an empty deck.
var ErrExhausted = errors.New("swipe: deck is empty")

// State is the controller's position in the drag/release cycle.
type State int

const (
	Idle State = iota
	Dragging
	Releasing
	Settled
	Triggered
	Exhausted
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Releasing:
		return "releasing"
	case Settled:
		return "settled"
	case Triggered:
		return "triggered"
	case Exhausted:
		return "exhausted"
	default:
		return "idle"
	}
}

// Config sizes the viewport (in points) and tunes the decision and springs.
type Config struct {
	Width             float64
	Height            float64
	Tilt              float64
	VelocityThreshold float64
	Spring            spring.Config
}

// DefaultConfig returns a Config for a width x height viewport.
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:             width,
		Height:            height,
		Tilt:              DefaultTilt,
		VelocityThreshold: DefaultVelocityThreshold,
		Spring:            spring.DefaultConfig(),
	}
}

// Outcome is reported once per completed swipe.
type Outcome struct {
	Direction deck.Direction
	Profile   deck.Profile
}

// Frame is everything the renderer needs for one display frame.
type Frame struct {
	State     State
	Transform Transform
	Opacity   Opacity
	Rotation  float64
	Top       *deck.Profile
	Swiped    *Outcome
}

// Controller owns the gesture state, the two axis springs and the deck.
type Controller struct {
	cfg    Config
	policy Policy
	deck   *deck.Deck
	clock  clockwork.Clock
	log    *zap.Logger

	tracker gesture.Tracker
	x, y    *spring.Integrator

	// origin carries a card grabbed mid-flight into the new drag.
	originX, originY       float64
	translateX, translateY float64
	releasing              bool
}

// NewController mounts a controller over d. A nil logger disables logging.
func NewController(cfg Config, d *deck.Deck, clock clockwork.Clock, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		cfg:   cfg,
		deck:  d,
		clock: clock,
		log:   log,
	}
	c.policy = Policy{
		Extent:            ScreenExtent(cfg.Width, cfg.Height, cfg.Tilt),
		VelocityThreshold: cfg.VelocityThreshold,
	}
	c.init()
	return c
}

// init arms fresh springs and zeroes the gesture for the current head.
func (c *Controller) init() {
	c.tracker.Reset()
	c.x = spring.NewIntegrator(c.cfg.Spring)
	c.y = spring.NewIntegrator(c.cfg.Spring)
	c.originX, c.originY = 0, 0
	c.translateX, c.translateY = 0, 0
	c.releasing = false
}

// SetViewport resizes the viewport. A run already in flight keeps its target.
func (c *Controller) SetViewport(width, height float64) {
	c.cfg.Width = width
	c.cfg.Height = height
	c.policy.Extent = ScreenExtent(width, height, c.cfg.Tilt)
}

// Extent returns the off-screen travel distance for the current viewport.
func (c *Controller) Extent() float64 {
	return c.policy.Extent
}

// Deck returns the deck the controller removes swiped profiles from.
func (c *Controller) Deck() *deck.Deck {
	return c.deck
}

// Ingest records one gesture sample. It must be called before Step within a
// frame. Samples for an empty deck return ErrExhausted; non-finite samples
// return gesture.ErrNonFinite, and samples beyond gesture.MaxMagnitude return
// gesture.ErrOutOfRange. All of these leave the state untouched.
func (c *Controller) Ingest(s gesture.Sample) error {
	if c.deck.Empty() {
		return ErrExhausted
	}
	prev := c.tracker.Current().Phase
	if err := c.tracker.Record(s); err != nil {
		c.log.Debug("dropped gesture sample",
			zap.String("phase", s.Phase.String()),
			zap.Float64("translation_x", s.TranslationX),
			zap.Float64("velocity_x", s.VelocityX))
		return err
	}
	if s.Phase == gesture.Began && (c.releasing || prev.Released()) {
		// grabbed while the springs own the card
		c.x.Stop()
		c.y.Stop()
		c.originX, c.originY = c.translateX, c.translateY
		c.releasing = false
	}
	return nil
}

// Step advances the controller by dt seconds and returns the frame to draw.
func (c *Controller) Step(dt float64) Frame {
	if c.deck.Empty() {
		return c.frame(Exhausted, nil)
	}

	s := c.tracker.Current()
	tx := c.originX + s.TranslationX
	ty := c.originY + s.TranslationY

	if !s.Phase.Released() {
		c.translateX, c.translateY = tx, ty
		state := Idle
		if s.Phase == gesture.Began || s.Phase == gesture.Active {
			state = Dragging
		}
		return c.frame(state, nil)
	}

	arming := !c.releasing
	c.releasing = true

	// Springs are only stepped while armed or running, so a settled axis is
	// never re-armed by the same release.
	xCalled := arming || c.x.Running()
	if xCalled {
		c.translateX = c.x.Run(tx, s.VelocityX, c.policy.Target(tx, s.VelocityX), dt)
	}
	if arming || c.y.Running() {
		c.translateY = c.y.Run(ty, 0, 0, dt)
	}

	xStopped := xCalled && !c.x.Running()
	if xStopped && c.translateX != 0 {
		return c.trigger()
	}
	if !c.x.Running() && !c.y.Running() {
		c.init()
		return c.frame(Settled, nil)
	}
	return c.frame(Releasing, nil)
}

func (c *Controller) trigger() Frame {
	dir := deck.Reject
	if c.translateX > 0 {
		dir = deck.Accept
	}
	profile, _ := c.deck.RemoveHead(dir, c.clock.Now())
	c.log.Info("swiped",
		zap.String("profile_id", profile.ID),
		zap.String("name", profile.Name),
		zap.String("direction", dir.String()),
		zap.Int("remaining", c.deck.Len()))

	c.init()
	return c.frame(Triggered, &Outcome{Direction: dir, Profile: profile})
}

func (c *Controller) frame(state State, out *Outcome) Frame {
	t, o, rot := present(c.translateX, c.translateY, c.cfg.Width, c.cfg.Tilt)
	return Frame{
		State:     state,
		Transform: t,
		Opacity:   o,
		Rotation:  rot,
		Top:       c.deck.Head(),
		Swiped:    out,
	}
}
