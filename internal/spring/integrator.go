// Package spring animates a single axis toward a target with a damped
// harmonic oscillator, gated by a run/stop clock.
package spring

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// State is the live output of an integrator.
type State struct {
	Position float64
	Velocity float64
	Finished bool
}

// Integrator owns one axis' spring state and clock. It is not safe for
// concurrent use; it is stepped from the host's frame loop.
type Integrator struct {
	cfg    Config
	clock  Clock
	state  State
	target float64

	// harmonica coefficients are precomputed per time step.
	spring harmonica.Spring
	dt     float64
}

// NewIntegrator returns an idle integrator resting at zero.
func NewIntegrator(cfg Config) *Integrator {
	return &Integrator{cfg: cfg, state: State{Finished: true}}
}

// Run is called once per frame. When the clock is idle it arms a new run
// from value/velocity toward destination; while running, the arguments are
// ignored and the existing run continues. It then advances dt seconds and
// returns the position.
func (s *Integrator) Run(value, velocity, destination, dt float64) float64 {
	if !s.clock.Running() {
		s.state = State{Position: value, Velocity: velocity}
		s.target = destination
		s.clock.Start()
	}
	s.step(dt)
	if s.state.Finished {
		s.clock.Stop()
	}
	return s.state.Position
}

func (s *Integrator) step(dt float64) {
	if dt <= 0 || s.state.Finished {
		return
	}
	if dt != s.dt {
		s.spring = harmonica.NewSpring(dt, s.cfg.AngularFrequency(), s.cfg.DampingRatio())
		s.dt = dt
	}

	pos, vel := s.spring.Update(s.state.Position, s.state.Velocity, s.target)
	s.clock.advance(dt)

	if !finite(pos) || !finite(vel) {
		// overflowed: land on the target
		pos, vel = s.target, 0
	}

	overshot := s.cfg.OvershootClamping &&
		((vel > 0 && pos > s.target) || (vel < 0 && pos < s.target))
	resting := math.Abs(vel) < s.cfg.RestSpeedThreshold &&
		math.Abs(pos-s.target) < s.cfg.RestDisplacementThreshold

	if overshot || resting {
		pos, vel = s.target, 0
		s.state.Finished = true
	}
	s.state.Position = pos
	s.state.Velocity = vel
}

// Stop halts the current run, leaving the position where it is.
func (s *Integrator) Stop() {
	s.clock.Stop()
	s.state.Finished = true
	s.state.Velocity = 0
}

// Running reports whether the clock is running.
func (s *Integrator) Running() bool {
	return s.clock.Running()
}

// State returns the position, velocity and finished flag of the current run.
func (s *Integrator) State() State {
	return s.state
}

// Target returns the destination of the current or last run.
func (s *Integrator) Target() float64 {
	return s.target
}

// Clock returns a copy of the run clock.
func (s *Integrator) Clock() Clock {
	return s.clock
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
