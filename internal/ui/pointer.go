package ui

import (
	"time"

	"github.com/olivier-w/swipe/internal/gesture"
)

const (
	// velocitySmoothing weights the previous velocity estimate; terminal
	// mouse reports are coarse and bursty.
	velocitySmoothing = 0.6

	// A release this long after the last motion carries no fling.
	releaseStale = 80 * time.Millisecond
)

// pointer turns terminal mouse reports into pan gesture samples.
type pointer struct {
	active         bool
	startX, startY int
	lastX, lastY   int
	lastAt         time.Time
	velocityX      float64

	cellW, cellH float64
}

func newPointer(cellW, cellH float64) pointer {
	return pointer{cellW: cellW, cellH: cellH}
}

func (p *pointer) press(x, y int, at time.Time) gesture.Sample {
	p.active = true
	p.startX, p.startY = x, y
	p.lastX, p.lastY = x, y
	p.lastAt = at
	p.velocityX = 0
	return gesture.Sample{Phase: gesture.Began}
}

func (p *pointer) move(x, y int, at time.Time) gesture.Sample {
	dt := at.Sub(p.lastAt).Seconds()
	if dt <= 0 {
		dt = 0.001
	}
	instant := float64(x-p.lastX) * p.cellW / dt
	p.velocityX = instant*(1-velocitySmoothing) + p.velocityX*velocitySmoothing
	p.lastX, p.lastY = x, y
	p.lastAt = at
	return p.sample(gesture.Active)
}

func (p *pointer) release(at time.Time) gesture.Sample {
	if at.Sub(p.lastAt) > releaseStale {
		p.velocityX = 0
	}
	p.active = false
	return p.sample(gesture.End)
}

// cancel ends the drag without a fling.
func (p *pointer) cancel() gesture.Sample {
	p.active = false
	p.velocityX = 0
	return p.sample(gesture.Cancelled)
}

func (p *pointer) sample(phase gesture.Phase) gesture.Sample {
	return gesture.Sample{
		TranslationX: float64(p.lastX-p.startX) * p.cellW,
		TranslationY: float64(p.lastY-p.startY) * p.cellH,
		VelocityX:    p.velocityX,
		Phase:        phase,
	}
}

// flingScript synthesizes a quick horizontal drag of distance points
// released at velocity, one sample per frame.
func flingScript(distance, velocity float64) []gesture.Sample {
	const steps = 4
	script := []gesture.Sample{{Phase: gesture.Began}}
	for i := 1; i <= steps; i++ {
		script = append(script, gesture.Sample{
			TranslationX: distance * float64(i) / steps,
			VelocityX:    velocity,
			Phase:        gesture.Active,
		})
	}
	return append(script, gesture.Sample{
		TranslationX: distance,
		VelocityX:    velocity,
		Phase:        gesture.End,
	})
}
