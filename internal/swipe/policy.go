package swipe

import "math"

const (
	// DefaultVelocityThreshold is the horizontal speed, in points per second,
	// a release must exceed in the direction of the drag to count as a swipe.
	DefaultVelocityThreshold = 30.0

	// DefaultTilt is the card rotation cap in degrees.
	DefaultTilt = 15.0
)

// Policy decides where a released card should travel.
type Policy struct {
	Extent            float64
	VelocityThreshold float64
}

// Target returns -Extent (reject), +Extent (accept) or 0 (snap back).
// Position and velocity must agree in sign; a fast flick against a small
// offset snaps back.
func (p Policy) Target(translationX, velocityX float64) float64 {
	switch {
	case translationX < 0 && velocityX < -p.VelocityThreshold:
		return -p.Extent
	case translationX > 0 && velocityX > p.VelocityThreshold:
		return p.Extent
	default:
		return 0
	}
}

// DecideTarget applies the default velocity threshold.
func DecideTarget(translationX, velocityX, screenExtent float64) float64 {
	return Policy{Extent: screenExtent, VelocityThreshold: DefaultVelocityThreshold}.Target(translationX, velocityX)
}

// ScreenExtent is how far a card tilted by up to tiltDegrees must travel to
// leave a width x height viewport with its corners fully off-screen.
func ScreenExtent(width, height, tiltDegrees float64) float64 {
	tilt := tiltDegrees * math.Pi / 180
	return width*math.Sin(math.Pi/2-tilt) + height*math.Sin(tilt)
}
