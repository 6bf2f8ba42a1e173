package spring

import "math"

// Config holds the tuning coefficients of a damped spring.
type Config struct {
	Damping                   float64
	Mass                      float64
	Stiffness                 float64
	OvershootClamping         bool
	RestSpeedThreshold        float64
	RestDisplacementThreshold float64
}

// DefaultConfig returns the card release spring: slightly underdamped so a
// card snapping back overshoots center once before resting.
func DefaultConfig() Config {
	return Config{
		Damping:                   7,
		Mass:                      1,
		Stiffness:                 121.6,
		RestSpeedThreshold:        0.001,
		RestDisplacementThreshold: 0.001,
	}
}

// AngularFrequency returns the undamped natural frequency sqrt(k/m) in rad/s.
func (c Config) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)).
func (c Config) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}
