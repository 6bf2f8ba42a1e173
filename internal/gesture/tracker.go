// Package gesture records the latest pan gesture sample for the swipe
// controller.
package gesture

import (
	"errors"
	"math"
)

// MaxMagnitude bounds every translation and velocity a sample may carry,
// in points and points per second.
const MaxMagnitude = 1e6

var (
	// ErrNonFinite is returned for samples carrying NaN or infinite values.
	ErrNonFinite = errors.New("gesture: non-finite sample")

	// ErrOutOfRange is returned for samples beyond MaxMagnitude.
	ErrOutOfRange = errors.New("gesture: sample out of range")
)

// Sample is one frame of pan input. Translations are relative to where the
// gesture began; VelocityX is in points per second.
type Sample struct {
	TranslationX float64
	TranslationY float64
	VelocityX    float64
	Phase        Phase
}

// Tracker holds the most recent accepted sample. It is the only place raw
// input enters the controller.
type Tracker struct {
	current Sample
}

// Record stores s as the current state. Non-finite or out-of-range samples
// are dropped and the previous state is kept.
func (t *Tracker) Record(s Sample) error {
	for _, v := range [...]float64{s.TranslationX, s.TranslationY, s.VelocityX} {
		if !finite(v) {
			return ErrNonFinite
		}
		if math.Abs(v) > MaxMagnitude {
			return ErrOutOfRange
		}
	}
	t.current = s
	return nil
}

// Current returns the last recorded sample.
func (t *Tracker) Current() Sample {
	return t.current
}

// Reset zeroes the translation and velocity and returns the phase to
// Undetermined.
func (t *Tracker) Reset() {
	t.current = Sample{}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
