package spring

import "time"

// Clock gates whether a spring is animating and accumulates run time.
type Clock struct {
	running bool
	elapsed time.Duration
}

// Start begins a new run and resets the elapsed time.
func (c *Clock) Start() {
	c.running = true
	c.elapsed = 0
}

// Stop ends the current run.
func (c *Clock) Stop() {
	c.running = false
}

// Running reports whether a run is in progress.
func (c Clock) Running() bool {
	return c.running
}

// Elapsed returns the run time accumulated since the last Start.
func (c Clock) Elapsed() time.Duration {
	return c.elapsed
}

func (c *Clock) advance(dt float64) {
	c.elapsed += time.Duration(dt * float64(time.Second))
}
