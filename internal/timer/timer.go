// Package timer provides the CHIP-8's delay and sound timers. Both
// count down once per tick, at 60 Hz, until they reach zero.
package timer

// Rate is the frequency, in Hz, that the timers are ticked at.
const Rate = 60

// Controller is a timer controller, holding the delay and
// sound timers.
type Controller struct {
	// Delay is read and written by programs to pace themselves.
	Delay uint8
	// Sound produces a tone for as long as it is above zero.
	Sound uint8
}

// NewController returns a new timer controller with both timers stopped.
func NewController() *Controller {
	return &Controller{}
}

// Tick decrements both timers, stopping at zero.
func (c *Controller) Tick() {
	if c.Delay > 0 {
		c.Delay--
	}
	if c.Sound > 0 {
		c.Sound--
	}
}

// Tone reports whether the sound timer is active.
func (c *Controller) Tone() bool {
	return c.Sound > 0
}
