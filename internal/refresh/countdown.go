package refresh

// Clock tracks seconds remaining until each timed panel's next automatic
// refresh. Manual panels have no entry and are never ticked. For a panel
// with interval n the value stays within [1, n/1s]: the interval timer
// normally resets it before it reaches 1, and if timers skew it pins at 1
// instead of going to zero.
type Clock struct {
	remaining map[PanelName]int
	initial   map[PanelName]int
}

// NewClock seeds a countdown entry for every enabled timed panel.
func NewClock(set PolicySet) *Clock {
	c := &Clock{
		remaining: make(map[PanelName]int),
		initial:   make(map[PanelName]int),
	}
	for _, p := range set.Timed() {
		c.initial[p.Name] = p.Seconds()
		c.remaining[p.Name] = p.Seconds()
	}
	return c
}

// Tick advances the shared 1-second timer: every tracked panel decrements
// by one but never drops below 1.
func (c *Clock) Tick() {
	for name, v := range c.remaining {
		if v > 1 {
			c.remaining[name] = v - 1
		}
	}
}

// Reset puts the panel back at its configured start value. No-op for manual
// or unknown panels.
func (c *Clock) Reset(name PanelName) {
	if start, ok := c.initial[name]; ok {
		c.remaining[name] = start
	}
}

// Remaining returns the panel's countdown; ok is false for manual or unknown
// panels, which have no countdown at all.
func (c *Clock) Remaining(name PanelName) (int, bool) {
	v, ok := c.remaining[name]
	return v, ok
}
