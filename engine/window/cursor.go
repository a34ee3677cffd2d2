package window

// cursorTracker turns absolute cursor positions into per-event motion.
// The first position after a reset produces no motion so grabbing the
// look button never jumps the camera.
type cursorTracker struct {
	x, y  float64
	valid bool
}

// move records a new position and returns the motion since the previous one.
func (c *cursorTracker) move(x, y float64) (dx, dy float64, ok bool) {
	if !c.valid {
		c.x, c.y, c.valid = x, y, true
		return 0, 0, false
	}
	dx, dy = x-c.x, y-c.y
	c.x, c.y = x, y
	return dx, dy, true
}

func (c *cursorTracker) reset() {
	c.valid = false
}
