package frontend

import "time"

// Controller owns the single frame session. Every Start cancels the previous
// chain first, so at most one frame callback is ever pending for the driver.
type Controller struct {
	driver *Driver
	now    func() time.Time
}

// NewController returns a controller for driver. now defaults to time.Now.
func NewController(driver *Driver, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{driver: driver, now: now}
}

// Start cancels any running session and starts a new one.
func (c *Controller) Start() {
	c.driver.cancel()
	c.driver.start(c.now())
}

// Stop cancels the running session. It is safe to call when idle.
func (c *Controller) Stop() {
	c.driver.cancel()
}

// Running reports whether a session is active.
func (c *Controller) Running() bool {
	return c.driver.Running()
}
