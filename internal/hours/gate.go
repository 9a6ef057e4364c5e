// Package hours implements the service-hours gate. Outside the configured
// window every API operation is rejected at the boundary; the core is never
// invoked.
package hours

import "time"

// Gate decides availability from the hour of day: open-inclusive,
// close-exclusive. A gate open 7 to 22 accepts 07:00:00 through 21:59:59.
type Gate struct {
	openHour  int
	closeHour int
	now       func() time.Time
}

// NewGate creates a gate for the given window.
func NewGate(openHour, closeHour int) *Gate {
	return &Gate{openHour: openHour, closeHour: closeHour, now: time.Now}
}

// NewGateAt is like NewGate with an injected clock, for tests.
func NewGateAt(openHour, closeHour int, now func() time.Time) *Gate {
	return &Gate{openHour: openHour, closeHour: closeHour, now: now}
}

// Available reports whether t falls inside the service window.
func (g *Gate) Available(t time.Time) bool {
	h := t.Hour()
	return h >= g.openHour && h < g.closeHour
}

// AvailableNow reports availability at the current time.
func (g *Gate) AvailableNow() bool {
	return g.Available(g.now())
}

// Window returns the configured open and close hours.
func (g *Gate) Window() (open, close int) {
	return g.openHour, g.closeHour
}
