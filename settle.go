package galton

import "math"

const (
	// Settle thresholds, per second. At 60 ticks/s these correspond to
	// roughly 0.15 units/tick linear and 0.1 rad/tick angular.
	settleLinearSpeed  = 9.0
	settleAngularSpeed = 6.0
)

// ballSettled reports whether the ball has come to rest inside the bin band:
// low linear and angular speed, and past BinStartY.
func ballSettled(b *ball, l Layout) bool {
	p := b.body.Position()
	if p.Y <= l.BinStartY {
		return false
	}
	v := b.body.Velocity()
	if math.Hypot(v.X, v.Y) >= settleLinearSpeed {
		return false
	}
	return math.Abs(b.body.AngularVelocity()) < settleAngularSpeed
}

// settleDetector fires the completion signal exactly once per settling event.
// It re-arms only when new balls are introduced or the board is reset.
type settleDetector struct {
	fired bool
}

func (d *settleDetector) rearm() {
	d.fired = false
}

// check evaluates completion: every queued ball has been introduced
// (dropped == queue length) and every live ball is settled. The spawned-count
// guard keeps a half-introduced batch — or a timed drop still in progress —
// from firing early no matter how still the live balls are. Returns true on
// the firing edge only.
func (d *settleDetector) check(balls []*ball, dropped, queueLen int, l Layout) bool {
	if d.fired || queueLen == 0 || dropped < queueLen {
		return false
	}
	for _, b := range balls {
		if !ballSettled(b, l) {
			return false
		}
	}
	d.fired = true
	return true
}
