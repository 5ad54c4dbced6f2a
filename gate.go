package galton

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// gateLerp is the exponential slide factor per tick. Sliding instead of
	// teleporting keeps the solver from injecting energy into balls resting
	// on the gate, and the geometric decay can never overshoot the target.
	gateLerp = 0.2

	// gateOverlap extends each bar past its seal line so the closed gate has
	// no single-pixel leak at the neck center or the neck walls.
	gateOverlap = 1.0

	// gateMargin is the extra clearance past one bar width when open.
	gateMargin = 4.0

	minGateHeight = 4.0
)

// gate is the pair of kinematic barrier bodies at the funnel neck exit.
// It holds a logical open/closed state; the bodies' positions continuously
// interpolate toward the target for that state.
type gate struct {
	left, right           *cp.Body
	leftShape, rightShape *cp.Shape

	width, height float64
	y             float64

	open                      bool
	leftClosedX, rightClosedX float64
	leftOpenX, rightOpenX     float64
}

func newGate(space *cp.Space, l Layout, cfg Config) *gate {
	g := &gate{
		width:  l.NeckHalfGap + 2*gateOverlap,
		height: math.Max(minGateHeight, cfg.BallRadius*0.8),
	}
	g.y = l.FunnelExitY + g.height/2
	centerX := l.Width / 2

	// Closed: the bars meet at the neck center, each overlapping slightly
	// into the neck wall on its own side. Open: slid outward by a full bar
	// width plus margin, guaranteed clear of the gap.
	g.leftClosedX = centerX + gateOverlap - g.width/2
	g.rightClosedX = centerX - gateOverlap + g.width/2
	g.leftOpenX = g.leftClosedX - (g.width + gateMargin)
	g.rightOpenX = g.rightClosedX + (g.width + gateMargin)

	g.left = space.AddBody(cp.NewKinematicBody())
	g.left.SetPosition(cp.Vector{X: g.leftClosedX, Y: g.y})
	g.leftShape = space.AddShape(cp.NewBox(g.left, g.width, g.height, 0))
	g.leftShape.SetElasticity(0)
	g.leftShape.SetFriction(staticFriction)

	g.right = space.AddBody(cp.NewKinematicBody())
	g.right.SetPosition(cp.Vector{X: g.rightClosedX, Y: g.y})
	g.rightShape = space.AddShape(cp.NewBox(g.right, g.width, g.height, 0))
	g.rightShape.SetElasticity(0)
	g.rightShape.SetFriction(staticFriction)

	return g
}

// setOpen flips the logical state. Returns true on a state edge; the caller
// is responsible for waking sleeping balls on the closed-to-open edge, since
// sleeping bodies would not notice the bars moving away.
func (g *gate) setOpen(open bool) bool {
	if g.open == open {
		return false
	}
	g.open = open
	return true
}

// step slides both bars one interpolation increment toward the current
// state's targets.
func (g *gate) step() {
	leftTarget, rightTarget := g.leftClosedX, g.rightClosedX
	if g.open {
		leftTarget, rightTarget = g.leftOpenX, g.rightOpenX
	}
	lp := g.left.Position()
	g.left.SetPosition(cp.Vector{X: lp.X + (leftTarget-lp.X)*gateLerp, Y: g.y})
	rp := g.right.Position()
	g.right.SetPosition(cp.Vector{X: rp.X + (rightTarget-rp.X)*gateLerp, Y: g.y})
}

// rects returns the live bar rectangles for the snapshot.
func (g *gate) rects() [2]Rect {
	lp := g.left.Position()
	rp := g.right.Position()
	return [2]Rect{
		{X: lp.X - g.width/2, Y: lp.Y - g.height/2, Width: g.width, Height: g.height},
		{X: rp.X - g.width/2, Y: rp.Y - g.height/2, Width: g.width, Height: g.height},
	}
}

func (g *gate) destroy(space *cp.Space) {
	space.RemoveShape(g.leftShape)
	space.RemoveShape(g.rightShape)
	space.RemoveBody(g.left)
	space.RemoveBody(g.right)
}
