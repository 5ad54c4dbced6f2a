package galton

import "github.com/jakecoffman/cp"

// StaticKind distinguishes the renderable statics the board emits.
type StaticKind uint8

const (
	StaticFunnelWall StaticKind = iota // convex quad, one per funnel side
	StaticPeg                          // lattice circle
	StaticDivider                      // vertical bin bar
	StaticWall                         // side wall
	StaticFloor                        // bottom slab
)

// StaticShape is a read-only description of one static collider, exposed to
// renderers via Snapshot. Exactly one of Poly, Center/Radius, or Rect is
// meaningful, depending on Kind.
type StaticShape struct {
	Kind   StaticKind
	Poly   []Vec2  // StaticFunnelWall
	Center Vec2    // StaticPeg
	Radius float64 // StaticPeg
	Rect   Rect    // StaticDivider, StaticWall, StaticFloor
}

const (
	wallThickness    = 16.0
	floorOverscan    = 48.0
	dividerWidth     = 4.0
	minDividerHeight = 1.0

	// Restitution multiplies per contact pair in Chipmunk, so pegs carry 1.0
	// and the ball's zone-tuned value alone decides the bounce. Funnel and
	// walls carry 0 so balls align instead of ricocheting.
	pegElasticity     = 1.0
	wallElasticity    = 0.0
	dividerElasticity = 0.1
	staticFriction    = 0.6
)

// board owns the static body set and the gate pair. Membership in the space
// is exclusively the board's: a rebuild removes every body it added and
// nothing else.
type board struct {
	bodies   []*cp.Body
	cpShapes []*cp.Shape
	shapes   []StaticShape
	gate     *gate
}

// buildBoard emits the full static body set into the space: funnel walls,
// gate pair, peg lattice, bin dividers, side walls, and floor, in that order.
// The caller must destroy any previous board first; the two calls together
// form the atomic clear-then-add replacement of the static set.
func buildBoard(space *cp.Space, l Layout, cfg Config) *board {
	cfg = cfg.normalized()
	b := &board{}
	centerX := l.Width / 2

	// Funnel walls: a single convex quad per side spanning slope and neck,
	// so there is no seam where a ball could wedge.
	if l.Width > 0 && l.FunnelExitY > l.FunnelTopY {
		left := []Vec2{
			{0, l.FunnelTopY},
			{centerX - l.NeckHalfGap, l.NeckTopY},
			{centerX - l.NeckHalfGap, l.FunnelExitY},
			{0, l.FunnelExitY},
		}
		right := []Vec2{
			{l.Width, l.FunnelTopY},
			{centerX + l.NeckHalfGap, l.NeckTopY},
			{centerX + l.NeckHalfGap, l.FunnelExitY},
			{l.Width, l.FunnelExitY},
		}
		b.addPoly(space, StaticFunnelWall, left)
		b.addPoly(space, StaticFunnelWall, right)
	}

	b.gate = newGate(space, l, cfg)

	// Peg lattice: triangular zig-zag centered under the neck. Row r carries
	// r+1 pegs, so consecutive rows are offset by half a spacing. Rows wider
	// than the canvas are clipped to [-margin, width+margin].
	clip := cfg.PegRadius
	for row := 0; row < cfg.RowCount; row++ {
		y := l.PegFieldStartY + float64(row)*l.PegSpacingY
		for k := 0; k <= row; k++ {
			x := centerX + (float64(k)-float64(row)/2)*l.SpacingX
			if x < -clip || x > l.Width+clip {
				continue
			}
			b.addPeg(space, Vec2{X: x, Y: y}, cfg.PegRadius)
		}
	}

	// Bin dividers: bucketCount+1 bars spanning the bin band. A degenerate
	// band still emits 1-unit bars so the geometry stays countable and no
	// collider goes missing.
	divH := l.BinHeight
	if divH < minDividerHeight {
		divH = minDividerHeight
	}
	for i := 0; i <= cfg.BucketCount; i++ {
		x := float64(i) * l.SpacingX
		b.addRect(space, StaticDivider,
			Rect{X: x - dividerWidth/2, Y: l.BinStartY, Width: dividerWidth, Height: divH},
			dividerElasticity)
	}

	// Side walls extend one canvas height above the top edge so a batch pile
	// spawned over the funnel cannot spill off the sides.
	top := -l.Height
	b.addRect(space, StaticWall,
		Rect{X: -wallThickness, Y: top, Width: wallThickness, Height: l.Height - top},
		wallElasticity)
	b.addRect(space, StaticWall,
		Rect{X: l.Width, Y: top, Width: wallThickness, Height: l.Height - top},
		wallElasticity)

	b.addRect(space, StaticFloor,
		Rect{X: -wallThickness, Y: l.Height, Width: l.Width + 2*wallThickness, Height: floorOverscan},
		0)

	return b
}

// destroy removes every body the board added, gate included. After destroy
// the board must not be used again.
func (b *board) destroy(space *cp.Space) {
	b.gate.destroy(space)
	for _, s := range b.cpShapes {
		space.RemoveShape(s)
	}
	for _, body := range b.bodies {
		space.RemoveBody(body)
	}
	b.bodies = nil
	b.cpShapes = nil
	b.shapes = nil
}

// pegRows groups the emitted pegs by row, in emission (top-to-bottom) order.
func (b *board) pegRows() [][]StaticShape {
	var rows [][]StaticShape
	for _, s := range b.shapes {
		if s.Kind != StaticPeg {
			continue
		}
		n := len(rows)
		if n == 0 || rows[n-1][0].Center.Y != s.Center.Y {
			rows = append(rows, []StaticShape{s})
		} else {
			rows[n-1] = append(rows[n-1], s)
		}
	}
	return rows
}

func (b *board) addPoly(space *cp.Space, kind StaticKind, pts []Vec2) {
	body := space.AddBody(cp.NewStaticBody())
	verts := make([]cp.Vector, len(pts))
	for i, p := range pts {
		verts[i] = cp.Vector{X: p.X, Y: p.Y}
	}
	shape := space.AddShape(cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0))
	shape.SetElasticity(wallElasticity)
	shape.SetFriction(staticFriction)
	b.bodies = append(b.bodies, body)
	b.cpShapes = append(b.cpShapes, shape)
	b.shapes = append(b.shapes, StaticShape{Kind: kind, Poly: pts})
}

func (b *board) addPeg(space *cp.Space, center Vec2, radius float64) {
	body := space.AddBody(cp.NewStaticBody())
	body.SetPosition(cp.Vector{X: center.X, Y: center.Y})
	shape := space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetElasticity(pegElasticity)
	shape.SetFriction(staticFriction)
	b.bodies = append(b.bodies, body)
	b.cpShapes = append(b.cpShapes, shape)
	b.shapes = append(b.shapes, StaticShape{Kind: StaticPeg, Center: center, Radius: radius})
}

func (b *board) addRect(space *cp.Space, kind StaticKind, r Rect, elasticity float64) {
	body := space.AddBody(cp.NewStaticBody())
	body.SetPosition(cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2})
	shape := space.AddShape(cp.NewBox(body, r.Width, r.Height, 0))
	shape.SetElasticity(elasticity)
	shape.SetFriction(staticFriction)
	b.bodies = append(b.bodies, body)
	b.cpShapes = append(b.cpShapes, shape)
	b.shapes = append(b.shapes, StaticShape{Kind: kind, Rect: r})
}
