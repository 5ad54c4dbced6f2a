package galton

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer draws Snapshot values to an ebiten image. It holds only style
// state; all geometry comes from the snapshot, so one renderer can serve any
// number of simulations.
type Renderer struct {
	Background   Color
	WallColor    Color
	PegColor     Color
	DividerColor Color
	GateColor    Color

	white *ebiten.Image
}

// NewRenderer returns a renderer with the default dark palette.
func NewRenderer() *Renderer {
	return &Renderer{
		Background:   Color{R: 0.06, G: 0.06, B: 0.09, A: 1},
		WallColor:    Color{R: 0.32, G: 0.34, B: 0.42, A: 1},
		PegColor:     Color{R: 0.78, G: 0.80, B: 0.86, A: 1},
		DividerColor: Color{R: 0.45, G: 0.47, B: 0.55, A: 1},
		GateColor:    Color{R: 0.92, G: 0.60, B: 0.20, A: 1},
	}
}

// Draw renders one frame: background, statics, gate bars, then balls.
func (r *Renderer) Draw(dst *ebiten.Image, snap Snapshot) {
	dst.Fill(r.Background.toRGBA())

	for _, s := range snap.Statics {
		switch s.Kind {
		case StaticFunnelWall:
			r.fillPoly(dst, s.Poly, r.WallColor)
		case StaticPeg:
			vector.DrawFilledCircle(dst,
				float32(s.Center.X), float32(s.Center.Y), float32(s.Radius),
				r.PegColor.toRGBA(), true)
		case StaticDivider:
			r.fillRect(dst, s.Rect, r.DividerColor)
		case StaticWall, StaticFloor:
			r.fillRect(dst, s.Rect, r.WallColor)
		}
	}

	for _, g := range snap.GateRects {
		r.fillRect(dst, g, r.GateColor)
	}

	for _, b := range snap.Balls {
		vector.DrawFilledCircle(dst,
			float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius),
			b.Color.toRGBA(), true)
	}
}

func (r *Renderer) fillRect(dst *ebiten.Image, rect Rect, c Color) {
	vector.DrawFilledRect(dst,
		float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height),
		c.toRGBA(), false)
}

// fillPoly draws a convex polygon as a triangle fan against a shared 1x1
// white pixel, with the tint premultiplied into the vertex colors.
func (r *Renderer) fillPoly(dst *ebiten.Image, pts []Vec2, c Color) {
	verts, inds := polyFan(pts, c)
	if verts == nil {
		return
	}
	dst.DrawTriangles(verts, inds, r.ensureWhite(), &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (r *Renderer) ensureWhite() *ebiten.Image {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	return r.white
}

// polyFan generates fan-triangulated vertices and indices for a convex
// polygon: N vertices, 3*(N-2) indices. Returns nil for fewer than 3 points.
func polyFan(pts []Vec2, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(pts)
	if n < 3 {
		return nil, nil
	}
	cr := float32(c.R * c.A)
	cg := float32(c.G * c.A)
	cb := float32(c.B * c.A)
	ca := float32(c.A)

	verts := make([]ebiten.Vertex, n)
	for i, p := range pts {
		verts[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
	inds := make([]uint16, 0, (n-2)*3)
	for i := 2; i < n; i++ {
		inds = append(inds, 0, uint16(i-1), uint16(i))
	}
	return verts, inds
}
