package galton

import "testing"

func TestPolyFanCounts(t *testing.T) {
	quad := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	verts, inds := polyFan(quad, ColorWhite)
	if len(verts) != 4 {
		t.Errorf("verts = %d, want 4", len(verts))
	}
	if len(inds) != 6 {
		t.Errorf("inds = %d, want 6", len(inds))
	}
	// Fan triangulation: every triangle anchors at vertex 0.
	for i := 0; i < len(inds); i += 3 {
		if inds[i] != 0 {
			t.Errorf("triangle %d anchor = %d, want 0", i/3, inds[i])
		}
	}
}

func TestPolyFanDegenerate(t *testing.T) {
	for _, pts := range [][]Vec2{nil, {{0, 0}}, {{0, 0}, {1, 1}}} {
		verts, inds := polyFan(pts, ColorWhite)
		if verts != nil || inds != nil {
			t.Errorf("polyFan(%d points) should return nil", len(pts))
		}
	}
}

func TestPolyFanPremultipliesColor(t *testing.T) {
	tri := []Vec2{{0, 0}, {10, 0}, {5, 10}}
	c := Color{R: 1, G: 0.5, B: 0.25, A: 0.5}
	verts, _ := polyFan(tri, c)

	for i, v := range verts {
		if v.ColorA != 0.5 {
			t.Errorf("vert %d alpha = %v, want 0.5", i, v.ColorA)
		}
		if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0.125 {
			t.Errorf("vert %d premultiplied rgb = (%v, %v, %v)", i, v.ColorR, v.ColorG, v.ColorB)
		}
	}
}

func TestPolyFanVertexPositions(t *testing.T) {
	tri := []Vec2{{1, 2}, {3, 4}, {5, 6}}
	verts, _ := polyFan(tri, ColorWhite)
	for i, p := range tri {
		if float64(verts[i].DstX) != p.X || float64(verts[i].DstY) != p.Y {
			t.Errorf("vert %d = (%v, %v), want (%v, %v)",
				i, verts[i].DstX, verts[i].DstY, p.X, p.Y)
		}
	}
}
