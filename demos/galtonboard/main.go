// galtonboard is an interactive Galton board. F fills the hopper, space
// toggles the gate, R resets, and the arrow keys change the row and bucket
// counts. The window is resizable; the engine coalesces resize events and
// rebuilds the board once per frame at most.
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/galton"
)

const (
	windowTitle  = "Galton — Board Demo"
	startW       = 900
	startH       = 600
	ballsPerFill = 200

	panelHeight = 72.0
	panelSlide  = 0.6 // seconds
)

var palette = []galton.BallColor{
	{ID: "coral", Hex: "#e8604c", Name: "Coral"},
	{ID: "sky", Hex: "#4ca3e8", Name: "Sky"},
	{ID: "gold", Hex: "#e8c14c", Name: "Gold"},
}

type game struct {
	sim      *galton.Simulation
	renderer *galton.Renderer
	cfg      galton.Config

	width, height int

	// Results panel slides in from the top once every ball has settled.
	panel    *gween.Tween
	panelY   float32
	complete bool
}

func (g *game) fill() {
	defs := make([]galton.BallDef, len(palette))
	per := ballsPerFill / len(palette)
	for i, c := range palette {
		defs[i] = galton.BallDef{Color: c, Count: per}
	}
	g.sim.Fill(defs)
	g.dismissPanel()
}

func (g *game) dismissPanel() {
	g.complete = false
	g.panel = nil
	g.panelY = -panelHeight
}

func (g *game) reconfigure(rows, buckets int) {
	g.cfg.RowCount = rows
	g.cfg.BucketCount = buckets
	g.sim.Reconfigure(g.cfg)
	g.cfg = g.sim.Config() // pick up clamping
	g.dismissPanel()
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.fill()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.sim.SetGate(!g.sim.GateOpen())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.sim.Reset()
		g.dismissPanel()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.reconfigure(g.cfg.RowCount+1, g.cfg.BucketCount)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.reconfigure(g.cfg.RowCount-1, g.cfg.BucketCount)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.reconfigure(g.cfg.RowCount, g.cfg.BucketCount+1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.reconfigure(g.cfg.RowCount, g.cfg.BucketCount-1)
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.sim.Tick(dt)

	if g.sim.Complete() && !g.complete {
		g.complete = true
		g.panel = gween.New(-panelHeight, 16, panelSlide, ease.OutQuad)
	}
	if g.panel != nil {
		y, done := g.panel.Update(float32(dt))
		g.panelY = y
		if done {
			g.panel = nil
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	g.renderer.Draw(screen, snap)

	hud := fmt.Sprintf("F fill  space gate(%v)  R reset  arrows rows/buckets (%d x %d)\nballs %d/%d",
		snap.GateOpen, g.cfg.RowCount, g.cfg.BucketCount, snap.Dropped, snap.QueueLen)
	ebitenutil.DebugPrintAt(screen, hud, 8, int(snap.Height)-36)

	if g.complete || g.panel != nil {
		g.drawPanel(screen, snap)
	}
}

func (g *game) drawPanel(screen *ebiten.Image, snap galton.Snapshot) {
	w := float32(snap.Width) - 32
	vector.DrawFilledRect(screen, 16, g.panelY, w, panelHeight,
		color.NRGBA{A: 0x99}, false)

	line := "settled!  bins:"
	for _, c := range snap.BinCounts {
		line += fmt.Sprintf(" %d", c)
	}
	ebitenutil.DebugPrintAt(screen, line, 24, int(g.panelY)+8)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.sim.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func main() {
	cfg := galton.DefaultConfig()
	g := &game{
		sim:      galton.NewSimulation(startW, startH, cfg),
		renderer: galton.NewRenderer(),
		cfg:      cfg,
		width:    startW,
		height:   startH,
		panelY:   -panelHeight,
	}
	g.fill()

	ebiten.SetWindowSize(startW, startH)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
