package galton

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the fallback ball tint when a hex string fails to parse.
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the
// API. The coordinate system has its origin at the top-left, with Y increasing
// downward.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Zone is one of the three vertical bands of the board. Each zone carries its
// own restitution regime: damped in the funnel and bins, the configured value
// in the peg field where bounce drives lateral dispersion.
type Zone uint8

const (
	ZoneFunnel   Zone = iota // above the funnel exit
	ZonePegField             // between funnel exit and bin band
	ZoneBin                  // below the top of the bin band
)

// String returns the zone name for debug output.
func (z Zone) String() string {
	switch z {
	case ZoneFunnel:
		return "funnel"
	case ZonePegField:
		return "pegfield"
	case ZoneBin:
		return "bin"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of simulation event.
type EventType uint8

const (
	EventBallsSpawned EventType = iota // balls were introduced into the space
	EventGateOpened                    // gate logical state flipped to open
	EventGateClosed                    // gate logical state flipped to closed
	EventAllSettled                    // every queued ball spawned and settled
)

// SimulationEvent carries event data for the optional sink.
type SimulationEvent struct {
	Type EventType
	// Count is the number of balls introduced by this spawn batch
	// (EventBallsSpawned) or the settled total (EventAllSettled).
	Count int
	// Dropped is the total number of balls introduced so far.
	Dropped int
}

// EventSink is the interface for optional event integration.
// When set on a Simulation, spawn/gate/completion events are forwarded to it.
// The galton/ecs submodule provides a Donburi-backed sink.
type EventSink interface {
	EmitEvent(event SimulationEvent)
}

// BallColor describes one color class of balls.
type BallColor struct {
	ID   string // unique key, used for bin attribution and stable identity
	Hex  string // "#RRGGBB" or "#RRGGBBAA"
	Name string // display name
}

// RGBA parses the Hex field. Malformed strings yield ColorWhite rather than
// an error; a wrongly-tinted ball is preferable to a crashed frame.
func (b BallColor) RGBA() Color {
	c, ok := parseHexColor(b.Hex)
	if !ok {
		return ColorWhite
	}
	return c
}

// BallDef pairs a color with how many balls of that color to queue.
type BallDef struct {
	Color BallColor
	Count int
}

func parseHexColor(s string) (Color, bool) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, false
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, false
	}
	var v [4]float64
	v[3] = 1
	for i := 0; i*2 < len(hex); i++ {
		hi, ok1 := hexNibble(hex[i*2])
		lo, ok2 := hexNibble(hex[i*2+1])
		if !ok1 || !ok2 {
			return Color{}, false
		}
		v[i] = float64(hi*16+lo) / 255
	}
	return Color{R: v[0], G: v[1], B: v[2], A: v[3]}, true
}

func hexNibble(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
