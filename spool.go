package galton

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

const (
	ballMass = 1.0

	// spawnSpacingFactor spaces the batch grid relative to ball diameter.
	// A perfectly packed grid deadlocks the solver; the gap plus jitter
	// breaks the symmetry.
	spawnSpacingFactor = 1.2
	spawnJitterFactor  = 0.3 // jitter amplitude as a fraction of ball radius
)

// ball is one live ball entity. The spool is its exclusive owner; other
// components only read its body state or rewrite per-shape scalars.
type ball struct {
	body  *cp.Body
	shape *cp.Shape
	color BallColor
	tint  Color
}

// spool owns the pending color queue and the live ball population.
// dropIndex is the single source of truth for how many balls have been
// introduced; both drop models advance it and neither ever re-spawns a
// consumed entry.
type spool struct {
	queue     []BallColor
	dropIndex int
	balls     []*ball
	elapsedMs float64
}

// FlattenQueue expands ball definitions, in definition order, into the
// ordered color queue: each definition contributes Count contiguous entries.
// Order affects only the visual spawn-grid layout, never drop probability.
// Non-positive counts contribute nothing; all-zero definitions yield an
// empty queue.
func FlattenQueue(defs []BallDef) []BallColor {
	total := 0
	for _, d := range defs {
		if d.Count > 0 {
			total += d.Count
		}
	}
	queue := make([]BallColor, 0, total)
	for _, d := range defs {
		for i := 0; i < d.Count; i++ {
			queue = append(queue, d.Color)
		}
	}
	return queue
}

// setQueue replaces the pending queue and rewinds the drop index. Live balls
// are untouched; the caller decides whether to clear them first.
func (s *spool) setQueue(queue []BallColor) {
	s.queue = queue
	s.dropIndex = 0
	s.elapsedMs = 0
}

// spawnAll places every remaining queued ball at once in a row-major grid
// above the funnel, with bounded jitter per ball. Idempotent: entries below
// dropIndex are never spawned again, so a double invocation is a no-op.
// Returns the number of balls introduced.
func (s *spool) spawnAll(space *cp.Space, l Layout, cfg Config) int {
	spacing := cfg.BallRadius * 2 * spawnSpacingFactor
	cols := 1
	if spacing > 0 {
		cols = int(l.Width/spacing) - 2
		if cols < 1 {
			cols = 1
		}
	}
	gridLeft := (l.Width - float64(cols-1)*spacing) / 2

	spawned := 0
	for s.dropIndex < len(s.queue) {
		col := s.dropIndex % cols
		row := s.dropIndex / cols
		x := gridLeft + float64(col)*spacing
		y := l.FunnelTopY - cfg.BallRadius - float64(row)*spacing
		jitter := cfg.BallRadius * spawnJitterFactor
		x += (rand.Float64() - 0.5) * jitter
		y += (rand.Float64() - 0.5) * jitter
		s.addBallAt(space, cfg, x, y)
		s.dropIndex++
		spawned++
	}
	return spawned
}

// tickTimed advances the timed-drop clock and spawns one queued ball per
// elapsed DropIntervalMs at the neck center with small lateral jitter,
// stopping when the queue is exhausted. A zero interval degrades to one
// ball per tick. Returns the number of balls introduced this tick.
func (s *spool) tickTimed(space *cp.Space, l Layout, cfg Config, dtMs float64) int {
	if s.dropIndex >= len(s.queue) {
		return 0
	}
	spawned := 0
	if cfg.DropIntervalMs <= 0 {
		s.spawnTimedOne(space, l, cfg)
		return 1
	}
	s.elapsedMs += dtMs
	for s.elapsedMs >= cfg.DropIntervalMs && s.dropIndex < len(s.queue) {
		s.elapsedMs -= cfg.DropIntervalMs
		s.spawnTimedOne(space, l, cfg)
		spawned++
	}
	return spawned
}

func (s *spool) spawnTimedOne(space *cp.Space, l Layout, cfg Config) {
	lateral := (rand.Float64() - 0.5) * l.NeckHalfGap
	x := l.Width/2 + lateral
	y := l.FunnelTopY - cfg.BallRadius*2
	s.addBallAt(space, cfg, x, y)
	s.dropIndex++
}

// addBallAt creates the dynamic body for the next queued color at (x, y).
// Restitution starts at zero so a slightly overlapping spawn resolves by
// gentle push-out instead of an explosion; the zone tuner takes over from
// the first tick.
func (s *spool) addBallAt(space *cp.Space, cfg Config, x, y float64) *ball {
	c := s.queue[s.dropIndex]
	moment := cp.MomentForCircle(ballMass, 0, cfg.BallRadius, cp.Vector{})
	body := space.AddBody(cp.NewBody(ballMass, moment))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := space.AddShape(cp.NewCircle(body, cfg.BallRadius, cp.Vector{}))
	shape.SetElasticity(0)
	shape.SetFriction(cfg.BallFriction)
	b := &ball{body: body, shape: shape, color: c, tint: c.RGBA()}
	s.balls = append(s.balls, b)
	return b
}

// wakeAbove activates every sleeping ball above the given Y. Sleep suspends
// collision response, so balls resting on a newly-opened gate would hang in
// the air without this.
func (s *spool) wakeAbove(y float64) {
	for _, b := range s.balls {
		if b.body.IsSleeping() && b.body.Position().Y < y {
			b.body.Activate()
		}
	}
}

// clear removes every live ball from the space and empties the queue.
func (s *spool) clear(space *cp.Space) {
	for _, b := range s.balls {
		space.RemoveShape(b.shape)
		space.RemoveBody(b.body)
	}
	s.balls = nil
	s.queue = nil
	s.dropIndex = 0
	s.elapsedMs = 0
}
