package galton

import "github.com/jakecoffman/cp"

const (
	gravityY         = 600.0
	solverIterations = 12
	sleepThreshold   = 0.5 // seconds of stillness before a body sleeps
)

// Simulation is the engine root. It exclusively owns the physics space, the
// static board, the ball population, the gate, and the settling detector.
// All state changes go through the explicit command methods; there is no
// reactive machinery.
//
// Simulation is not safe for concurrent use. The intended model is one
// cooperative tick per frame, with structural mutations confined to the
// Reset/Fill/SetGate commands and the start of Tick.
type Simulation struct {
	cfg    Config
	width  float64
	height float64

	space  *cp.Space
	layout Layout
	board  *board
	spool  spool
	settle settleDetector

	sink EventSink

	pendingW, pendingH float64
	resizePending      bool
}

// BallSnapshot is the read-only per-ball state exposed to renderers.
type BallSnapshot struct {
	Pos      Vec2
	Radius   float64
	Color    Color
	ColorID  string
	Sleeping bool
}

// Snapshot is a read-only view of the whole simulation for one frame.
// Renderers consume it; mutating it has no effect on the engine.
type Snapshot struct {
	Width, Height float64
	Layout        Layout
	Statics       []StaticShape
	GateRects     [2]Rect
	GateOpen      bool
	Balls         []BallSnapshot
	BinCounts     []int
	Dropped       int
	QueueLen      int
	Complete      bool
}

// NewSimulation creates a simulation for the given canvas size. The config
// is normalized at this boundary; out-of-range values are clamped, never
// rejected with a crash.
func NewSimulation(width, height float64, cfg Config) *Simulation {
	space := cp.NewSpace()
	space.Iterations = solverIterations
	space.SetGravity(cp.Vector{X: 0, Y: gravityY})
	space.SleepTimeThreshold = sleepThreshold

	s := &Simulation{
		cfg:    cfg.normalized(),
		width:  width,
		height: height,
		space:  space,
	}
	s.layout = ComputeLayout(width, height, s.cfg)
	s.board = buildBoard(space, s.layout, s.cfg)
	return s
}

// SetEventSink installs the event sink. Pass nil to disable event delivery.
func (s *Simulation) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Config returns the active (normalized) configuration.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Layout returns the current derived geometry.
func (s *Simulation) Layout() Layout {
	return s.layout
}

// Reset clears every ball, tears down the static set, and rebuilds the board
// from the current canvas size and config. The teardown and rebuild are one
// atomic command: nothing can observe a half-built board or hold a stale
// body reference afterward.
func (s *Simulation) Reset() {
	s.board.destroy(s.space)
	s.spool.clear(s.space)
	s.settle.rearm()
	s.layout = ComputeLayout(s.width, s.height, s.cfg)
	s.board = buildBoard(s.space, s.layout, s.cfg)
}

// Reconfigure replaces the config and performs a full Reset. Incremental
// patching is deliberately not supported; see Reset.
func (s *Simulation) Reconfigure(cfg Config) {
	s.cfg = cfg.normalized()
	s.Reset()
}

// Resize records a new canvas size. The rebuild is coalesced: repeated calls
// between ticks overwrite each other and a single Reset runs at the start of
// the next Tick, so a dragged window edge does not thrash the static set.
func (s *Simulation) Resize(width, height float64) {
	s.pendingW = width
	s.pendingH = height
	s.resizePending = true
}

// Fill replaces the ball queue with the flattened definitions. Any previous
// balls are cleared first. In batch mode the entire queue spawns immediately
// in a grid above the funnel, awaiting gate release; in timed mode balls
// trickle in on subsequent ticks.
func (s *Simulation) Fill(defs []BallDef) {
	s.spool.clear(s.space)
	s.spool.setQueue(FlattenQueue(defs))
	s.settle.rearm()
	if s.cfg.DropMode == DropBatch {
		if n := s.spool.spawnAll(s.space, s.layout, s.cfg); n > 0 {
			s.emit(SimulationEvent{Type: EventBallsSpawned, Count: n, Dropped: s.spool.dropIndex})
		}
	}
}

// SetGate commands the gate's logical state. The bars slide over the
// following ticks. On the closed-to-open edge every sleeping ball above the
// bin band is woken, since sleeping bodies would not react to the bars
// moving away.
func (s *Simulation) SetGate(open bool) {
	if !s.board.gate.setOpen(open) {
		return
	}
	if open {
		s.spool.wakeAbove(s.layout.BinStartY)
		s.emit(SimulationEvent{Type: EventGateOpened, Dropped: s.spool.dropIndex})
	} else {
		s.emit(SimulationEvent{Type: EventGateClosed, Dropped: s.spool.dropIndex})
	}
}

// GateOpen returns the gate's logical state.
func (s *Simulation) GateOpen() bool {
	return s.board.gate.open
}

// Tick advances the simulation by dt seconds: applies a pending resize,
// performs timed spawns, slides the gate, retunes every ball for its zone,
// steps the solver, and evaluates settling. Structural mutation happens only
// before the solver step, never during it.
func (s *Simulation) Tick(dt float64) {
	if s.resizePending {
		s.width, s.height = s.pendingW, s.pendingH
		s.resizePending = false
		s.Reset()
	}

	if s.cfg.DropMode == DropTimed {
		if n := s.spool.tickTimed(s.space, s.layout, s.cfg, dt*1000); n > 0 {
			s.emit(SimulationEvent{Type: EventBallsSpawned, Count: n, Dropped: s.spool.dropIndex})
		}
	}

	s.board.gate.step()
	retuneBalls(s.spool.balls, s.layout, s.cfg)
	s.space.Step(dt)

	if s.settle.check(s.spool.balls, s.spool.dropIndex, len(s.spool.queue), s.layout) {
		s.emit(SimulationEvent{Type: EventAllSettled, Count: len(s.spool.balls), Dropped: s.spool.dropIndex})
	}
}

// Complete reports whether the current fill has fully settled. Latched until
// the next Fill or Reset.
func (s *Simulation) Complete() bool {
	return s.settle.fired
}

// BinCounts buckets every ball inside the bin band by horizontal position.
func (s *Simulation) BinCounts() []int {
	counts := make([]int, s.cfg.BucketCount)
	for _, b := range s.spool.balls {
		p := b.body.Position()
		if p.Y > s.layout.BinStartY {
			counts[s.layout.BinIndex(p.X, s.cfg.BucketCount)]++
		}
	}
	return counts
}

// Snapshot captures the frame's render state. The returned value shares no
// mutable state with the engine.
func (s *Simulation) Snapshot() Snapshot {
	balls := make([]BallSnapshot, len(s.spool.balls))
	for i, b := range s.spool.balls {
		p := b.body.Position()
		balls[i] = BallSnapshot{
			Pos:      Vec2{X: p.X, Y: p.Y},
			Radius:   s.cfg.BallRadius,
			Color:    b.tint,
			ColorID:  b.color.ID,
			Sleeping: b.body.IsSleeping(),
		}
	}
	return Snapshot{
		Width:     s.width,
		Height:    s.height,
		Layout:    s.layout,
		Statics:   s.board.shapes,
		GateRects: s.board.gate.rects(),
		GateOpen:  s.board.gate.open,
		Balls:     balls,
		BinCounts: s.BinCounts(),
		Dropped:   s.spool.dropIndex,
		QueueLen:  len(s.spool.queue),
		Complete:  s.settle.fired,
	}
}

func (s *Simulation) emit(e SimulationEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}
