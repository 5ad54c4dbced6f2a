package galton

import (
	"testing"

	"github.com/jakecoffman/cp"
)

type recordingSink struct {
	events []SimulationEvent
}

func (r *recordingSink) EmitEvent(e SimulationEvent) {
	r.events = append(r.events, e)
}

func (r *recordingSink) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func TestSimulationFillBatch(t *testing.T) {
	sim := NewSimulation(900, 600, testConfig(8, 9))
	sim.Fill([]BallDef{
		{Color: red, Count: 3},
		{Color: blue, Count: 2},
	})

	snap := sim.Snapshot()
	if snap.QueueLen != 5 {
		t.Errorf("QueueLen = %d, want 5", snap.QueueLen)
	}
	if snap.Dropped != 5 {
		t.Errorf("Dropped = %d, want 5 (batch mode spawns at fill)", snap.Dropped)
	}
	if len(snap.Balls) != 5 {
		t.Fatalf("balls = %d, want 5", len(snap.Balls))
	}
	wantIDs := []string{"red", "red", "red", "blue", "blue"}
	for i, b := range snap.Balls {
		if b.ColorID != wantIDs[i] {
			t.Errorf("ball %d color = %q, want %q", i, b.ColorID, wantIDs[i])
		}
	}
}

func TestSimulationFillTimed(t *testing.T) {
	cfg := testConfig(8, 9)
	cfg.DropMode = DropTimed
	cfg.DropIntervalMs = 30
	sim := NewSimulation(900, 600, cfg)
	sim.Fill([]BallDef{{Color: red, Count: 4}})

	if snap := sim.Snapshot(); snap.Dropped != 0 {
		t.Fatalf("timed mode dropped %d at fill, want 0", snap.Dropped)
	}
	sim.SetGate(true)
	for i := 0; i < 20; i++ {
		sim.Tick(1.0 / 60.0)
	}
	if snap := sim.Snapshot(); snap.Dropped != 4 {
		t.Errorf("Dropped = %d after 333ms at 30ms interval, want 4", snap.Dropped)
	}
}

func TestSimulationBallsFall(t *testing.T) {
	sim := NewSimulation(900, 600, testConfig(8, 9))
	sim.Fill([]BallDef{{Color: red, Count: 20}})

	before := sim.Snapshot()
	sumBefore := 0.0
	for _, b := range before.Balls {
		sumBefore += b.Pos.Y
	}

	sim.SetGate(true)
	for i := 0; i < 120; i++ {
		sim.Tick(1.0 / 60.0)
	}

	after := sim.Snapshot()
	sumAfter := 0.0
	for _, b := range after.Balls {
		sumAfter += b.Pos.Y
	}
	if sumAfter <= sumBefore {
		t.Errorf("balls did not fall: mean y %v -> %v",
			sumBefore/20, sumAfter/20)
	}
}

func TestSimulationCompletion(t *testing.T) {
	cfg := testConfig(8, 9)
	sim := NewSimulation(900, 600, cfg)
	sink := &recordingSink{}
	sim.SetEventSink(sink)

	sim.Fill([]BallDef{{Color: red, Count: 5}})
	sim.Tick(1.0 / 60.0)
	if sim.Complete() {
		t.Fatal("complete while balls are still above the board")
	}

	// Park every ball on the floor, one per bucket, and let the solver
	// cancel the residual gravity impulse against the floor contact.
	l := sim.Layout()
	for i, b := range sim.spool.balls {
		x := (float64(i) + 0.5) * l.SpacingX
		b.body.SetPosition(cp.Vector{X: x, Y: l.Height - cfg.BallRadius})
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
	}
	for i := 0; i < 5; i++ {
		sim.Tick(1.0 / 60.0)
	}

	if !sim.Complete() {
		t.Fatal("expected completion with all balls resting in bins")
	}
	if got := sink.count(EventAllSettled); got != 1 {
		t.Errorf("EventAllSettled fired %d times, want exactly 1", got)
	}

	counts := sim.BinCounts()
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != 5 {
		t.Errorf("bin counts sum = %d, want 5 (counts: %v)", total, counts)
	}
}

func TestSimulationGateEvents(t *testing.T) {
	sim := NewSimulation(900, 600, testConfig(8, 9))
	sink := &recordingSink{}
	sim.SetEventSink(sink)

	sim.SetGate(true)
	sim.SetGate(true) // no edge
	sim.SetGate(false)
	sim.SetGate(false) // no edge

	if got := sink.count(EventGateOpened); got != 1 {
		t.Errorf("EventGateOpened = %d, want 1", got)
	}
	if got := sink.count(EventGateClosed); got != 1 {
		t.Errorf("EventGateClosed = %d, want 1", got)
	}
	if sim.GateOpen() {
		t.Error("gate should be closed")
	}
}

func TestSimulationResizeCoalesced(t *testing.T) {
	sim := NewSimulation(900, 600, testConfig(8, 9))
	sim.Fill([]BallDef{{Color: red, Count: 10}})

	sim.Resize(800, 500)
	sim.Resize(1000, 700)
	if got := sim.Layout().Width; got != 900 {
		t.Fatalf("layout rebuilt before tick: width = %v", got)
	}

	sim.Tick(1.0 / 60.0)
	if got := sim.Layout().Width; got != 1000 {
		t.Errorf("layout width = %v, want 1000 (only the last resize applies)", got)
	}

	// The rebuild is a full teardown: balls, queue, and drop progress all
	// start over. A fresh Fill begins the next run.
	snap := sim.Snapshot()
	if got := len(snap.Balls); got != 0 {
		t.Errorf("balls after rebuild = %d, want 0", got)
	}
	if snap.QueueLen != 0 || snap.Dropped != 0 {
		t.Errorf("queue after rebuild = %d dropped = %d, want 0 and 0",
			snap.QueueLen, snap.Dropped)
	}

	sim.Fill([]BallDef{{Color: blue, Count: 4}})
	if got := sim.Snapshot().QueueLen; got != 4 {
		t.Errorf("QueueLen after refill = %d, want 4", got)
	}
}

func TestSimulationReconfigure(t *testing.T) {
	sim := NewSimulation(900, 600, testConfig(8, 9))
	sim.Fill([]BallDef{{Color: red, Count: 10}})

	cfg := testConfig(8, 5)
	sim.Reconfigure(cfg)

	assertNear(t, "SpacingX", sim.Layout().SpacingX, 180)
	snap := sim.Snapshot()
	if len(snap.Balls) != 0 {
		t.Errorf("balls survived reconfigure: %d", len(snap.Balls))
	}
	dividers := 0
	for _, s := range snap.Statics {
		if s.Kind == StaticDivider {
			dividers++
		}
	}
	if dividers != 6 {
		t.Errorf("dividers = %d, want 6", dividers)
	}
}

func TestSimulationResetRearmsCompletion(t *testing.T) {
	cfg := testConfig(8, 9)
	sim := NewSimulation(900, 600, cfg)
	sim.Fill([]BallDef{{Color: red, Count: 2}})

	l := sim.Layout()
	for i, b := range sim.spool.balls {
		b.body.SetPosition(cp.Vector{X: (float64(i) + 0.5) * l.SpacingX, Y: l.Height - cfg.BallRadius})
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
	}
	for i := 0; i < 5; i++ {
		sim.Tick(1.0 / 60.0)
	}
	if !sim.Complete() {
		t.Fatal("expected completion")
	}

	sim.Reset()
	if sim.Complete() {
		t.Error("completion latch survived reset")
	}
	if got := sim.Snapshot().QueueLen; got != 0 {
		t.Errorf("queue survived reset: %d", got)
	}
}

func TestSimulationBinCountsPlacement(t *testing.T) {
	cfg := testConfig(8, 9)
	sim := NewSimulation(900, 600, cfg)
	sim.Fill([]BallDef{{Color: red, Count: 3}})

	l := sim.Layout()
	// Two balls in bucket 0, one in bucket 8, all inside the bin band.
	positions := []cp.Vector{
		{X: 30, Y: l.BinStartY + 20},
		{X: 60, Y: l.BinStartY + 20},
		{X: 860, Y: l.BinStartY + 20},
	}
	for i, b := range sim.spool.balls {
		b.body.SetPosition(positions[i])
	}

	counts := sim.BinCounts()
	if counts[0] != 2 || counts[8] != 1 {
		t.Errorf("counts = %v, want 2 in bucket 0 and 1 in bucket 8", counts)
	}
}

func TestSimulationSnapshotGate(t *testing.T) {
	sim := NewSimulation(900, 600, testConfig(8, 9))
	snap := sim.Snapshot()
	if snap.GateOpen {
		t.Error("gate should start closed")
	}
	for i, r := range snap.GateRects {
		if r.Width <= 0 || r.Height <= 0 {
			t.Errorf("gate rect %d degenerate: %+v", i, r)
		}
	}
}
