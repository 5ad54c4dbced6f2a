package galton

import (
	"testing"

	"github.com/jakecoffman/cp"
)

// settleFixture spawns n stationary balls directly into the bin band of a
// zero-gravity space, bypassing the drop models.
func settleFixture(t *testing.T, n, queueLen int) (*spool, Layout) {
	t.Helper()
	space := cp.NewSpace() // no gravity: bodies hold position and speed
	cfg := testConfig(8, 9)
	l := ComputeLayout(900, 600, cfg)

	sp := &spool{}
	sp.setQueue(FlattenQueue([]BallDef{{Color: red, Count: queueLen}}))
	for i := 0; i < n; i++ {
		x := 50 + float64(i)*80
		sp.addBallAt(space, cfg, x, l.BinStartY+30)
		sp.dropIndex++
	}
	return sp, l
}

func TestBallSettledCriteria(t *testing.T) {
	sp, l := settleFixture(t, 1, 1)
	b := sp.balls[0]

	if !ballSettled(b, l) {
		t.Fatal("stationary ball in bin band should be settled")
	}

	b.body.SetVelocity(settleLinearSpeed*2, 0)
	if ballSettled(b, l) {
		t.Error("fast ball should not be settled")
	}
	b.body.SetVelocity(0, 0)

	b.body.SetAngularVelocity(settleAngularSpeed * 2)
	if ballSettled(b, l) {
		t.Error("spinning ball should not be settled")
	}
	b.body.SetAngularVelocity(0)

	// Position guard: still above the bin band means not settled, no matter
	// how slow.
	b.body.SetPosition(cp.Vector{X: 450, Y: l.BinStartY - 5})
	if ballSettled(b, l) {
		t.Error("ball above bin band should not be settled")
	}
}

func TestSettleGuardsSpawnedCount(t *testing.T) {
	// 10 stationary, settled balls out of a 500-ball queue: completion must
	// not fire mid-batch.
	sp, l := settleFixture(t, 10, 500)

	var d settleDetector
	if d.check(sp.balls, sp.dropIndex, len(sp.queue), l) {
		t.Fatal("completion fired with 10 of 500 balls introduced")
	}
}

func TestSettleEmptyQueueNeverFires(t *testing.T) {
	sp, l := settleFixture(t, 0, 0)
	var d settleDetector
	for i := 0; i < 5; i++ {
		if d.check(sp.balls, sp.dropIndex, len(sp.queue), l) {
			t.Fatal("completion fired for an empty queue")
		}
	}
}

func TestSettleEdgeTriggered(t *testing.T) {
	sp, l := settleFixture(t, 10, 10)

	var d settleDetector
	if !d.check(sp.balls, sp.dropIndex, len(sp.queue), l) {
		t.Fatal("completion should fire with all balls settled")
	}
	// Balls remain settled; the signal must not re-fire.
	for i := 0; i < 5; i++ {
		if d.check(sp.balls, sp.dropIndex, len(sp.queue), l) {
			t.Fatal("completion re-fired while latched")
		}
	}

	d.rearm()
	if !d.check(sp.balls, sp.dropIndex, len(sp.queue), l) {
		t.Error("completion should fire again after rearm")
	}
}

func TestSettleBlockedByOneLiveBall(t *testing.T) {
	sp, l := settleFixture(t, 10, 10)
	sp.balls[7].body.SetVelocity(0, settleLinearSpeed*3)

	var d settleDetector
	if d.check(sp.balls, sp.dropIndex, len(sp.queue), l) {
		t.Error("completion fired with one ball still moving")
	}
}
