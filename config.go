package galton

// DropMode selects how queued balls enter the board. The two modes have
// different release semantics and must not be mixed within a run: batch mode
// pre-spawns the whole queue above the funnel and releases it by opening the
// gate; timed mode trickles balls in at the funnel center one per interval.
type DropMode uint8

const (
	// DropBatch spawns the entire queue at Fill time in a grid above the
	// funnel. Opening the gate releases the pile.
	DropBatch DropMode = iota
	// DropTimed spawns one ball per DropIntervalMs at the funnel center
	// until the queue is exhausted.
	DropTimed
)

// Config holds the simulation parameters. A Config is immutable for the
// duration of a run; changing it goes through Simulation.Reconfigure, which
// tears down and rebuilds the whole board.
//
// Out-of-range values never crash the engine: every field is clamped to its
// documented minimum at the boundary.
type Config struct {
	RowCount        int     // peg rows, min 2
	BucketCount     int     // bins, min 1
	PegRadius       float64 // min minPegRadius
	BallRadius      float64 // min minBallRadius
	BallRestitution float64 // peg-field bounce, clamped to [0, 1]
	BallFriction    float64 // min 0
	DropIntervalMs  float64 // DropTimed spawn interval, min 0
	DropMode        DropMode
}

const (
	minRowCount    = 2
	minBucketCount = 1
	minPegRadius   = 1.0
	minBallRadius  = 1.0
)

// DefaultConfig returns the parameters used by the demos: a 10-row,
// 13-bucket board with moderately bouncy balls.
func DefaultConfig() Config {
	return Config{
		RowCount:        10,
		BucketCount:     13,
		PegRadius:       5,
		BallRadius:      6,
		BallRestitution: 0.4,
		BallFriction:    0.1,
		DropIntervalMs:  40,
		DropMode:        DropBatch,
	}
}

// normalized clamps every field to its safe range. Called at each boundary
// where external input enters the engine.
func (c Config) normalized() Config {
	if c.RowCount < minRowCount {
		c.RowCount = minRowCount
	}
	if c.BucketCount < minBucketCount {
		c.BucketCount = minBucketCount
	}
	if c.PegRadius < minPegRadius {
		c.PegRadius = minPegRadius
	}
	if c.BallRadius < minBallRadius {
		c.BallRadius = minBallRadius
	}
	c.BallRestitution = clamp01(c.BallRestitution)
	if c.BallFriction < 0 {
		c.BallFriction = 0
	}
	if c.DropIntervalMs < 0 {
		c.DropIntervalMs = 0
	}
	if c.DropMode != DropTimed {
		c.DropMode = DropBatch
	}
	return c
}
