package galton

// dampedRestitution is the bounce applied in the funnel and bin zones. A
// single restitution value cannot serve the whole board: a lively ball
// ricochets in the funnel before aligning single file, and a dead ball
// slides through the peg field without dispersing. Zoning separates the two
// regimes on one solver.
const dampedRestitution = 0.1

// zoneFor classifies a vertical position against the layout bands. Both
// boundaries are strict comparisons: exactly on FunnelExitY or BinStartY
// counts as peg field.
func zoneFor(y float64, l Layout) Zone {
	switch {
	case y < l.FunnelExitY:
		return ZoneFunnel
	case y > l.BinStartY:
		return ZoneBin
	default:
		return ZonePegField
	}
}

// restitutionFor returns the bounce value a ball should carry in the zone.
func restitutionFor(z Zone, cfg Config) float64 {
	if z == ZonePegField {
		return cfg.BallRestitution
	}
	return dampedRestitution
}

// retuneBalls rewrites every live ball's restitution for its current zone and
// re-asserts friction from config, guarding against external mutation of the
// shape. Runs once per tick, before the solver step.
func retuneBalls(balls []*ball, l Layout, cfg Config) {
	for _, b := range balls {
		z := zoneFor(b.body.Position().Y, l)
		b.shape.SetElasticity(restitutionFor(z, cfg))
		b.shape.SetFriction(cfg.BallFriction)
	}
}
