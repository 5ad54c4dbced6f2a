package galton

import "math"

// Layout is the derived geometry of the board for one canvas size and config.
// All values are in canvas pixels; Y grows downward from the top edge.
//
// The board is stacked top to bottom: funnel (slope + neck), a fixed gap,
// the peg field, and the bin band running to the canvas floor.
type Layout struct {
	Width, Height float64

	// SpacingX is the horizontal bucket pitch. It always satisfies
	// SpacingX*BucketCount == Width: the board spans the full canvas width
	// and never reserves side margins.
	SpacingX float64

	// PegSpacingY is the vertical peg row pitch. Ideally SpacingX*pegAspect;
	// compressed (never SpacingX) when the canvas is too short.
	PegSpacingY float64

	FunnelTopY  float64 // top of the funnel walls
	NeckTopY    float64 // where the slope meets the vertical neck
	FunnelExitY float64 // bottom of the neck, where balls leave the funnel

	// NeckHalfGap is half the funnel neck opening. Sized to just exceed one
	// ball radius so balls pass single file; two abreast would desynchronize
	// the binomial dispersion below.
	NeckHalfGap float64

	PegFieldStartY float64 // center of the first peg row
	BinStartY      float64 // top of the bin band (last peg row)
	BinHeight      float64 // bin band height, >= 0
}

const (
	// pegAspect relates vertical to horizontal peg pitch. 0.75 sits inside
	// the 0.6–0.866 band of triangular/hex packings and keeps the field
	// visually proportionate at common aspect ratios.
	pegAspect = 0.75

	funnelHeightFrac = 0.18 // funnel height as a fraction of the canvas
	minFunnelHeight  = 48.0 // absolute funnel floor on short canvases
	funnelSlopeFrac  = 0.7  // slope portion of the funnel; the rest is neck
	funnelGap        = 12.0 // clearance between neck exit and first peg row

	minBinHeightFrac = 0.18
	minBinHeight     = 56.0

	// neckClearance scales the ball radius into the neck half-gap.
	// Must stay below 2.0 or two balls could cross side by side.
	neckClearance = 1.15

	// minPegSpacingY keeps the row pitch strictly positive on any positive
	// canvas, even when compression has consumed all slack. The bin band
	// absorbs the overflow and clamps at zero.
	minPegSpacingY = 0.5
)

// ComputeLayout derives the board geometry for the given canvas size and
// config. Pure and deterministic: no side effects, and it never panics for
// any input. A degenerate (zero or negative) canvas yields a layout with all
// spans clamped to zero rather than NaN or negative sizes.
//
// When the ideal peg spacing does not fit the canvas, the vertical spacing is
// compressed until the peg field plus the minimum bin height fit. Horizontal
// spacing is never compressed.
func ComputeLayout(width, height float64, cfg Config) Layout {
	cfg = cfg.normalized()
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	l := Layout{
		Width:       width,
		Height:      height,
		SpacingX:    width / float64(cfg.BucketCount),
		NeckHalfGap: cfg.BallRadius * neckClearance,
	}
	if width == 0 || height == 0 {
		return l
	}

	funnelH := math.Max(height*funnelHeightFrac, minFunnelHeight)
	if funnelH > height {
		funnelH = height
	}
	binMin := math.Max(height*minBinHeightFrac, minBinHeight)
	if binMin > height-funnelH {
		binMin = math.Max(height-funnelH, 0)
	}

	rows := float64(cfg.RowCount - 1)
	spacingY := l.SpacingX * pegAspect
	avail := height - funnelH - funnelGap - binMin
	if avail < 0 {
		avail = 0
	}
	if rows > 0 && spacingY*rows > avail {
		spacingY = avail / rows
	}
	if spacingY < minPegSpacingY {
		spacingY = minPegSpacingY
	}

	l.PegSpacingY = spacingY
	l.FunnelTopY = 0
	l.NeckTopY = funnelH * funnelSlopeFrac
	l.FunnelExitY = funnelH
	l.PegFieldStartY = funnelH + funnelGap
	l.BinStartY = l.PegFieldStartY + rows*spacingY
	l.BinHeight = height - l.BinStartY
	if l.BinHeight < 0 {
		l.BinHeight = 0
	}
	return l
}

// BinIndex maps an X coordinate to a bucket index in [0, bucketCount).
// Positions outside the canvas clamp to the nearest edge bucket.
func (l Layout) BinIndex(x float64, bucketCount int) int {
	if bucketCount < 1 || l.SpacingX <= 0 {
		return 0
	}
	idx := int(x / l.SpacingX)
	if idx < 0 {
		return 0
	}
	if idx >= bucketCount {
		return bucketCount - 1
	}
	return idx
}
