package render

import "time"

// LOD tuning defaults, matching the interactive defaults the viewer ships
// with.
const (
	defaultThresholdPx = 1.5
	defaultMinPx       = 0.25
	defaultMaxPx       = 5.0
	defaultMaxLines    = 180000

	// Exponential smoothing weight for the frame-time estimate: damps
	// frame-to-frame jitter while still tracking a trend within ten to
	// twenty frames.
	smoothingKeep = 0.85

	// Dead-band around the target. Coarsen above 1.05x budget, refine
	// below 0.80x; the asymmetry keeps the loop from oscillating around
	// the target.
	coarsenAt = 1.05
	refineAt  = 0.80

	coarsenStep = 1.10
	refineStep  = 0.90
)

// LOD bounds per-frame cost: edges shorter on screen than the current
// threshold are culled, and output stops at MaxLines regardless. The
// threshold adapts each frame from measured timing, a small control loop
// with one continuous state variable.
//
// The controller is deliberately decoupled from any clock: callers measure
// a frame and feed the duration to Observe, which makes the loop
// deterministic to test.
type LOD struct {
	// Enabled gates the sub-pixel filter only; the MaxLines cap is a
	// safety ceiling and always applies.
	Enabled bool

	// MaxLines is the hard cap on emitted segments per frame. Zero means
	// uncapped.
	MaxLines int

	threshold float64
	minPx     float64
	maxPx     float64

	target   float64 // seconds per frame
	smoothed float64 // seconds, exponentially smoothed; 0 until first Observe
}

// NewLOD creates a controller aiming at the given frames per second.
func NewLOD(targetFPS int) *LOD {
	l := &LOD{
		Enabled:   true,
		MaxLines:  defaultMaxLines,
		threshold: defaultThresholdPx,
		minPx:     defaultMinPx,
		maxPx:     defaultMaxPx,
	}
	l.SetTargetFPS(targetFPS)
	return l
}

// SetTargetFPS changes the frame budget the loop converges toward.
func (l *LOD) SetTargetFPS(fps int) {
	if fps <= 0 {
		fps = 30
	}
	l.target = 1.0 / float64(fps)
}

// SetBounds reconfigures the threshold clamp range and re-clamps the
// current threshold into it.
func (l *LOD) SetBounds(minPx, maxPx float64) {
	if minPx <= 0 || maxPx < minPx {
		return
	}
	l.minPx = minPx
	l.maxPx = maxPx
	l.threshold = clamp(l.threshold, minPx, maxPx)
}

// SetThreshold overrides the current threshold, clamped to bounds.
func (l *LOD) SetThreshold(px float64) {
	l.threshold = clamp(px, l.minPx, l.maxPx)
}

// Threshold returns the current pixel-length cull threshold.
func (l *LOD) Threshold() float64 {
	return l.threshold
}

// Smoothed returns the smoothed frame-time estimate.
func (l *LOD) Smoothed() time.Duration {
	return time.Duration(l.smoothed * float64(time.Second))
}

// Observe feeds one frame's measured transform+clip+project+draw time into
// the loop and adjusts the threshold for the next frame: +10% when over
// budget, -10% when comfortably under, clamped to bounds. The first
// observation seeds the smoothed estimate directly.
func (l *LOD) Observe(frameTime time.Duration) {
	measured := frameTime.Seconds()
	if l.smoothed == 0 {
		l.smoothed = measured
	} else {
		l.smoothed = smoothingKeep*l.smoothed + (1-smoothingKeep)*measured
	}

	switch {
	case l.smoothed > l.target*coarsenAt:
		l.threshold = clamp(l.threshold*coarsenStep, l.minPx, l.maxPx)
	case l.smoothed < l.target*refineAt:
		l.threshold = clamp(l.threshold*refineStep, l.minPx, l.maxPx)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
