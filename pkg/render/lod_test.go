package render

import (
	"math"
	"testing"
	"time"
)

func TestLODFirstObserveSeeds(t *testing.T) {
	l := NewLOD(30)
	l.Observe(40 * time.Millisecond)

	// No averaging against the zero value on the first sample.
	if got := l.Smoothed(); got != 40*time.Millisecond {
		t.Errorf("smoothed = %v, want 40ms", got)
	}
}

func TestLODDeadBandHoldsThreshold(t *testing.T) {
	// 33ms frames against a 30fps budget sit inside the dead band: above
	// the refine line, below the coarsen line.
	l := NewLOD(30)
	for range 50 {
		l.Observe(33 * time.Millisecond)
	}
	if got := l.Threshold(); got != defaultThresholdPx {
		t.Errorf("threshold = %v, want unchanged %v", got, defaultThresholdPx)
	}
}

func TestLODCoarsenTrajectory(t *testing.T) {
	// 40ms frames against a 60fps budget are over budget from the first
	// sample; each observation multiplies the threshold by the coarsen
	// step.
	l := NewLOD(60)

	l.Observe(40 * time.Millisecond)
	if want := 1.5 * 1.1; math.Abs(l.Threshold()-want) > 1e-9 {
		t.Errorf("after 1 observe threshold = %v, want %v", l.Threshold(), want)
	}
	l.Observe(40 * time.Millisecond)
	if want := 1.5 * 1.1 * 1.1; math.Abs(l.Threshold()-want) > 1e-9 {
		t.Errorf("after 2 observes threshold = %v, want %v", l.Threshold(), want)
	}
}

func TestLODCoarsenClampsAtCeiling(t *testing.T) {
	l := NewLOD(60)
	for range 100 {
		l.Observe(100 * time.Millisecond)
	}
	if got := l.Threshold(); got != defaultMaxPx {
		t.Errorf("threshold = %v, want ceiling %v", got, defaultMaxPx)
	}
}

func TestLODRefineClampsAtFloor(t *testing.T) {
	l := NewLOD(30)
	for range 100 {
		l.Observe(time.Millisecond)
	}
	if got := l.Threshold(); got != defaultMinPx {
		t.Errorf("threshold = %v, want floor %v", got, defaultMinPx)
	}
}

func TestLODSmoothingDampsSpikes(t *testing.T) {
	// One slow frame in a fast stream must not coarsen on its own.
	l := NewLOD(60)
	l.Observe(10 * time.Millisecond)
	before := l.Threshold()

	l.Observe(100 * time.Millisecond)
	// smoothed = 0.85*10ms + 0.15*100ms = 23.5ms, over the 60fps budget.
	if got := l.Smoothed(); got != 23500*time.Microsecond {
		t.Errorf("smoothed = %v, want 23.5ms", got)
	}
	if l.Threshold() <= before {
		t.Error("sustained estimate over budget did not coarsen")
	}
}

func TestLODSetBoundsReclamps(t *testing.T) {
	l := NewLOD(60)

	l.SetBounds(2.0, 4.0)
	if got := l.Threshold(); got != 2.0 {
		t.Errorf("threshold = %v, want re-clamped 2.0", got)
	}

	// Invalid ranges are ignored.
	l.SetBounds(0, 4.0)
	l.SetBounds(3.0, 1.0)
	if l.minPx != 2.0 || l.maxPx != 4.0 {
		t.Errorf("bounds = [%v, %v], want unchanged [2, 4]", l.minPx, l.maxPx)
	}
}

func TestLODSetThresholdClamps(t *testing.T) {
	l := NewLOD(60)
	tests := []struct {
		set  float64
		want float64
	}{
		{1.0, 1.0},
		{0.01, defaultMinPx},
		{50, defaultMaxPx},
	}
	for _, tt := range tests {
		l.SetThreshold(tt.set)
		if got := l.Threshold(); got != tt.want {
			t.Errorf("SetThreshold(%v): threshold = %v, want %v", tt.set, got, tt.want)
		}
	}
}

func TestLODTargetFPSFallback(t *testing.T) {
	l := NewLOD(0)
	if want := 1.0 / 30.0; math.Abs(l.target-want) > 1e-12 {
		t.Errorf("target = %v, want 30fps fallback %v", l.target, want)
	}
}
