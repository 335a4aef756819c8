package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNormalizeZeroVector(t *testing.T) {
	v := V3(0, 0, 0).Normalize()
	if v != (Vec3{}) {
		t.Errorf("normalize(0) = %v, want zero vector", v)
	}

	// Sub-tolerance vectors stay untouched too.
	tiny := V3(1e-13, 0, 0)
	if got := tiny.Normalize(); got != tiny {
		t.Errorf("normalize(tiny) = %v, want %v", got, tiny)
	}
}

func TestCrossRightHanded(t *testing.T) {
	got := V3(1, 0, 0).Cross(V3(0, 1, 0))
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, 0) || !almostEqual(got.Z, 1) {
		t.Errorf("x cross y = %v, want (0, 0, 1)", got)
	}
}

func TestLookAtTransformsTargetToNegativeZ(t *testing.T) {
	eye := V3(0, 0, 5)
	target := V3(0, 0, 0)
	view := LookAt(eye, target, Up())

	// The target must land on the -Z axis in camera space.
	c := view.MulVec4(V4FromV3(target, 1))
	if !almostEqual(c.X, 0) || !almostEqual(c.Y, 0) || !almostEqual(c.Z, -5) {
		t.Errorf("target in camera space = %v, want (0, 0, -5)", c)
	}

	// The eye itself maps to the origin.
	e := view.MulVec4(V4FromV3(eye, 1))
	if !almostEqual(e.X, 0) || !almostEqual(e.Y, 0) || !almostEqual(e.Z, 0) {
		t.Errorf("eye in camera space = %v, want origin", e)
	}
}

func TestLookAtDegenerate(t *testing.T) {
	tests := []struct {
		name            string
		eye, target, up Vec3
	}{
		{"eye equals target", V3(1, 2, 3), V3(1, 2, 3), Up()},
		{"up parallel to view", V3(0, 5, 0), V3(0, 0, 0), Up()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := LookAt(tc.eye, tc.target, tc.up)
			if got != Identity() {
				t.Errorf("LookAt = %v, want identity", got)
			}
			for i, v := range got {
				if math.IsNaN(v) {
					t.Fatalf("element %d is NaN", i)
				}
			}
		})
	}
}

func TestPerspectiveCenterRay(t *testing.T) {
	// A point straight down the view axis projects to NDC (0, 0) for any
	// depth between the clip planes.
	proj := Perspective(math.Pi/2, 1.0, 0.1, 100)

	for _, d := range []float64{0.5, 1, 7.25, 99} {
		clip := proj.MulVec4(V4(0, 0, -d, 1))
		if math.Abs(clip.W) < 1e-12 {
			t.Fatalf("d=%v: clip w near zero", d)
		}
		ndcX, ndcY := clip.X/clip.W, clip.Y/clip.W
		if !almostEqual(ndcX, 0) || !almostEqual(ndcY, 0) {
			t.Errorf("d=%v: ndc = (%v, %v), want (0, 0)", d, ndcX, ndcY)
		}
	}
}

func TestPerspectiveFrustumCorner(t *testing.T) {
	// With 90° vertical FOV and aspect 1, a point at (0, d, -d) sits on the
	// top frustum plane and maps to ndcY = 1.
	proj := Perspective(math.Pi/2, 1.0, 0.1, 100)
	clip := proj.MulVec4(V4(0, 3, -3, 1))
	if got := clip.Y / clip.W; !almostEqual(got, 1) {
		t.Errorf("ndcY = %v, want 1", got)
	}
}

func TestOrthographicMapsBoxToCube(t *testing.T) {
	m := Orthographic(-2, 2, -1, 1, 0.1, 10)

	tests := []struct {
		name string
		in   Vec4
		want Vec3
	}{
		{"center", V4(0, 0, -5.05, 1), V3(0, 0, 0)},
		{"right top", V4(2, 1, -5.05, 1), V3(1, 1, 0)},
		{"left bottom", V4(-2, -1, -5.05, 1), V3(-1, -1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.MulVec4(tc.in)
			if !almostEqual(got.W, 1) {
				t.Fatalf("ortho w = %v, want 1", got.W)
			}
			if !almostEqual(got.X, tc.want.X) || !almostEqual(got.Y, tc.want.Y) {
				t.Errorf("got (%v, %v), want (%v, %v)", got.X, got.Y, tc.want.X, tc.want.Y)
			}
		})
	}
}

func TestMulComposesRightToLeft(t *testing.T) {
	// Translate then rotate vs rotate then translate must differ, and the
	// combined matrix must match applying the factors right to left.
	tr := Translate(V3(1, 0, 0))
	rot := RotateZ(math.Pi / 2)

	p := V4(1, 0, 0, 1)

	// rot * tr: translate first, then rotate → (0, 2, 0)
	got := rot.Mul(tr).MulVec4(p)
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, 2) {
		t.Errorf("rot*tr applied = (%v, %v), want (0, 2)", got.X, got.Y)
	}

	// tr * rot: rotate first, then translate → (1, 1, 0)
	got = tr.Mul(rot).MulVec4(p)
	if !almostEqual(got.X, 1) || !almostEqual(got.Y, 1) {
		t.Errorf("tr*rot applied = (%v, %v), want (1, 1)", got.X, got.Y)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(V3(3, -2, 7)).Mul(RotateY(0.3))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m * I != m")
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * m != m")
	}
}
