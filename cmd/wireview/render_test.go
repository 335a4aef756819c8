package main

import (
	"math"
	"testing"

	"github.com/wireview/wireview/pkg/math3d"
	"github.com/wireview/wireview/pkg/render"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		in      string
		want    math3d.Vec3
		wantErr bool
	}{
		{"0,0,0", math3d.V3(0, 0, 0), false},
		{"1.5,-2,0.25", math3d.V3(1.5, -2, 0.25), false},
		{"1,2", math3d.Vec3{}, true},
		{"a,b,c", math3d.Vec3{}, true},
	}

	for _, tt := range tests {
		got, err := parseVec3(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseVec3(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseVec3(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseVec3(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAimCameraRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		eye, target math3d.Vec3
	}{
		{"on axis", math3d.V3(5, 0, 0), math3d.V3(0, 0, 0)},
		{"above", math3d.V3(0, 4, 3), math3d.V3(0, 0, 0)},
		{"offset target", math3d.V3(2, 3, -1), math3d.V3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := render.NewCamera()
			if err := aimCamera(cam, tt.eye, tt.target); err != nil {
				t.Fatalf("aimCamera: %v", err)
			}
			// The derived orbit position must land back on the eye.
			if got := cam.Position(); got.Sub(tt.eye).Len() > 1e-9 {
				t.Errorf("position = %v, want %v", got, tt.eye)
			}
			want := tt.eye.Sub(tt.target).Len()
			if math.Abs(cam.Radius-want) > 1e-12 {
				t.Errorf("radius = %v, want %v", cam.Radius, want)
			}
		})
	}
}

func TestAimCameraCoincident(t *testing.T) {
	cam := render.NewCamera()
	if err := aimCamera(cam, math3d.V3(1, 1, 1), math3d.V3(1, 1, 1)); err == nil {
		t.Error("expected error for coincident eye and target")
	}
}
