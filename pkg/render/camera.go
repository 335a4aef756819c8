// Package render turns mesh edges into screen-space line segments under an
// orbit camera, with adaptive level-of-detail.
package render

import (
	"math"

	"github.com/wireview/wireview/pkg/math3d"
	"github.com/wireview/wireview/pkg/mesh"
)

const (
	// maxPitch stops just short of ±90° so the look-at basis never becomes
	// parallel to world up.
	maxPitch = 1.55

	minRadius     = 0.2
	minOrthoScale = 0.02

	orbitSensitivity = 0.01  // radians per drag pixel
	panSensitivity   = 0.002 // of radius, per drag pixel
	zoomFactor       = 0.9   // per wheel step
)

// Camera is an orbit camera: a target point, a radial distance and two
// angles. The eye position is always derived from those four values, never
// stored, so there is no cached state to invalidate.
type Camera struct {
	Target math3d.Vec3
	Radius float64
	Yaw    float64
	Pitch  float64

	Perspective bool
	FOVY        float64 // vertical field of view in radians (perspective)
	OrthoScale  float64 // half-height of the ortho volume (orthographic)
	Near        float64
	Far         float64
}

// NewCamera returns a camera with the default framing: perspective, 60°
// FOV, orbiting the origin from a slight above-and-aside angle.
func NewCamera() *Camera {
	return &Camera{
		Radius:      3.5,
		Yaw:         0.8,
		Pitch:       0.4,
		Perspective: true,
		FOVY:        60 * math.Pi / 180,
		OrthoScale:  1.0,
		Near:        0.05,
		Far:         100,
	}
}

// Position derives the eye point from target, radius, yaw and pitch.
func (c *Camera) Position() math3d.Vec3 {
	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	offset := math3d.V3(c.Radius*cp*cy, c.Radius*sp, c.Radius*cp*sy)
	return c.Target.Add(offset)
}

// View returns the right-handed view matrix for the current orbit state.
func (c *Camera) View() math3d.Mat4 {
	return math3d.LookAt(c.Position(), c.Target, math3d.Up())
}

// Projection returns the projection matrix for the given aspect ratio
// (width/height), dispatching on the perspective flag.
func (c *Camera) Projection(aspect float64) math3d.Mat4 {
	if c.Perspective {
		return math3d.Perspective(c.FOVY, aspect, c.Near, c.Far)
	}
	halfH := c.OrthoScale
	halfW := halfH * aspect
	return math3d.Orthographic(-halfW, halfW, -halfH, halfH, c.Near, c.Far)
}

// AutoFrame re-targets the camera to the mesh's bounding box so the whole
// model is comfortably in view. The near plane scales with the resulting
// radius: a fixed near plane either clips nearby geometry on small models
// or destabilizes depth on huge ones.
func (c *Camera) AutoFrame(m *mesh.Mesh) {
	if m.VertexCount() == 0 {
		return
	}
	b := m.Bounds()
	half := b.HalfExtent()
	if half < 1e-4 {
		// Single point or flat speck; pretend it is unit sized.
		half = 1.0
	}

	c.Target = b.Center()
	c.Radius = math.Max(3*half, 0.5)
	c.OrthoScale = 1.2 * half
	c.Near = math.Max(0.005*c.Radius, 1e-3)
	c.Far = math.Max(100*c.Radius, 100)
}

// Orbit adjusts yaw and pitch from a drag delta in pixels. Pitch is clamped
// to avoid gimbal flip.
func (c *Camera) Orbit(dx, dy float64) {
	c.Yaw -= dx * orbitSensitivity
	c.Pitch -= dy * orbitSensitivity
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Pan moves the target along the camera's current right/up basis. The step
// scales with radius so panning speed tracks zoom level.
func (c *Camera) Pan(dx, dy float64) {
	fwd := c.Target.Sub(c.Position()).Normalize()
	right := fwd.Cross(math3d.Up()).Normalize()
	up := right.Cross(fwd)

	k := panSensitivity * c.Radius
	c.Target = c.Target.Add(right.Scale(-dx * k)).Add(up.Scale(dy * k))
}

// Zoom moves in (or out) by one wheel step: multiplicative on radius in
// perspective mode, on the ortho scale otherwise, floored at a small
// positive minimum.
func (c *Camera) Zoom(in bool) {
	factor := zoomFactor
	if !in {
		factor = 1 / zoomFactor
	}
	if c.Perspective {
		c.Radius = math.Max(minRadius, c.Radius*factor)
	} else {
		c.OrthoScale = math.Max(minOrthoScale, c.OrthoScale*factor)
	}
}
