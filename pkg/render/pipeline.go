package render

import (
	"math"

	"github.com/wireview/wireview/pkg/math3d"
	"github.com/wireview/wireview/pkg/mesh"
)

// wEps is the smallest |w| accepted for the perspective divide; anything
// closer to zero is numerically unstable and the edge is treated as not
// visible this frame.
const wEps = 1e-6

// ScreenLine is one projected segment in pixel coordinates.
type ScreenLine struct {
	A, B math3d.Vec2
}

// Pipeline converts mesh edges into screen-space segments: camera-space
// transform, near-plane clip, perspective divide, NDC-to-pixel mapping.
//
// The per-frame buffers (camera-space vertices, screen cache, validity
// flags, output lines) are owned by the pipeline and reused across calls to
// avoid reallocation; they are resized whenever the mesh size changes. A
// Pipeline must not be shared between goroutines; use one per concurrent
// caller.
type Pipeline struct {
	width, height int
	model         math3d.Mat4

	camVerts []math3d.Vec3
	screens  []math3d.Vec2
	valid    []bool
	lines    []ScreenLine
}

// NewPipeline creates a pipeline for the given viewport size in pixels.
func NewPipeline(width, height int) *Pipeline {
	return &Pipeline{
		width:  width,
		height: height,
		model:  math3d.Identity(),
	}
}

// SetViewport changes the output size in pixels.
func (p *Pipeline) SetViewport(width, height int) {
	p.width = width
	p.height = height
}

// Viewport returns the current output size in pixels.
func (p *Pipeline) Viewport() (width, height int) {
	return p.width, p.height
}

// SetModel sets the model matrix applied before the view transform.
func (p *Pipeline) SetModel(m math3d.Mat4) {
	p.model = m
}

// Build projects every mesh edge through view and projection and returns
// the visible screen segments, in edge order. near is the camera-space
// near-clip distance (callers pass the camera's current value so clipping
// follows auto-frame). lod, when non-nil, applies the sub-pixel filter and
// the hard segment cap.
//
// The returned slice aliases pipeline-owned scratch and is only valid until
// the next call.
func (p *Pipeline) Build(view, proj math3d.Mat4, m *mesh.Mesh, near float64, lod *LOD) []ScreenLine {
	vm := view.Mul(p.model)

	n := len(m.Vertices)
	p.camVerts = resize(p.camVerts, n)
	p.screens = resize(p.screens, n)
	p.valid = resize(p.valid, n)

	// Pass 1: every vertex into camera space, once.
	for i, v := range m.Vertices {
		p.camVerts[i] = vm.MulPoint(v)
	}

	// Pass 2: pre-project vertices already in front of the near plane.
	// Interior vertices are shared by many edges, so caching the screen
	// point here saves re-deriving it per edge.
	for i, c := range p.camVerts {
		p.valid[i] = false
		if -c.Z >= near {
			if s, ok := p.project(proj, c); ok {
				p.screens[i] = s
				p.valid[i] = true
			}
		}
	}

	filter := false
	threshold2 := 0.0
	maxLines := 0
	if lod != nil {
		filter = lod.Enabled
		t := lod.Threshold()
		threshold2 = t * t
		maxLines = lod.MaxLines
	}

	// Pass 3: per edge, cached endpoints when possible, clip+project
	// otherwise.
	p.lines = p.lines[:0]
	for _, e := range m.Edges {
		ia, ib := e[0], e[1]

		var sa, sb math3d.Vec2
		if p.valid[ia] && p.valid[ib] {
			sa, sb = p.screens[ia], p.screens[ib]
		} else {
			a, b, visible := clipNear(p.camVerts[ia], p.camVerts[ib], near)
			if !visible {
				continue
			}
			var ok bool
			if sa, ok = p.project(proj, a); !ok {
				continue
			}
			if sb, ok = p.project(proj, b); !ok {
				continue
			}
		}

		if filter && sa.Sub(sb).LenSq() < threshold2 {
			continue
		}

		p.lines = append(p.lines, ScreenLine{A: sa, B: sb})
		if maxLines > 0 && len(p.lines) >= maxLines {
			break
		}
	}
	return p.lines
}

// clipNear clips a camera-space segment against the near plane. In camera
// space, negative z is in front of the camera; a point is visible when
// -z >= near. Segments entirely behind the plane report visible=false.
// A crossing segment has its hidden endpoint replaced by the intersection
// with z = -near, solved from -(a.z + t*(b.z-a.z)) = near.
func clipNear(a, b math3d.Vec3, near float64) (_, _ math3d.Vec3, visible bool) {
	aIn := -a.Z >= near
	bIn := -b.Z >= near
	if aIn && bIn {
		return a, b, true
	}
	if !aIn && !bIn {
		return a, b, false
	}

	t := (-near - a.Z) / (b.Z - a.Z)
	hit := a.Lerp(b, t)
	if !aIn {
		a = hit
	} else {
		b = hit
	}
	return a, b, true
}

// project maps one camera-space point to pixel coordinates. It fails on an
// unstable perspective divide or a non-finite result; callers drop the edge.
func (p *Pipeline) project(proj math3d.Mat4, c math3d.Vec3) (math3d.Vec2, bool) {
	clip := proj.MulVec4(math3d.V4FromV3(c, 1))
	if math.Abs(clip.W) < wEps {
		return math3d.Vec2{}, false
	}

	ndcX := clip.X / clip.W
	ndcY := clip.Y / clip.W

	// Pixel row 0 is the top, so Y flips.
	s := math3d.V2(
		(ndcX*0.5+0.5)*float64(p.width),
		(1-(ndcY*0.5+0.5))*float64(p.height),
	)
	if !s.IsFinite() {
		return math3d.Vec2{}, false
	}
	return s, true
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
