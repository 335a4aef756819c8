package mesh

import (
	"testing"

	"github.com/wireview/wireview/pkg/math3d"
)

func quadVertices() []math3d.Vec3 {
	return []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(1, 0, 0),
		math3d.V3(1, 1, 0),
		math3d.V3(0, 1, 0),
	}
}

func TestFromFacesBasic(t *testing.T) {
	m := FromFaces(quadVertices(), [][]int{{0, 1, 2, 3}})

	want := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	if len(m.Edges) != len(want) {
		t.Fatalf("edge count = %d, want %d", len(m.Edges), len(want))
	}
	for i, e := range want {
		if m.Edges[i] != e {
			t.Errorf("edge %d = %v, want %v", i, m.Edges[i], e)
		}
	}
}

func TestFromFacesDedup(t *testing.T) {
	tests := []struct {
		name  string
		faces [][]int
		want  int
	}{
		{"shared edge between triangles", [][]int{{0, 1, 2}, {0, 2, 3}}, 5},
		{"same face twice", [][]int{{0, 1, 2}, {0, 1, 2}}, 3},
		{"reversed winding", [][]int{{0, 1, 2}, {2, 1, 0}}, 3},
		{"rotated", [][]int{{0, 1, 2}, {1, 2, 0}}, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := FromFaces(quadVertices(), tc.faces)
			if m.EdgeCount() != tc.want {
				t.Errorf("edge count = %d, want %d", m.EdgeCount(), tc.want)
			}
			seen := make(map[uint64]struct{})
			for _, e := range m.Edges {
				k := edgeKey(e[0], e[1])
				if _, dup := seen[k]; dup {
					t.Errorf("duplicate unordered edge %v", e)
				}
				seen[k] = struct{}{}
			}
		})
	}
}

func TestFromFacesIdempotent(t *testing.T) {
	faces := [][]int{{0, 1, 2}, {2, 1, 0}, {0, 2, 3}, {3, 0, 1}}
	a := FromFaces(quadVertices(), faces)
	b := FromFaces(quadVertices(), faces)

	if len(a.Edges) != len(b.Edges) {
		t.Fatalf("edge counts differ: %d vs %d", len(a.Edges), len(b.Edges))
	}
	for i := range a.Edges {
		if a.Edges[i] != b.Edges[i] {
			t.Errorf("edge %d differs: %v vs %v", i, a.Edges[i], b.Edges[i])
		}
	}
}

func TestFromFacesSelfLoop(t *testing.T) {
	// A repeated consecutive index must never emit an (i, i) edge.
	m := FromFaces(quadVertices(), [][]int{{0, 0, 1}})
	for _, e := range m.Edges {
		if e[0] == e[1] {
			t.Errorf("self-loop edge %v emitted", e)
		}
	}
	// (0,1) and (1,0) collapse to a single edge.
	if m.EdgeCount() != 1 {
		t.Errorf("edge count = %d, want 1", m.EdgeCount())
	}
}

func TestFromFacesRejectsBadFaces(t *testing.T) {
	tests := []struct {
		name  string
		faces [][]int
		want  int
	}{
		{"index out of range", [][]int{{0, 1, 9}, {0, 1, 2}}, 3},
		{"negative index", [][]int{{-1, 0, 1}}, 0},
		{"too few vertices", [][]int{{2}, {}}, 0},
		{"two-vertex face", [][]int{{0, 1}}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := FromFaces(quadVertices(), tc.faces)
			if m.EdgeCount() != tc.want {
				t.Errorf("edge count = %d, want %d", m.EdgeCount(), tc.want)
			}
		})
	}
}

func TestCubeHasTwelveEdges(t *testing.T) {
	m := FromFaces(CubeVertices(), CubeFaces())
	if m.EdgeCount() != 12 {
		t.Errorf("cube edge count = %d, want 12", m.EdgeCount())
	}
	if m.VertexCount() != 8 {
		t.Errorf("cube vertex count = %d, want 8", m.VertexCount())
	}
}

func TestBounds(t *testing.T) {
	vertices := []math3d.Vec3{
		math3d.V3(-2, -1, 0.5),
		math3d.V3(2, 1, -1),
		math3d.V3(0, 0, 1),
	}
	m := FromFaces(vertices, [][]int{{0, 1, 2}})

	b := m.Bounds()
	if b.Min != math3d.V3(-2, -1, -1) || b.Max != math3d.V3(2, 1, 1) {
		t.Errorf("bounds = %v..%v, want (-2,-1,-1)..(2,1,1)", b.Min, b.Max)
	}
	if c := b.Center(); c != math3d.V3(0, 0, 0) {
		t.Errorf("center = %v, want origin", c)
	}
	if e := b.HalfExtent(); e != 2 {
		t.Errorf("half extent = %v, want 2", e)
	}
}

func TestEdgeKeyUnordered(t *testing.T) {
	if edgeKey(3, 7) != edgeKey(7, 3) {
		t.Error("edgeKey not symmetric")
	}
	if edgeKey(0, 1) == edgeKey(0, 2) {
		t.Error("edgeKey collision for distinct pairs")
	}
}
