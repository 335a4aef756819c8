// Package mesh provides the wireframe mesh model and its loaders.
//
// A Mesh is built once from a stream of polygonal faces and is read-only
// afterward: vertex positions in insertion order, plus a deduplicated list
// of undirected edges referencing them by index.
package mesh

import (
	"github.com/wireview/wireview/pkg/math3d"
)

// Mesh holds vertex positions and unique undirected edges. Edge indices are
// 0-based into Vertices; no edge is a self-loop and no unordered pair
// appears twice.
type Mesh struct {
	Vertices []math3d.Vec3
	Edges    [][2]int

	bounds AABB
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// Center returns the center of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box dimensions.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// HalfExtent returns half the largest dimension of the box.
func (b AABB) HalfExtent() float64 {
	s := b.Size()
	e := s.X
	if s.Y > e {
		e = s.Y
	}
	if s.Z > e {
		e = s.Z
	}
	return e * 0.5
}

// edgeKey packs an unordered index pair into a single comparable key,
// smaller index in the high half. (a,b) and (b,a) yield the same key.
func edgeKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(uint32(b))
}

// FromFaces builds a Mesh from vertex positions and polygonal faces. Each
// face is a list of 0-based vertex indices; every pair of cyclically
// consecutive vertices contributes one edge.
//
// Input is sanitized rather than trusted: faces containing an out-of-range
// index are skipped whole, faces with fewer than 2 vertices are skipped,
// and degenerate edges (a == b) are dropped. Duplicate edges keep only
// their first occurrence, so the output order is deterministic for a given
// input order and vertices are never reordered.
func FromFaces(vertices []math3d.Vec3, faces [][]int) *Mesh {
	m := &Mesh{Vertices: vertices}

	seen := make(map[uint64]struct{})
	for _, f := range faces {
		if len(f) < 2 || !indicesInRange(f, len(vertices)) {
			continue
		}
		for i := range f {
			a := f[i]
			b := f[(i+1)%len(f)]
			if a == b {
				continue
			}
			k := edgeKey(a, b)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			m.Edges = append(m.Edges, [2]int{a, b})
		}
	}

	m.bounds = computeBounds(vertices)
	return m
}

func indicesInRange(f []int, n int) bool {
	for _, idx := range f {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

func computeBounds(vertices []math3d.Vec3) AABB {
	if len(vertices) == 0 {
		return AABB{}
	}
	b := AABB{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// Bounds returns the axis-aligned bounding box computed at build time.
func (m *Mesh) Bounds() AABB {
	return m.bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// EdgeCount returns the number of unique edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}
