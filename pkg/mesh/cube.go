package mesh

import "github.com/wireview/wireview/pkg/math3d"

// CubeVertices returns the 8 corners of a unit cube centered at the origin.
func CubeVertices() []math3d.Vec3 {
	const h = 0.5
	return []math3d.Vec3{
		math3d.V3(-h, -h, -h),
		math3d.V3(h, -h, -h),
		math3d.V3(h, h, -h),
		math3d.V3(-h, h, -h),
		math3d.V3(-h, -h, h),
		math3d.V3(h, -h, h),
		math3d.V3(h, h, h),
		math3d.V3(-h, h, h),
	}
}

// CubeFaces returns the 6 quad faces of the cube. Run through FromFaces
// they dedup to the cube's 12 edges.
func CubeFaces() [][]int {
	return [][]int{
		{0, 1, 2, 3}, // back
		{4, 5, 6, 7}, // front
		{0, 1, 5, 4}, // bottom
		{3, 2, 6, 7}, // top
		{0, 3, 7, 4}, // left
		{1, 2, 6, 5}, // right
	}
}

// Cube builds a ready-made unit cube mesh, handy as a fallback model and in
// tests.
func Cube() *Mesh {
	return FromFaces(CubeVertices(), CubeFaces())
}
