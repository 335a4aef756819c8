package mesh

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/wireview/wireview/pkg/math3d"
)

// LoadGLTF loads a glTF or binary GLB file. Only geometry is read:
// positions and triangle indices; normals, UVs, materials and animations
// are ignored since a wireframe has no use for them.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	m, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// FromDocument builds a mesh from an already-decoded glTF document. All
// triangle primitives of all meshes are merged into a single edge soup;
// the builder deduplicates shared edges across primitives.
func FromDocument(doc *gltf.Document) (*Mesh, error) {
	var (
		vertices []math3d.Vec3
		faces    [][]int
	)

	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}

			positions, err := readPositions(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", gm.Name, err)
			}

			base := len(vertices)
			vertices = append(vertices, positions...)

			if prim.Indices != nil {
				indices, err := readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", gm.Name, err)
				}
				for i := 0; i+2 < len(indices); i += 3 {
					faces = append(faces, []int{
						base + indices[i],
						base + indices[i+1],
						base + indices[i+2],
					})
				}
			} else {
				// No index buffer: sequential triangles.
				for i := 0; i+2 < len(positions); i += 3 {
					faces = append(faces, []int{base + i, base + i + 1, base + i + 2})
				}
			}
		}
	}

	return FromFaces(vertices, faces), nil
}

// readPositions reads a VEC3 float accessor as Vec3 positions.
func readPositions(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected VEC3 float accessor, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		off := i * stride
		out[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return out, nil
}

// readIndices reads a scalar index accessor of any supported component width.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR accessor, got %v", accessor.Type)
	}

	var width int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, width)
	if err != nil {
		return nil, err
	}

	out := make([]int, accessor.Count)
	for i := range accessor.Count {
		off := i * stride
		switch width {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(uint16(data[off]) | uint16(data[off+1])<<8)
		case 4:
			out[i] = int(uint32(data[off]) | uint32(data[off+1])<<8 |
				uint32(data[off+2])<<16 | uint32(data[off+3])<<24)
		}
	}
	return out, nil
}

// accessorBytes resolves an accessor to its backing bytes and element
// stride. Only buffers with embedded data (GLB) are supported; external
// .bin buffers would need IO this loader does not do.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]

	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no embedded data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	start := view.ByteOffset + accessor.ByteOffset
	need := start + (accessor.Count-1)*stride + elemSize
	if accessor.Count == 0 {
		need = start
	}
	if need > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor overruns buffer: need %d bytes, have %d", need, len(buffer.Data))
	}
	return buffer.Data[start:], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
