package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wireview/wireview/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file. Only `v` and `f` records matter for a
// wireframe; everything else (normals, texcoords, groups, materials) is
// ignored.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// ReadOBJ parses OBJ data from r and builds the mesh. Face indices are
// normalized here: OBJ is 1-based, supports `v/vt/vn` slash forms, and
// allows negative indices relative to the current vertex count. The mesh
// builder only ever sees 0-based absolute indices.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	var (
		vertices []math3d.Vec3
		faces    [][]int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var coords [3]float64
			for i := range 3 {
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad vertex coordinate %q", lineNo, fields[i+1])
				}
				coords[i] = val
			}
			vertices = append(vertices, math3d.V3(coords[0], coords[1], coords[2]))

		case "f":
			face := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				// Token forms: "3", "3/2", "3/2/1", "3//1".
				head, _, _ := strings.Cut(tok, "/")
				if head == "" {
					continue
				}
				idx, err := strconv.Atoi(head)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad face index %q", lineNo, tok)
				}
				if idx < 0 {
					// Relative to the vertices seen so far: -1 is the latest.
					idx = len(vertices) + idx + 1
				}
				face = append(face, idx-1)
			}
			if len(face) >= 2 {
				faces = append(faces, face)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	return FromFaces(vertices, faces), nil
}
