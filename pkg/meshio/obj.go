// Package meshio is the mesh-kernel core's file-IO collaborator: it
// loads candidate polyhedra from, and saves kernel results to, the two
// mesh interchange formats spec.md section 6 names as an external
// responsibility (load/save OBJ/STL -- here OBJ and 3MF). Neither the
// kernel constructor nor the analyzer import this package; it is a
// producer/consumer of their InputMesh/halfmesh.Mesh types only.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/chazu/meshkernel/internal/ipgeom"
	"github.com/chazu/meshkernel/pkg/halfmesh"
	"github.com/chazu/meshkernel/pkg/meshkernel"
)

// LoadOBJScale is the default grid resolution LoadOBJ quantizes vertex
// positions at: OBJ vertices are floats, the kernel's InputMesh needs
// bounded integers, so every coordinate is scaled by this factor and
// rounded to the nearest lattice point before the analyzer ever sees it.
const LoadOBJScale = 1024.0

// LoadOBJ parses a Wavefront OBJ stream into an InputMesh, quantizing
// vertex positions by scale (see quantize.DefaultPrecision for the same
// constant used elsewhere in the pipeline). Only "v" and "f" records are
// interpreted; normals, texture coordinates, materials, and grouping
// directives are ignored, matching the core's input contract of "just
// positions plus face loops". Faces with fewer than 3 distinct vertex
// indices, or an index out of range, are reported as an error rather
// than silently dropped, since a malformed OBJ is an input invariant
// violation (spec.md section 7), not a degeneracy the analyzer already
// knows how to tolerate.
func LoadOBJ(r io.Reader, scale float64) (meshkernel.InputMesh, error) {
	if scale <= 0 {
		return meshkernel.InputMesh{}, fmt.Errorf("meshio: LoadOBJ scale must be positive, got %g", scale)
	}

	var positions []ipgeom.Pos
	var faces [][]int

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
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
				return meshkernel.InputMesh{}, fmt.Errorf("meshio: line %d: vertex record needs 3 coordinates, got %d", lineNo, len(fields)-1)
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			z, errZ := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil || errZ != nil {
				return meshkernel.InputMesh{}, fmt.Errorf("meshio: line %d: malformed vertex coordinates", lineNo)
			}
			positions = append(positions, ipgeom.Pos{
				X: int64(math.Round(x * scale)),
				Y: int64(math.Round(y * scale)),
				Z: int64(math.Round(z * scale)),
			})
		case "f":
			if len(fields) < 4 {
				return meshkernel.InputMesh{}, fmt.Errorf("meshio: line %d: face record needs at least 3 vertices, got %d", lineNo, len(fields)-1)
			}
			face := make([]int, len(fields)-1)
			for i, tok := range fields[1:] {
				idx, err := parseOBJIndex(tok, len(positions))
				if err != nil {
					return meshkernel.InputMesh{}, fmt.Errorf("meshio: line %d: %w", lineNo, err)
				}
				face[i] = idx
			}
			distinct := make(map[int]bool, len(face))
			for _, idx := range face {
				distinct[idx] = true
			}
			if len(distinct) < 3 {
				return meshkernel.InputMesh{}, fmt.Errorf("meshio: line %d: face record needs at least 3 distinct vertices, got %d", lineNo, len(distinct))
			}
			faces = append(faces, face)
		default:
			// vt, vn, g, o, usemtl, mtllib, s, l, ... -- not part of the
			// core's input contract, skipped.
		}
	}
	if err := sc.Err(); err != nil {
		return meshkernel.InputMesh{}, fmt.Errorf("meshio: reading OBJ: %w", err)
	}
	if len(positions) == 0 || len(faces) == 0 {
		return meshkernel.InputMesh{}, fmt.Errorf("meshio: OBJ stream has no usable geometry")
	}
	return meshkernel.InputMesh{Positions: positions, Faces: faces}, nil
}

// parseOBJIndex handles the "v", "v/vt", "v/vt/vn", and "v//vn" forms an
// OBJ face record's per-vertex token may take, returning a 0-based index
// into positions. OBJ indices are 1-based and may be negative (relative
// to the current vertex count); both are normalized here.
func parseOBJIndex(tok string, numPositions int) (int, error) {
	vPart := tok
	if slash := strings.IndexByte(tok, '/'); slash >= 0 {
		vPart = tok[:slash]
	}
	raw, err := strconv.Atoi(vPart)
	if err != nil {
		return 0, fmt.Errorf("malformed face vertex index %q", tok)
	}
	var idx int
	switch {
	case raw > 0:
		idx = raw - 1
	case raw < 0:
		idx = numPositions + raw
	default:
		return 0, fmt.Errorf("face vertex index cannot be 0")
	}
	if idx < 0 || idx >= numPositions {
		return 0, fmt.Errorf("face vertex index %d out of range [0,%d)", idx, numPositions)
	}
	return idx, nil
}

// SaveOBJ writes a candidate polyhedron's live faces to a Wavefront OBJ
// stream, one "f" record per face as it is (faces are not triangulated
// here; call meshkernel.Triangulate first for a triangle-only file),
// de-quantizing exact homogeneous vertex positions by 1/scale. Removed-
// but-not-yet-compacted vertices and faces are skipped; callers that
// want a minimal file should call mesh.Compact() first.
func SaveOBJ(w io.Writer, mesh *halfmesh.Mesh, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("meshio: SaveOBJ scale must be positive, got %g", scale)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# produced by meshkernel")

	objIndex := make(map[halfmesh.VertexID]int)
	nextIndex := 1 // OBJ vertex indices are 1-based
	for vi := range mesh.Vertices {
		v := halfmesh.VertexID(vi)
		if mesh.VertexRemoved(v) {
			continue
		}
		x, y, z, finite := mesh.Vertices[v].Position.Euclidean()
		if !finite {
			return fmt.Errorf("meshio: vertex %d has no finite Euclidean position", v)
		}
		if _, err := fmt.Fprintf(bw, "v %.9g %.9g %.9g\n", x/scale, y/scale, z/scale); err != nil {
			return err
		}
		objIndex[v] = nextIndex
		nextIndex++
	}

	for fi := range mesh.Faces {
		f := halfmesh.FaceID(fi)
		if mesh.FaceRemoved(f) {
			continue
		}
		hes := mesh.FaceHalfedges(f)
		if len(hes) < 3 {
			continue
		}
		bw.WriteString("f")
		for _, he := range hes {
			origin := mesh.Halfedges[he].Origin
			fmt.Fprintf(bw, " %d", objIndex[origin])
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
