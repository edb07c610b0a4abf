package meshkernel

import (
	"fmt"
	"io"
	"time"

	"github.com/chazu/meshkernel/pkg/halfmesh"
	goon "github.com/shurcooL/go-goon"
)

// Stats is the benchmark/diagnostic record produced alongside every
// Result: counts a caller can use to judge how much of the cutting
// plane work the concave-face boundary actually did versus the convex
// remainder, plus the per-edge-state breakdown and wall-clock duration
// SPEC_FULL.md's benchmark_data mapping asks for.
type Stats struct {
	InputFaces                int
	KernelFaces               int
	ConvexContributionKernel  int
	ConcaveContributionKernel int
	IsConvex                  bool
	FeasibilityEarlyOut       bool
	NumberConcavePlanes       int
	TotalPlanes               int

	// ConvexEdges, PlanarEdges, ConcaveEdges, BoundaryEdges, and
	// DegenerateEdges partition every edge analyze() classified, one
	// count per EdgeState (EdgeUnclassified never survives analyze, so
	// it has no counter here).
	ConvexEdges     int
	PlanarEdges     int
	ConcaveEdges    int
	BoundaryEdges   int
	DegenerateEdges int

	// Duration is the wall-clock time Compute spent on this input, from
	// entry to the point the Result was ready to return.
	Duration time.Duration
}

// DebugDump pretty-prints s and, when mesh is non-nil, the candidate
// polyhedron's live vertex and face counts and its vertex arena via
// go-goon, gated behind Options.Debug
// by convention at the call site -- this is the core's only dependency
// on a pretty-printing library, standing in for the original's debug
// visualization hooks (spec.md Non-goals exclude an actual GUI).
func (s Stats) DebugDump(w io.Writer, mesh *halfmesh.Mesh) {
	fmt.Fprintln(w, "meshkernel: stats")
	fmt.Fprint(w, goon.Sdump(s))
	if mesh == nil {
		return
	}
	fmt.Fprintf(w, "meshkernel: candidate polyhedron: %d vertices, %d faces (live)\n",
		mesh.LiveVertexCount(), mesh.LiveFaceCount())
	fmt.Fprint(w, goon.Sdump(mesh.Vertices))
}
