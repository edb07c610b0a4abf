// Package meshkernel computes the kernel (intersection of closed
// negative halfspaces) of a polyhedron given as a closed, consistently
// oriented mesh, using exact integer arithmetic throughout the decision
// path.
package meshkernel

import (
	"github.com/chazu/meshkernel/pkg/halfmesh"
	"github.com/chazu/meshkernel/pkg/kdop"
)

// Options configures a kernel computation. The zero value is not ready
// to use; call DefaultOptions.
type Options struct {
	// UseHashSetForPlanes deduplicates cutting planes with a hash set
	// keyed on the canonicalized plane value, rather than merging
	// coplanar input faces with a union-find flood fill. Both produce
	// the same cutting-plane set; the hash-set path is cheaper when
	// most faces are already planar-distinct, the flood fill is cheaper
	// when many faces share very few supporting planes.
	UseHashSetForPlanes bool

	// UseBoundingVolume enables the k-DOP early-out before each plane
	// cut. Disabling it is only useful for isolating the cut loop's
	// correctness from the bounding-volume oracle in tests.
	UseBoundingVolume bool

	// KDOPKind selects the bounding-volume shape. Kind3 (the AABB) is
	// always exact; larger kinds carry extra axes for future tightening
	// but currently decide Intersects via the same AABB slab (see
	// pkg/kdop).
	KDOPKind kdop.Kind

	// UseSeidelSolver runs the randomized exact feasibility solver on a
	// background goroutine, polled non-blockingly between plane cuts,
	// to abort early once the kernel is provably empty.
	UseSeidelSolver bool

	// ParallelFeasibility dispatches the Seidel solver on its own
	// goroutine immediately after the cutting-plane list is built,
	// rather than running it synchronously before the first cut. Only
	// meaningful when UseSeidelSolver is true.
	ParallelFeasibility bool

	// TriangulateOutput fan-triangulates every output face after the
	// kernel is computed.
	TriangulateOutput bool

	// MinFacesForParallelSetup is the input face count above which
	// per-face plane construction and per-edge classification are
	// spread across a goroutine pool instead of run on the calling
	// goroutine.
	MinFacesForParallelSetup int

	// MaxKDOPUpdateInterval bounds how many plane cuts may pass between
	// full bounding-volume rebuilds when only incremental Update calls
	// have run; 0 disables periodic rebuilding (Update only).
	MaxKDOPUpdateInterval int

	// VerifyClosedOutput checks, after construction, that every
	// halfedge of the resulting mesh has a twin. A non-closed result
	// mesh is logged but never turned into an error: spec.md section 7
	// treats it as an observable anomaly, not a fatal condition.
	VerifyClosedOutput bool

	// Debug is not read by Compute: it keeps no copy of the input mesh
	// topology and adds no logging to the per-plane cut loop. Callers use
	// it as a flag of their own; the CLI's run command prints
	// Stats.DebugDump for each part when it is set.
	Debug bool

	// OnPlaneCut, when non-nil, is invoked after every plane in the
	// cutting-plane list is processed (whether it actually cut the
	// candidate, was skipped by the k-DOP oracle, or left the mesh
	// unchanged because it was redundant), with the plane's index in
	// the cutting-plane list and the candidate polyhedron's current
	// state. It is the core's only observation point for a caller that
	// wants to render or log cutting progress; the core itself never
	// renders anything (spec.md Non-goals exclude visualization).
	OnPlaneCut func(iteration int, mesh *halfmesh.Mesh)
}

// DefaultOptions mirrors the reference implementation's defaults: a
// flood-fill cutting-plane list, bounding-volume culling on, the richest
// k-DOP, concurrent feasibility checking, no triangulation.
func DefaultOptions() Options {
	return Options{
		UseHashSetForPlanes:      false,
		UseBoundingVolume:        true,
		KDOPKind:                 kdop.Kind12,
		UseSeidelSolver:          true,
		ParallelFeasibility:      true,
		TriangulateOutput:        false,
		MinFacesForParallelSetup: 100_000,
		MaxKDOPUpdateInterval:    0,
		VerifyClosedOutput:       true,
		Debug:                    false,
	}
}
