package meshkernel

import "fmt"

// ErrMarchingOverrun is returned when the cut-boundary marching loop for
// a single plane exceeds its defensive iteration bound without closing
// on its starting vertex. The exact bound is an open question the
// kernel constructor resolves pragmatically; DESIGN.md records the
// choice of 4*len(mesh.Halfedges)+64.
type ErrMarchingOverrun struct {
	PlaneIndex int
}

func (e *ErrMarchingOverrun) Error() string {
	return fmt.Sprintf("meshkernel: marching loop overran its defensive bound while cutting with plane %d", e.PlaneIndex)
}

// errMarchingOverrun is the internal sentinel cutter.marching returns;
// the constructor loop attaches the plane index before handing it to
// the caller as *ErrMarchingOverrun.
var errMarchingOverrun = fmt.Errorf("marching loop overran its defensive bound")

// ErrDegenerateInput is returned when the input mesh has no faces, or
// every face is degenerate (collinear or fewer than 3 distinct
// vertices), leaving nothing to compute a kernel of.
var ErrDegenerateInput = fmt.Errorf("meshkernel: input mesh has no usable faces")
