// Package seidel implements the exact randomized Seidel linear
// feasibility solver: decide whether the intersection of N halfspaces
// is nonempty using only exact integer predicates.
package seidel

import (
	"math/rand"
	"sync/atomic"

	"github.com/chazu/meshkernel/internal/ipgeom"
)

// State is the outcome of a feasibility decision.
type State int

const (
	Infeasible State = iota
	HasSolution
)

// solution is the running intersection of the planes processed so far:
// whole space, a plane, a line, or a point, along with the 1-3
// supporting plane indices (into the solver's shuffled working order).
type solution struct {
	idx0, idx1, idx2 int
	plane            ipgeom.Plane
	line             ipgeom.Line
	position         ipgeom.Point4
}

func (s *solution) reset() { s.idx0, s.idx1, s.idx2 = -1, -1, -1 }

func (s *solution) append(index int, plane ipgeom.Plane) {
	switch {
	case s.idx0 < 0:
		s.idx0 = index
		s.plane = plane
	case s.idx1 < 0:
		s.idx1 = index
		s.line = ipgeom.IntersectPlanes(s.plane, plane)
	default:
		s.idx2 = index
		s.position = ipgeom.IntersectLinePlane(s.line, plane)
	}
}

func (s *solution) isSpace() bool { return s.idx0 < 0 }
func (s *solution) isPlane() bool { return s.idx0 >= 0 && s.idx1 < 0 }
func (s *solution) isLine() bool  { return s.idx1 >= 0 && s.idx2 < 0 }
func (s *solution) isPoint() bool { return s.idx2 >= 0 }

func (s *solution) anyPoint() ipgeom.Point4 {
	switch {
	case s.isPoint():
		return s.position
	case s.isLine():
		return ipgeom.AnyPointOnLine(s.line)
	default:
		return ipgeom.AnyPointOnPlane(s.plane)
	}
}

// Witness is the feasible point/line/plane the solver last found,
// exposed alongside State so callers can cross-check invariant 5 (the
// constructor's has_kernel must agree with this solver on the same
// plane set).
type Witness struct {
	PlaneIndices [3]int // indices into the caller's original plane slice, -1 if unused
	Point        ipgeom.Point4
}

// Solver holds one feasibility problem: a fixed set of planes, a
// shuffled working order (randomness is required for Seidel's expected
// linear running time), and a cooperative stop flag. A Solver is used
// once: construct with New, call Solve (optionally from a goroutine),
// call Stop at most once to request cancellation, and read the result
// exactly once.
type Solver struct {
	mapping []int
	planes  []ipgeom.Plane

	shouldStop atomic.Bool

	sol solution
}

// New shuffles planes into a random working order and returns a solver
// ready to run. The input slice is not retained; New copies it.
func New(planes []ipgeom.Plane, rng *rand.Rand) *Solver {
	n := len(planes)
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = i
	}
	rng.Shuffle(n, func(i, j int) { mapping[i], mapping[j] = mapping[j], mapping[i] })

	shuffled := make([]ipgeom.Plane, n)
	for i, m := range mapping {
		shuffled[i] = planes[m]
	}

	return &Solver{mapping: mapping, planes: shuffled}
}

// Stop requests cooperative cancellation. Idempotent; safe to call
// after Solve has already returned, in which case it is a no-op.
func (s *Solver) Stop() { s.shouldStop.Store(true) }

// Witness returns the supporting planes and point of the most recent
// Solve call, valid when it returned HasSolution.
func (s *Solver) Witness() Witness {
	w := Witness{PlaneIndices: [3]int{-1, -1, -1}}
	if s.sol.idx0 >= 0 {
		w.PlaneIndices[0] = s.mapping[s.sol.idx0]
	}
	if s.sol.idx1 >= 0 {
		w.PlaneIndices[1] = s.mapping[s.sol.idx1]
	}
	if s.sol.idx2 >= 0 {
		w.PlaneIndices[2] = s.mapping[s.sol.idx2]
	}
	w.Point = s.sol.anyPoint()
	return w
}

// Solve decides feasibility of the intersection of all halfspaces given
// to New. On cancellation it returns Infeasible "as if" infeasible --
// callers must treat a cancelled-before-complete result as inconclusive
// rather than as proof of emptiness (see the package doc on Stop).
func (s *Solver) Solve() State {
	return s.solve3D(s.planes)
}

func (s *Solver) solve3D(planes []ipgeom.Plane) State {
	s.sol.reset()
	for pi := 0; pi < len(planes); pi++ {
		if s.shouldStop.Load() {
			return Infeasible
		}
		plane := s.planes[pi]

		switch {
		case s.sol.isPoint():
			if ipgeom.Classify(s.sol.position, plane) <= 0 {
				continue
			}
		case s.sol.isLine():
			if ipgeom.AreParallelPlaneLine(plane, s.sol.line) {
				if ipgeom.Classify(ipgeom.AnyPointOnLine(s.sol.line), plane) <= 0 {
					continue
				}
			} else {
				s.sol.append(pi, plane)
				continue
			}
		case s.sol.isPlane():
			if ipgeom.AreParallelPlanes(s.sol.plane, plane) {
				if ipgeom.Classify(ipgeom.AnyPointOnPlane(s.sol.plane), plane) <= 0 {
					continue
				}
			} else {
				s.sol.append(pi, plane)
				continue
			}
		default: // whole space
			s.sol.append(pi, plane)
			continue
		}

		if s.solve2D(planes[:pi], pi) == Infeasible {
			return Infeasible
		}
	}
	return HasSolution
}

func (s *Solver) solve2D(planes []ipgeom.Plane, fixedIdx3D int) State {
	s.sol.reset()
	fixedPlane := s.planes[fixedIdx3D]
	s.sol.append(fixedIdx3D, fixedPlane)

	for pi := 0; pi < len(planes); pi++ {
		if (pi+1)%1000 == 0 && s.shouldStop.Load() {
			return Infeasible
		}
		plane := planes[pi]

		switch {
		case s.sol.isPoint():
			if ipgeom.Classify(s.sol.position, plane) <= 0 {
				continue
			}
		case s.sol.isLine():
			if ipgeom.AreParallelPlaneLine(plane, s.sol.line) {
				if ipgeom.Classify(ipgeom.AnyPointOnLine(s.sol.line), plane) <= 0 {
					continue
				}
			} else {
				s.sol.append(pi, plane)
				continue
			}
		default: // plane (always true here: solve2D starts with isPlane())
			if ipgeom.AreParallelPlanes(s.sol.plane, plane) {
				if ipgeom.Classify(ipgeom.AnyPointOnPlane(s.sol.plane), plane) <= 0 {
					continue
				}
			} else {
				s.sol.append(pi, plane)
				continue
			}
		}

		if ipgeom.AreParallelPlanes(plane, fixedPlane) {
			if ipgeom.Classify(ipgeom.AnyPointOnPlane(fixedPlane), plane) == 1 {
				return Infeasible
			}
		}

		if s.solve1D(s.planes[:pi], fixedIdx3D, pi) == Infeasible {
			return Infeasible
		}
	}
	return HasSolution
}

// interval1D tracks the bounded (or half-bounded, or unbounded) segment
// of the current line that remains feasible against the planes seen so
// far in the 1D sub-problem.
type interval1D struct {
	leftIdx, rightIdx             int
	leftPoint, rightPoint         ipgeom.Point4
	leftOrientation, rightOrientation int
}

func newInterval1D() interval1D { return interval1D{leftIdx: -1, rightIdx: -1} }

func (iv interval1D) isLine() bool      { return iv.leftIdx < 0 }
func (iv interval1D) isOneSided() bool  { return iv.leftIdx >= 0 && iv.rightIdx < 0 }
func (iv interval1D) isClosed() bool    { return iv.leftIdx >= 0 && iv.rightIdx >= 0 }

func (s *Solver) solve1D(planes []ipgeom.Plane, fixedIdx3D, fixedIdx2D int) State {
	s.sol.reset()
	s.sol.append(fixedIdx3D, s.planes[fixedIdx3D])
	s.sol.append(fixedIdx2D, s.planes[fixedIdx2D])

	iv := newInterval1D()

	for pi := 0; pi < len(planes); pi++ {
		plane := planes[pi]

		switch {
		case iv.isClosed():
			cLeft := ipgeom.Classify(iv.leftPoint, plane)
			cRight := ipgeom.Classify(iv.rightPoint, plane)
			if cLeft == 1 {
				if cRight == 1 {
					return Infeasible
				}
				iv.leftIdx = pi
				iv.leftPoint = ipgeom.IntersectLinePlane(s.sol.line, plane)
			} else if cRight == 1 {
				iv.rightIdx = pi
				iv.rightPoint = ipgeom.IntersectLinePlane(s.sol.line, plane)
			}

		case iv.isOneSided():
			c := ipgeom.Classify(iv.leftPoint, plane)
			o := ipgeom.LineOrientation(s.sol.line, plane)
			switch {
			case o == 0:
				if c > 0 {
					return Infeasible
				}
			case c == 1:
				if o == iv.leftOrientation {
					iv.leftIdx = pi
					iv.leftOrientation = o
					iv.leftPoint = ipgeom.IntersectLinePlane(s.sol.line, plane)
				} else {
					return Infeasible
				}
			case o != iv.leftOrientation:
				iv.rightIdx = pi
				iv.rightOrientation = o
				iv.rightPoint = ipgeom.IntersectLinePlane(s.sol.line, plane)
			}

		default: // isLine
			o := ipgeom.LineOrientation(s.sol.line, plane)
			if o == 0 {
				if ipgeom.Classify(ipgeom.AnyPointOnLine(s.sol.line), plane) == 1 {
					return Infeasible
				}
			} else {
				iv.leftIdx = pi
				iv.leftOrientation = o
				iv.leftPoint = ipgeom.IntersectLinePlane(s.sol.line, plane)
			}
		}
	}

	if iv.leftIdx >= 0 {
		s.sol.append(iv.leftIdx, planes[iv.leftIdx])
	}
	return HasSolution
}
