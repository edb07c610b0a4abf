package ipgeom

import "math/big"

// Pos is a bounded integer position in Z^3, the coordinate type input
// vertices and the candidate polyhedron's cuboid are built from.
type Pos struct {
	X, Y, Z int64
}

// Vec is a displacement in Z^3, used for translation.
type Vec struct {
	X, Y, Z int64
}

func (p Pos) Add(v Vec) Pos { return Pos{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }
func (p Pos) Sub(q Pos) Vec { return Vec{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Point4 is a homogeneous point (X,Y,Z,W) denoting the Euclidean point
// (X/W, Y/W, Z/W). It is the exact coordinate type carried by candidate
// polyhedron vertices once they no longer land on integer coordinates.
type Point4 struct {
	X, Y, Z, W *Int
}

// FromPos lifts an integer position to a homogeneous point with W=1.
func FromPos(p Pos) Point4 {
	return Point4{X: i(p.X), Y: i(p.Y), Z: i(p.Z), W: i(1)}
}

// IsValid reports whether the point denotes a finite Euclidean point.
func (p Point4) IsValid() bool { return !isZero(p.W) }

// Equal reports exact equality of all four components.
func (p Point4) Equal(q Point4) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0 && p.Z.Cmp(q.Z) == 0 && p.W.Cmp(q.W) == 0
}

// Euclidean returns the de-quantized double-precision position. Only
// meaningful when IsValid(); used for output only, never on the
// decision path.
func (p Point4) Euclidean() (x, y, z float64, finite bool) {
	if !p.IsValid() {
		return 0, 0, 0, false
	}
	w := new(big.Float).SetInt(p.W)
	fx, _ := new(big.Float).Quo(new(big.Float).SetInt(p.X), w).Float64()
	fy, _ := new(big.Float).Quo(new(big.Float).SetInt(p.Y), w).Float64()
	fz, _ := new(big.Float).Quo(new(big.Float).SetInt(p.Z), w).Float64()
	finite = isFinite(fx) && isFinite(fy) && isFinite(fz)
	return fx, fy, fz, finite
}

func isFinite(f float64) bool { return f == f && f < maxFinite && f > -maxFinite }

const maxFinite = 1.797693134862315708145274237317043567981e+308
