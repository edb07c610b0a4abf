package ipgeom

// Profile describes the bit-width budget a caller is operating under,
// mirroring ipg::geometry<bits_pos,bits_normal> from the reference
// implementation. Go's math/big is already exact at any width, so
// Profile isn't load-bearing for overflow avoidance the way it is in a
// fixed-width language; it exists so callers can validate that their
// input positions and plane normals stay within the bounds the rest of
// the system assumes (de-quantization scale, k-DOP corner construction).
type Profile struct {
	BitsPosition int
	BitsNormal   int
}

// DefaultProfile matches geometry<26,55> from the reference solver, the
// profile the Seidel solver and kernel constructor are sized around.
var DefaultProfile = Profile{BitsPosition: 26, BitsNormal: 55}

func (p Profile) BitsPlaneD() int         { return p.BitsPosition + p.BitsNormal + 2 }
func (p Profile) BitsDeterminantABC() int { return 3*p.BitsNormal + 3 }
func (p Profile) BitsDeterminantXXD() int { return 2*p.BitsNormal + p.BitsPlaneD() + 3 }

func (p Profile) boundPosition() *Int { return new(Int).Lsh(i(1), uint(p.BitsPosition)) }
func (p Profile) boundNormal() *Int   { return new(Int).Lsh(i(1), uint(p.BitsNormal)) }

// ValidatePosition reports whether pos stays within this profile's
// declared position bound.
func (p Profile) ValidatePosition(pos Pos) bool {
	b := p.boundPosition()
	return absBig(i(pos.X)).Cmp(b) <= 0 && absBig(i(pos.Y)).Cmp(b) <= 0 && absBig(i(pos.Z)).Cmp(b) <= 0
}

// ValidateNormal reports whether a plane's normal stays within this
// profile's declared normal bound.
func (p Profile) ValidateNormal(pl Plane) bool {
	b := p.boundNormal()
	return absBig(pl.A).Cmp(b) <= 0 && absBig(pl.B).Cmp(b) <= 0 && absBig(pl.C).Cmp(b) <= 0
}
