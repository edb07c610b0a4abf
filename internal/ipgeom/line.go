package ipgeom

// Line is the Plücker-like representation of the intersection of two
// planes: the 2x2 determinants of their (a,b,c) rows and their (a,b,c,d)
// rows. The three "nn" components are the cross product of the two
// plane normals; a valid line has at least one of them non-zero.
type Line struct {
	ABba, BCcb, CAac *Int // cross product of the two plane normals
	ADda, BDdb, CDdc *Int // cross terms with the d-coefficients
}

// IsValid reports whether the line's direction is non-zero.
func (l Line) IsValid() bool {
	return !isZero(l.ABba) || !isZero(l.BCcb) || !isZero(l.CAac)
}

// Direction returns the line's direction vector (bc_cb, ca_ac, ab_ba).
func (l Line) Direction() (x, y, z *Int) { return l.BCcb, l.CAac, l.ABba }
