// Package ipgeom implements exact integer plane/point/line algebra over
// arbitrary-width integers, the arithmetic foundation the mesh kernel
// constructor relies on for its decision path. No floating point ever
// appears in a predicate here.
package ipgeom

import "math/big"

// Int is the exact integer type every quantity in this package is built
// from. big.Int already widens to whatever a product needs, which plays
// the role the reference algorithm's per-call-site "mul<K>(a,b)" bit
// budget plays in a fixed-width language: instead of picking a width at
// each call site, every value here is exact regardless of magnitude.
type Int = big.Int

func i(v int64) *Int      { return big.NewInt(v) }
func add(a, b *Int) *Int  { return new(Int).Add(a, b) }
func sub(a, b *Int) *Int  { return new(Int).Sub(a, b) }
func neg(a *Int) *Int     { return new(Int).Neg(a) }
func mul(a, b *Int) *Int  { return new(Int).Mul(a, b) }
func sign(a *Int) int     { return a.Sign() }
func isZero(a *Int) bool  { return len(a.Bits()) == 0 }
func absBig(a *Int) *Int  { return new(Int).Abs(a) }

// gcdBig computes gcd(|a|,|b|) without math/big's GCD preconditions on
// sign, so it tolerates zero and negative operands directly.
func gcdBig(a, b *Int) *Int {
	x := absBig(a)
	y := absBig(b)
	for !isZero(y) {
		x, y = y, new(Int).Mod(x, y)
	}
	return x
}
