package sm2ec

// ToAffineMont converts a Jacobian point with Z != 0 to affine
// coordinates, performing exactly one field inversion (via InverseSqr),
// leaving the result in Montgomery form — for internal use when the
// affine point will feed straight back into further Jacobian
// arithmetic (table construction). Returns ErrPointAtInfinity if p is
// the point at infinity; no partial result is returned in that case.
func (p Jacobian) ToAffineMont() (Affine, error) {
	if p.IsInfinity() {
		return Affine{}, ErrPointAtInfinity
	}
	zInv2 := p.Z.InverseSqr()
	x := p.X.MontMul(zInv2)
	zInv3 := zInv2.MontSqr().MontMul(p.Z)
	y := p.Y.MontMul(zInv3)
	return Affine{X: x, Y: y}, nil
}

// ToAffine converts a Jacobian point with Z != 0 to affine coordinates
// in normal (non-Montgomery) form — the public, publishable
// representation. The caller may skip Y recovery by calling ToAffineX
// instead when only the X coordinate is needed. Returns
// ErrPointAtInfinity if p is the point at infinity.
func (p Jacobian) ToAffine() (Affine, error) {
	a, err := p.ToAffineMont()
	if err != nil {
		return Affine{}, err
	}
	return Affine{X: a.X.FromMont(), Y: a.Y.FromMont()}, nil
}

// ToAffineX recovers only the X coordinate, in normal form, skipping
// the Y-specific multiply. Returns ErrPointAtInfinity if p is the point
// at infinity.
func (p Jacobian) ToAffineX() (FieldElement, error) {
	if p.IsInfinity() {
		return FieldElement{}, ErrPointAtInfinity
	}
	zInv2 := p.Z.InverseSqr()
	return p.X.MontMul(zInv2).FromMont(), nil
}
