package sm2ec

// Jacobian is a point (X, Y, Z) on the curve in Jacobian projective
// coordinates, corresponding to affine (X/Z², Y/Z³). All three
// coordinates are carried in Montgomery form. The point at infinity is
// represented structurally by Z == 0; X and Y are then don't-care.
type Jacobian struct {
	X, Y, Z FieldElement
}

// Affine is a point (X, Y) in affine coordinates, Montgomery form. The
// point at infinity is the all-zero pair.
type Affine struct {
	X, Y FieldElement
}

// InfinityJacobian is the canonical point-at-infinity.
var InfinityJacobian = Jacobian{}

// IsInfinity reports whether p is the point at infinity (Z == 0).
func (p Jacobian) IsInfinity() bool { return p.Z.IsZero() }

// IsInfinity reports whether a is the all-zero affine point.
func (a Affine) IsInfinity() bool { return a.X.IsZero() && a.Y.IsZero() }

// isInfinityFlag is the constant-time (0/1 uint64) form of IsInfinity,
// for use anywhere the result feeds SelectField/SelectJacobian/SelectAffine
// on a potentially secret point.
func (p Jacobian) isInfinityFlag() uint64 {
	l := p.Z.l
	return isZeroFlag(l[0] | l[1] | l[2] | l[3])
}

func (a Affine) isInfinityFlag() uint64 {
	lx, ly := a.X.l, a.Y.l
	return isZeroFlag(lx[0]|lx[1]|lx[2]|lx[3]) & isZeroFlag(ly[0]|ly[1]|ly[2]|ly[3])
}

// FromAffine lifts an affine point to Jacobian with Z = 1 (Montgomery
// form fieldR1), or to the point at infinity if a is infinity.
func FromAffine(a Affine) Jacobian {
	one := FieldElement{fieldR1}
	z := SelectField(a.isInfinityFlag(), FieldZero, one)
	return Jacobian{a.X, a.Y, z}
}

// SelectJacobian returns a if cond == 1 else b (cond must be 0 or 1),
// without a secret-dependent branch.
func SelectJacobian(cond uint64, a, b Jacobian) Jacobian {
	return Jacobian{
		X: SelectField(cond, a.X, b.X),
		Y: SelectField(cond, a.Y, b.Y),
		Z: SelectField(cond, a.Z, b.Z),
	}
}

// SelectAffine returns a if cond == 1 else b (cond must be 0 or 1),
// without a secret-dependent branch.
func SelectAffine(cond uint64, a, b Affine) Affine {
	return Affine{
		X: SelectField(cond, a.X, b.X),
		Y: SelectField(cond, a.Y, b.Y),
	}
}

// Double computes 2P via the standard a=-3 Jacobian doubling formulas.
// Accepts and returns the point at infinity: when Z=0, Zout = 2·Y·Z is
// 0 regardless of X, Y, so infinity propagates without any branch.
func (p Jacobian) Double() Jacobian {
	s := p.Y.Double()
	zsqr := p.Z.MontSqr()
	s = s.MontSqr()
	zout := p.Y.MontMul(p.Z).Double()
	m := p.X.Add(zsqr)
	zsqr = p.X.Sub(zsqr)
	yout := s.MontSqr().Halve()
	m = m.MontMul(zsqr).Triple()
	s = p.X.MontMul(s)
	tmp := s.Double()
	xout := m.MontSqr().Sub(tmp)
	s = s.Sub(xout)
	yout = s.MontMul(m).Sub(yout)
	return Jacobian{xout, yout, zout}
}

// Add computes P+Q in Jacobian coordinates.
//
// Edge case 2 (H=0, R=0: equal, non-infinite inputs) falls back to
// Double and is NOT constant time. Callers on constant-time scalar
// multiplication paths must guarantee their table construction never
// presents this input pair with secret data.
func (p Jacobian) Add(q Jacobian) Jacobian {
	z1sqr := p.Z.MontSqr()
	z2sqr := q.Z.MontSqr()
	u1 := p.X.MontMul(z2sqr)
	u2 := q.X.MontMul(z1sqr)
	s1 := p.Y.MontMul(z2sqr).MontMul(q.Z)
	s2 := q.Y.MontMul(z1sqr).MontMul(p.Z)
	h := u2.Sub(u1)
	r := s2.Sub(s1)

	if h.IsZero() && r.IsZero() && !p.IsInfinity() && !q.IsInfinity() {
		return p.Double()
	}

	h2 := h.MontSqr()
	h3 := h2.MontMul(h)
	u1h2 := u1.MontMul(h2)
	x3 := r.MontSqr().Sub(h3).Sub(u1h2.Double())
	y3 := r.MontMul(u1h2.Sub(x3)).Sub(s1.MontMul(h3))
	z3 := h.MontMul(p.Z).MontMul(q.Z)

	out := Jacobian{x3, y3, z3}
	out = SelectJacobian(q.isInfinityFlag(), p, out)
	out = SelectJacobian(p.isInfinityFlag(), q, out)
	return out
}

// AddMixed computes P+Q where Q is affine (Z=1), saving three field
// multiplications relative to Add.
func (p Jacobian) AddMixed(q Affine) Jacobian {
	z1sqr := p.Z.MontSqr()
	u2 := q.X.MontMul(z1sqr)
	s2 := q.Y.MontMul(z1sqr).MontMul(p.Z)
	h := u2.Sub(p.X)
	r := s2.Sub(p.Y)

	if h.IsZero() && r.IsZero() && !p.IsInfinity() && !q.IsInfinity() {
		return p.Double()
	}

	h2 := h.MontSqr()
	h3 := h2.MontMul(h)
	u1h2 := p.X.MontMul(h2)
	x3 := r.MontSqr().Sub(h3).Sub(u1h2.Double())
	y3 := r.MontMul(u1h2.Sub(x3)).Sub(p.Y.MontMul(h3))
	z3 := h.MontMul(p.Z)

	out := Jacobian{x3, y3, z3}
	out = SelectJacobian(q.isInfinityFlag(), p, out)
	out = SelectJacobian(p.isInfinityFlag(), FromAffine(q), out)
	return out
}
