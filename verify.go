package sm2

import "sm2.mleku.dev/internal/sm2ec"

// Verify checks sig against msg under identity id for the public key
// pub, following GB/T 32918.2-2016 §6.1 signature verification:
//
//	B1/B2: r, s must lie in [1, n-1]
//	B3/B4: e = H(Z‖M)
//	B5:    t = (r+s) mod n, fail if t=0
//	B6:    (x1', y1') = [s]G + [t]Pub
//	B7:    accept iff (e+x1') mod n == r
func Verify(pub *PublicKey, id, msg []byte, sig *Signature) bool {
	if len(id) == 0 {
		id = DefaultID
	}
	if sig.R.IsZero() || sig.S.IsZero() {
		return false
	}

	e, err := computeMsgHash(pub, id, msg)
	if err != nil {
		return false
	}

	t := sig.R.Add(sig.S)
	if t.IsZero() {
		return false
	}

	qAffine := sm2ec.Affine{X: pub.X.ToMont(), Y: pub.Y.ToMont()}
	q := sm2ec.FromAffine(qAffine)

	pt := sm2ec.Mul(generatorTable(), &sig.S, []sm2ec.Jacobian{q}, []sm2ec.Scalar{t})
	x1, err := pt.ToAffineX()
	if err != nil {
		return false
	}

	rPrime := e.Add(fieldToScalarModN(x1))
	return rPrime.Equal(sig.R)
}
