package sm2

import (
	"errors"
	"io"

	"sm2.mleku.dev/internal/sm2ec"
)

// ErrSigningFailed is returned when nonce generation could not produce
// a usable signature after repeated retries — practically unreachable,
// since each retry fails with probability roughly 2^-32 (dominated by
// drawing a nonce value >= n).
var ErrSigningFailed = errors.New("sm2: signing failed")

// Signature is an SM2 signature (r, s), both reduced mod n.
type Signature struct {
	R, S sm2ec.Scalar
}

// fieldToScalarModN interprets f's normal-form bytes as an integer and
// reduces it mod n. p and n are close in magnitude (both ~2^256), so a
// single conditional subtraction always suffices.
func fieldToScalarModN(f sm2ec.FieldElement) sm2ec.Scalar {
	b := f.Bytes()
	var s sm2ec.Scalar
	if err := s.SetBytes(b); err == nil {
		return s
	}
	return sm2ec.OrdSubReduce(beBytesToLimbs(b))
}

// Sign produces an SM2 signature over msg under identity id, using priv
// and rnd as the source of per-signature nonce randomness. Follows the
// GB/T 32918.2-2016 §6.1 signature generation algorithm: a fresh nonce
// k is drawn for every attempt, and the attempt is retried (never
// reusing k) if r=0 or r+k≡0 (mod n).
func Sign(rnd io.Reader, priv *PrivateKey, id, msg []byte) (*Signature, error) {
	if len(id) == 0 {
		id = DefaultID
	}
	e, err := computeMsgHash(&priv.Public, id, msg)
	if err != nil {
		return nil, err
	}

	dMont := priv.D.ToMont()
	onePlusD := dMont.Add(sm2ec.ScalarOne.ToMont())
	invMont := onePlusD.InverseOrd()

	tbl := generatorTable()
	var buf [32]byte

	const maxAttempts = 1 << 20
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var k sm2ec.Scalar
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return nil, err
		}
		if err := k.SetBytes(buf[:]); err != nil {
			continue
		}
		if k.IsZero() {
			continue
		}

		rPoint := sm2ec.MulGenerator(tbl, k)
		x1, err := rPoint.ToAffineX()
		if err != nil {
			// k nonzero and reduced mod n, so k·G cannot be infinity;
			// treat as any other vanishingly unlikely retry condition.
			continue
		}

		r := e.Add(fieldToScalarModN(x1))
		if r.IsZero() {
			continue
		}
		rk := r.Add(k)
		if rk.IsZero() {
			continue
		}

		kMont := k.ToMont()
		rMont := r.ToMont()
		sMont := kMont.Add(rMont).MontMul(invMont).Sub(rMont)

		return &Signature{R: r, S: sMont.FromMont()}, nil
	}
	return nil, ErrSigningFailed
}
