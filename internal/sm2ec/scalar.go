package sm2ec

import "errors"

// ErrScalarOutOfRange is returned when a big-endian input does not
// represent a value in [0, n), n the group order.
var ErrScalarOutOfRange = errors.New("sm2ec: scalar out of range")

// Scalar is an element of Z/nZ, n the SM2 group order. Used for private
// keys, nonces, and the r/s signature components. As with FieldElement,
// normal-vs-Montgomery form is a caller-tracked convention.
type Scalar struct {
	l limbs
}

var (
	ScalarZero = Scalar{}
	ScalarOne  = Scalar{limbs{1, 0, 0, 0}}
)

// SetBytes decodes a 32-byte big-endian value into normal form. It
// returns ErrScalarOutOfRange if the value is >= n.
func (s *Scalar) SetBytes(b []byte) error {
	if len(b) != 32 {
		return ErrScalarOutOfRange
	}
	var l limbs
	for i := 0; i < 4; i++ {
		l[i] = beWordAt(b, 3-i)
	}
	if _, borrow := subBorrow(l, groupOrder); borrow != 0 {
		s.l = l
		return nil
	}
	if equalLimbs(l, limbs{}) {
		s.l = l
		return nil
	}
	return ErrScalarOutOfRange
}

// Bytes encodes s (assumed normal form) as 32 big-endian bytes.
func (s *Scalar) Bytes() []byte {
	out := make([]byte, 32)
	for i := 0; i < 4; i++ {
		putBEWord(out, i, s.l[3-i])
	}
	return out
}

// SetLimbs sets s directly from little-endian limbs, bypassing range checks.
func (s *Scalar) SetLimbs(l limbs) { s.l = l }

// Limbs exposes the little-endian limb representation.
func (s *Scalar) Limbs() limbs { return s.l }

func (s Scalar) IsZero() bool        { return isZeroLimbs(s.l) }
func (s Scalar) Equal(t Scalar) bool { return equalLimbs(s.l, t.l) }

// Add returns (s+t) mod n.
func (s Scalar) Add(t Scalar) Scalar {
	return Scalar{addLimbs(s.l, t.l, groupOrder)}
}

// Sub returns (s-t) mod n.
func (s Scalar) Sub(t Scalar) Scalar {
	return Scalar{subLimbs(s.l, t.l, groupOrder)}
}

// Neg returns (-s) mod n.
func (s Scalar) Neg() Scalar {
	return Scalar{negLimbs(s.l, groupOrder)}
}

// Double returns (2s) mod n.
func (s Scalar) Double() Scalar {
	return Scalar{doubleLimbsMod(s.l, groupOrder)}
}

// Triple returns (3s) mod n.
func (s Scalar) Triple() Scalar {
	return Scalar{tripleLimbsMod(s.l, groupOrder)}
}

// Halve returns (s * 2^-1) mod n.
func (s Scalar) Halve() Scalar {
	return Scalar{halveLimbsMod(s.l, groupOrder)}
}

// MontMul returns (s*t*R^-1) mod n, R = 2^256.
func (s Scalar) MontMul(t Scalar) Scalar {
	return Scalar{montMul(s.l, t.l, groupOrder, orderInv64)}
}

// MontSqr returns MontMul(s, s).
func (s Scalar) MontSqr() Scalar {
	return Scalar{montSqr(s.l, groupOrder, orderInv64)}
}

// MontSqrN (ord_sqr_mont) applies MontSqr k times in a row, combining
// squarings for addition-chain exponentiation.
func (s Scalar) MontSqrN(k int) Scalar {
	out := s
	for i := 0; i < k; i++ {
		out = out.MontSqr()
	}
	return out
}

// OrdSubReduce folds a value that may be marginally >= n (up to a 257-bit
// input encoded in limbs) back into [0, n) by a single conditional
// subtraction. Used after wide additions that might overflow n once.
func OrdSubReduce(l limbs) Scalar {
	return Scalar{condSub(l, groupOrder)}
}

// OrdNegate (ord_negate) returns n-a for a in [1,n); zero maps to zero.
func (s Scalar) OrdNegate() Scalar {
	return s.Neg()
}

// ToMont converts s from normal to Montgomery form.
func (s Scalar) ToMont() Scalar {
	return Scalar{montMul(s.l, orderR2, groupOrder, orderInv64)}
}

// FromMont converts s from Montgomery to normal form.
func (s Scalar) FromMont() Scalar {
	return Scalar{montMul(s.l, limbs{1, 0, 0, 0}, groupOrder, orderInv64)}
}

// SelectScalar returns a if cond == 1 else b (cond must be 0 or 1),
// without a secret-dependent branch.
func SelectScalar(cond uint64, a, b Scalar) Scalar {
	return Scalar{selectLimbs(cond, a.l, b.l)}
}
