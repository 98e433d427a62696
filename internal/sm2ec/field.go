package sm2ec

import "errors"

// ErrCoordinatesOutOfRange is returned when a big-endian input does not
// fit in the 256-bit field, per spec §7.
var ErrCoordinatesOutOfRange = errors.New("sm2ec: coordinate out of range")

// FieldElement is an element of GF(p), p the SM2 field prime. The four
// limbs are little-endian; whether the represented value is in normal
// form (a mod p) or Montgomery form (a*2^256 mod p) is a convention the
// caller tracks — it is never encoded in the bits themselves.
type FieldElement struct {
	l limbs
}

// FieldZero and FieldOne are the normal-form constants 0 and 1.
var (
	FieldZero = FieldElement{}
	FieldOne  = FieldElement{limbs{1, 0, 0, 0}}
)

// SetBytes decodes a 32-byte big-endian value into normal form. It
// returns ErrCoordinatesOutOfRange if the value is >= p.
func (f *FieldElement) SetBytes(b []byte) error {
	if len(b) != 32 {
		return ErrCoordinatesOutOfRange
	}
	var l limbs
	for i := 0; i < 4; i++ {
		l[i] = beWordAt(b, 3-i)
	}
	if _, borrow := subBorrow(l, fieldPrime); borrow != 0 {
		f.l = l
		return nil
	}
	if equalLimbs(l, limbs{}) {
		f.l = l
		return nil
	}
	return ErrCoordinatesOutOfRange
}

// beWordAt reads the i-th 8-byte big-endian word (i=0 is the most
// significant) out of a 32-byte buffer as a little-endian uint64 — the
// "reversing copy, not a memcpy" conversion spec §9 calls for.
func beWordAt(b []byte, i int) uint64 {
	off := i * 8
	return uint64(b[off])<<56 | uint64(b[off+1])<<48 | uint64(b[off+2])<<40 |
		uint64(b[off+3])<<32 | uint64(b[off+4])<<24 | uint64(b[off+5])<<16 |
		uint64(b[off+6])<<8 | uint64(b[off+7])
}

func putBEWord(b []byte, i int, w uint64) {
	off := i * 8
	b[off] = byte(w >> 56)
	b[off+1] = byte(w >> 48)
	b[off+2] = byte(w >> 40)
	b[off+3] = byte(w >> 32)
	b[off+4] = byte(w >> 24)
	b[off+5] = byte(w >> 16)
	b[off+6] = byte(w >> 8)
	b[off+7] = byte(w)
}

// Bytes encodes f (assumed normal form) as 32 big-endian bytes.
func (f *FieldElement) Bytes() []byte {
	out := make([]byte, 32)
	for i := 0; i < 4; i++ {
		putBEWord(out, i, f.l[3-i])
	}
	return out
}

// SetLimbs sets f directly from little-endian limbs, bypassing range
// checks; used internally when a value is already known reduced.
func (f *FieldElement) SetLimbs(l limbs) { f.l = l }

// Limbs exposes the little-endian limb representation.
func (f *FieldElement) Limbs() limbs { return f.l }

func (f FieldElement) IsZero() bool       { return isZeroLimbs(f.l) }
func (f FieldElement) Equal(g FieldElement) bool { return equalLimbs(f.l, g.l) }

// Add returns (f+g) mod p, fully reduced.
func (f FieldElement) Add(g FieldElement) FieldElement {
	return FieldElement{addLimbs(f.l, g.l, fieldPrime)}
}

// Sub returns (f-g) mod p, fully reduced.
func (f FieldElement) Sub(g FieldElement) FieldElement {
	return FieldElement{subLimbs(f.l, g.l, fieldPrime)}
}

// Neg returns (-f) mod p.
func (f FieldElement) Neg() FieldElement {
	return FieldElement{negLimbs(f.l, fieldPrime)}
}

// Double returns (2f) mod p.
func (f FieldElement) Double() FieldElement {
	return FieldElement{doubleLimbsMod(f.l, fieldPrime)}
}

// Triple returns (3f) mod p.
func (f FieldElement) Triple() FieldElement {
	return FieldElement{tripleLimbsMod(f.l, fieldPrime)}
}

// Halve returns (f * 2^-1) mod p.
func (f FieldElement) Halve() FieldElement {
	return FieldElement{halveLimbsMod(f.l, fieldPrime)}
}

// MontMul returns (f*g*R^-1) mod p, R = 2^256.
func (f FieldElement) MontMul(g FieldElement) FieldElement {
	return FieldElement{montMul(f.l, g.l, fieldPrime, fieldInv64)}
}

// MontSqr returns MontMul(f, f).
func (f FieldElement) MontSqr() FieldElement {
	return FieldElement{montSqr(f.l, fieldPrime, fieldInv64)}
}

// MontSqrN applies MontSqr k times in a row; used by addition-chain
// exponentiation to express a run of repeated squarings compactly.
func (f FieldElement) MontSqrN(k int) FieldElement {
	out := f
	for i := 0; i < k; i++ {
		out = out.MontSqr()
	}
	return out
}

// ToMont converts f from normal to Montgomery form.
func (f FieldElement) ToMont() FieldElement {
	return FieldElement{montMul(f.l, fieldR2, fieldPrime, fieldInv64)}
}

// FromMont converts f from Montgomery to normal form.
func (f FieldElement) FromMont() FieldElement {
	return FieldElement{montMul(f.l, limbs{1, 0, 0, 0}, fieldPrime, fieldInv64)}
}

// SelectField returns a if cond == 1 else b (cond must be 0 or 1),
// without a secret-dependent branch.
func SelectField(cond uint64, a, b FieldElement) FieldElement {
	return FieldElement{selectLimbs(cond, a.l, b.l)}
}
