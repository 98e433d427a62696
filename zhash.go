package sm2

import (
	"encoding/binary"
	"errors"

	"sm2.mleku.dev/internal/sm2ec"
	"sm2.mleku.dev/internal/sm3"
)

// DefaultID is the user identity used when the caller does not supply
// one, per GB/T 32918.2-2016 example 4.2.
var DefaultID = []byte("1234567812345678")

// ErrIDTooLarge is returned when an identity's bit length does not fit
// the 16-bit ENTL field (GB/T 32918.2-2016 §5.5).
var ErrIDTooLarge = errors.New("sm2: identity too large for ENTL field")

// ComputeZ computes the Z value for pub under identity id:
//
//	Z = SM3(ENTL‖ID‖a‖b‖Gx‖Gy‖Px‖Py)
//
// ENTL is the two-byte big-endian bit length of id. Z binds a public key
// and identity into every subsequent signature or verification digest.
func ComputeZ(pub *PublicKey, id []byte) ([]byte, error) {
	bitLen := uint64(len(id)) * 8
	if bitLen > 0xFFFF {
		return nil, ErrIDTooLarge
	}

	h := sm3.New()
	var entl [2]byte
	binary.BigEndian.PutUint16(entl[:], uint16(bitLen))
	h.Write(entl[:])
	h.Write(id)

	g := sm2ec.Generator()
	curveA := sm2ec.CurveA()
	curveB := sm2ec.CurveB()
	h.Write(curveA.Bytes())
	h.Write(curveB.Bytes())
	h.Write(g.X.Bytes())
	h.Write(g.Y.Bytes())
	h.Write(pub.X.Bytes())
	h.Write(pub.Y.Bytes())

	return h.Sum(nil), nil
}

// computeMsgHash returns e = SM3(Z‖M) as a Scalar, reduced mod n.
func computeMsgHash(pub *PublicKey, id, msg []byte) (sm2ec.Scalar, error) {
	z, err := ComputeZ(pub, id)
	if err != nil {
		return sm2ec.Scalar{}, err
	}
	h := sm3.New()
	h.Write(z)
	h.Write(msg)
	digest := h.Sum(nil)

	var e sm2ec.Scalar
	// SM3 digests may exceed n numerically; reduce mod n by trial
	// subtraction exactly as GB/T 32918.2 §6.1 prescribes (interpret
	// the big-endian digest as an integer, and if it does not fit in
	// [0, n) subtract n once — the digest is 256 bits and n is close
	// to 2^256, so a single conditional subtraction always suffices).
	if err := e.SetBytes(digest); err != nil {
		e = sm2ec.OrdSubReduce(beBytesToLimbs(digest))
	}
	return e, nil
}

// beBytesToLimbs decodes a 32-byte big-endian value into the package's
// shared little-endian 4x64 limb layout.
func beBytesToLimbs(b []byte) [4]uint64 {
	var l [4]uint64
	for i := 0; i < 4; i++ {
		off := 24 - 8*i
		l[i] = binary.BigEndian.Uint64(b[off : off+8])
	}
	return l
}
