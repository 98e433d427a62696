// Package sm2 implements the SM2 public-key cryptosystem (GB/T 32918):
// key generation, digital signatures, and public-key encryption over
// the GB/T 32918.5 recommended 256-bit elliptic curve.
package sm2

import (
	"errors"
	"io"

	"sm2.mleku.dev/internal/sm2ec"
)

// ErrInvalidPrivateKey is returned when a private-key scalar is out of
// range ([1, n-1]) or zero.
var ErrInvalidPrivateKey = errors.New("sm2: invalid private key")

// ErrInvalidPublicKey is returned when a public key's coordinates are
// out of range or do not lie on the curve.
var ErrInvalidPublicKey = errors.New("sm2: invalid public key")

// PublicKey is an SM2 public key: a point on the curve in affine
// coordinates, normal (non-Montgomery) form.
type PublicKey struct {
	X, Y sm2ec.FieldElement
}

// PrivateKey is an SM2 private key: a scalar d in [1, n-1] together
// with its public key Q = d·G.
type PrivateKey struct {
	D      sm2ec.Scalar
	Public PublicKey
}

func generatorTable() *sm2ec.GeneratorTable {
	return sm2ec.CanonicalGeneratorTable()
}

// GenerateKey generates a new SM2 private key using rand as the source
// of randomness (typically crypto/rand.Reader).
func GenerateKey(rnd io.Reader) (*PrivateKey, error) {
	var buf [32]byte
	var d sm2ec.Scalar
	for {
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return nil, err
		}
		if err := d.SetBytes(buf[:]); err != nil {
			continue
		}
		if d.IsZero() {
			continue
		}
		break
	}
	return privateKeyFromScalar(d), nil
}

func privateKeyFromScalar(d sm2ec.Scalar) *PrivateKey {
	q := sm2ec.MulGenerator(generatorTable(), d)
	affine, err := q.ToAffine()
	if err != nil {
		// d is nonzero and reduced mod n, so d·G can never be infinity.
		panic(err)
	}
	return &PrivateKey{
		D:      d,
		Public: PublicKey{X: affine.X, Y: affine.Y},
	}
}

// NewPrivateKey builds a PrivateKey from a raw 32-byte big-endian
// scalar, deriving the public key as d·G.
func NewPrivateKey(d []byte) (*PrivateKey, error) {
	var s sm2ec.Scalar
	if err := s.SetBytes(d); err != nil {
		return nil, ErrInvalidPrivateKey
	}
	if s.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	return privateKeyFromScalar(s), nil
}

// NewPublicKey builds a PublicKey from raw 32-byte big-endian X and Y
// coordinates, verifying the point lies on the curve.
func NewPublicKey(x, y []byte) (*PublicKey, error) {
	var fx, fy sm2ec.FieldElement
	if err := fx.SetBytes(x); err != nil {
		return nil, ErrInvalidPublicKey
	}
	if err := fy.SetBytes(y); err != nil {
		return nil, ErrInvalidPublicKey
	}
	pub := &PublicKey{X: fx, Y: fy}
	if !pub.isOnCurve() {
		return nil, ErrInvalidPublicKey
	}
	return pub, nil
}

// isOnCurve checks y² = x³ + ax + b (mod p) in Montgomery form.
func (p *PublicKey) isOnCurve() bool {
	x := p.X.ToMont()
	y := p.Y.ToMont()
	a := sm2ec.CurveA().ToMont()
	b := sm2ec.CurveB().ToMont()

	lhs := y.MontSqr()

	x3 := x.MontSqr().MontMul(x)
	ax := a.MontMul(x)
	rhs := x3.Add(ax).Add(b)

	return lhs.Equal(rhs)
}

// Bytes returns the 32-byte big-endian encoding of the private scalar.
func (k *PrivateKey) Bytes() []byte {
	return k.D.Bytes()
}

// Bytes returns the concatenated 64-byte big-endian X‖Y encoding of the
// public key.
func (p *PublicKey) Bytes() []byte {
	out := make([]byte, 64)
	copy(out[:32], p.X.Bytes())
	copy(out[32:], p.Y.Bytes())
	return out
}
