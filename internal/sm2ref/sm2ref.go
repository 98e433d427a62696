// Package sm2ref is a deliberately simple, non-constant-time reference
// implementation of the SM2 curve over math/big, used only as a
// differential-testing oracle for internal/sm2ec's property tests.
// Nothing in this package should ever be reached with secret data.
package sm2ref

import "math/big"

// Curve holds the GB/T 32918.5 recommended 256-bit curve parameters.
type Curve struct {
	P, A, B, N, Gx, Gy *big.Int
}

// SM2 is the recommended curve, y² = x³ + ax + b (mod p).
var SM2 = func() *Curve {
	hex := func(s string) *big.Int {
		n, ok := new(big.Int).SetString(s, 16)
		if !ok {
			panic("sm2ref: bad constant")
		}
		return n
	}
	return &Curve{
		P: hex("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFF"),
		A: hex("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFC"),
		B: hex("28E9FA9E9D9F5E344D5A9E4BCF6509A7F39789F515AB8F92DDBCBD414D940E93"),
		N: hex("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFF7203DF6B21C6052B53BBF40939D54123"),
		Gx: hex("32C4AE2C1F1981195F9904466A39C9948FE30BBFF2660BE1715A4589334C74C7"),
		Gy: hex("BC3736A2F4F6779C59BDCEE36B692153D0A9877CC62A474002DF32E52139F0A0"),
	}
}()

// Point is an affine point; nil X (with Y also nil) denotes infinity.
type Point struct {
	X, Y *big.Int
}

// Infinity is the point at infinity.
func Infinity() Point { return Point{} }

func (p Point) IsInfinity() bool { return p.X == nil }

func (c *Curve) mod(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, c.P)
}

func (c *Curve) inv(x *big.Int) *big.Int {
	return new(big.Int).ModInverse(x, c.P)
}

// IsOnCurve reports whether p satisfies y² = x³ + ax + b (mod p).
func (c *Curve) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return true
	}
	y2 := new(big.Int).Mul(p.Y, p.Y)
	y2 = c.mod(y2)

	x3 := new(big.Int).Mul(p.X, p.X)
	x3.Mul(x3, p.X)
	ax := new(big.Int).Mul(c.A, p.X)
	rhs := new(big.Int).Add(x3, ax)
	rhs.Add(rhs, c.B)
	rhs = c.mod(rhs)

	return y2.Cmp(rhs) == 0
}

// Add computes p+q in affine coordinates, the textbook way (not
// constant time; for testing only).
func (c *Curve) Add(p, q Point) Point {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	if p.X.Cmp(q.X) == 0 {
		if c.mod(new(big.Int).Add(p.Y, q.Y)).Sign() == 0 {
			return Infinity()
		}
		return c.Double(p)
	}

	num := c.mod(new(big.Int).Sub(q.Y, p.Y))
	den := c.mod(new(big.Int).Sub(q.X, p.X))
	lambda := c.mod(new(big.Int).Mul(num, c.inv(den)))

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p.X)
	x3.Sub(x3, q.X)
	x3 = c.mod(x3)

	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.Y)
	y3 = c.mod(y3)

	return Point{X: x3, Y: y3}
}

// Double computes 2p.
func (c *Curve) Double(p Point) Point {
	if p.IsInfinity() || p.Y.Sign() == 0 {
		return Infinity()
	}
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, big.NewInt(3))
	num.Add(num, c.A)
	num = c.mod(num)

	den := c.mod(new(big.Int).Add(p.Y, p.Y))
	lambda := c.mod(new(big.Int).Mul(num, c.inv(den)))

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p.X)
	x3.Sub(x3, p.X)
	x3 = c.mod(x3)

	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.Y)
	y3 = c.mod(y3)

	return Point{X: x3, Y: y3}
}

// ScalarMult computes k·p via textbook double-and-add.
func (c *Curve) ScalarMult(p Point, k *big.Int) Point {
	acc := Infinity()
	base := p
	kk := new(big.Int).Mod(k, c.N)
	for i := 0; i < kk.BitLen(); i++ {
		if kk.Bit(i) == 1 {
			acc = c.Add(acc, base)
		}
		base = c.Double(base)
	}
	return acc
}

// ScalarBaseMult computes k·G.
func (c *Curve) ScalarBaseMult(k *big.Int) Point {
	return c.ScalarMult(Point{X: c.Gx, Y: c.Gy}, k)
}
