// Package sm2ec implements the curve arithmetic engine for the SM2
// elliptic curve defined by GB/T 32918: Montgomery field and scalar
// arithmetic, Jacobian point operations, constant-time table access,
// Booth-recoded windowed scalar multiplication, and addition-chain
// modular inversion.
//
// Every exported operation whose inputs may carry secret data (private
// keys, nonces, scalar bits) runs in constant time: no branch and no
// memory access may depend on the value of a secret limb. The few
// deliberately non-constant-time paths are named at their call sites and
// must never be reached with secret data.
package sm2ec

// limbs is the 4x64 little-endian representation shared by field and
// scalar elements: v = limbs[0] + limbs[1]<<64 + limbs[2]<<128 + limbs[3]<<192.
type limbs = [4]uint64

// Curve parameters, GB/T 32918.5-2017 recommended 256-bit curve.
//
// p = FFFFFFFE FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF 00000000 FFFFFFFF FFFFFFFF
// n = FFFFFFFE FFFFFFFF FFFFFFFF FFFFFFFF 7203DF6B 21C6052B 53BBF409 39D54123
// a = p - 3
// b = 28E9FA9E 9D9F5E34 4D5A9E4B CF6509A7 F39789F5 15AB8F92 DDBCBD41 4D940E93
// Gx = 32C4AE2C 1F198119 5F990446 6A39C994 8FE30BBF F2660BE1 715A4589 334C74C7
// Gy = BC3736A2 F4F6779C 59BDCEE3 6B692153 D0A9877C C62A4740 02DF32E5 2139F0A0
var (
	// p, little-endian limbs.
	fieldPrime = limbs{
		0xFFFFFFFFFFFFFFFF, 0xFFFFFFFF00000000,
		0xFFFFFFFFFFFFFFFF, 0xFFFFFFFEFFFFFFFF,
	}

	// a = p-3, in normal (non-Montgomery) form.
	curveA = limbs{
		0xFFFFFFFFFFFFFFFC, 0xFFFFFFFF00000000,
		0xFFFFFFFFFFFFFFFF, 0xFFFFFFFEFFFFFFFF,
	}

	// b, in normal form.
	curveB = limbs{
		0xDDBCBD414D940E93, 0xF39789F515AB8F92,
		0x4D5A9E4BCF6509A7, 0x28E9FA9E9D9F5E34,
	}

	// R mod p and R^2 mod p, R = 2^256.
	fieldR1 = limbs{0x1, 0xffffffff, 0x0, 0x100000000}
	fieldR2 = limbs{0x200000003, 0x2ffffffff, 0x100000001, 0x400000002}

	// -p^-1 mod 2^64. p ends in the word 2^64-1, so p == -1 (mod 2^64)
	// and this constant is simply 1.
	fieldInv64 uint64 = 0x1

	// group order n, little-endian limbs.
	groupOrder = limbs{
		0x53BBF40939D54123, 0x7203DF6B21C6052B,
		0xFFFFFFFFFFFFFFFF, 0xFFFFFFFEFFFFFFFF,
	}

	// R mod n and R^2 mod n.
	orderR1 = limbs{0xac440bf6c62abedd, 0x8dfc2094de39fad4, 0x0, 0x100000000}
	orderR2 = limbs{
		0x901192af7c114f20, 0x3464504ade6fa2fa,
		0x620fc84c3affe0d4, 0x1eb5e412a22b3d3b,
	}

	// -n^-1 mod 2^64.
	orderInv64 uint64 = 0x327f9e8872350975

	// Gx, Gy, in normal (non-Montgomery) form.
	genX = limbs{
		0x715A4589334C74C7, 0x8FE30BBFF2660BE1,
		0x5F9904466A39C994, 0x32C4AE2C1F198119,
	}
	genY = limbs{
		0x02DF32E52139F0A0, 0xD0A9877CC62A4740,
		0x59BDCEE36B692153, 0xBC3736A2F4F6779C,
	}
)

// GeneratorWindows is the number of 7-bit rows in the fixed generator
// table (spec §3, Tg: 37 rows x 64 points).
const GeneratorWindows = 37

// GeneratorTableWidth is the number of affine points per generator row.
const GeneratorTableWidth = 64

// VariableTableWidth is the number of projective points in a per-point
// window-5 table (1P..16P).
const VariableTableWidth = 16

// CurveA returns the curve coefficient a = p-3, in normal form.
func CurveA() FieldElement { return FieldElement{l: curveA} }

// CurveB returns the curve coefficient b, in normal form.
func CurveB() FieldElement { return FieldElement{l: curveB} }

// Generator returns the base point G in affine, normal form.
func Generator() Affine {
	return Affine{X: FieldElement{l: genX}, Y: FieldElement{l: genY}}
}

// FieldPrime returns the field modulus p, in normal form.
func FieldPrime() FieldElement { return FieldElement{l: fieldPrime} }

// GroupOrder returns the group order n as a Scalar, in normal form.
func GroupOrder() Scalar { return Scalar{l: groupOrder} }
