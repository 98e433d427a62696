package sm2ec

import "math/bits"

// mulWide computes the full 512-bit product a*b as eight little-endian
// 64-bit limbs, via schoolbook long multiplication.
func mulWide(a, b limbs) (t [8]uint64) {
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c uint64
			lo, c = bits.Add64(lo, t[i+j], 0)
			hi, _ = bits.Add64(hi, 0, c)
			lo, c = bits.Add64(lo, carry, 0)
			hi, _ = bits.Add64(hi, 0, c)
			t[i+j] = lo
			carry = hi
		}
		t[i+4] = carry
	}
	return t
}

// montReduce performs the REDC step of Montgomery reduction: given the
// 512-bit product t of two values < m, it returns t*R^-1 mod m, R = 2^256.
// mInv must equal -m[0]^-1 mod 2^64.
func montReduce(t [8]uint64, m limbs, mInv uint64) limbs {
	// top collects the carry out of t[7]: the running sum stays below
	// 2^513, so the result may need a 257th bit before the final subtraction.
	var top uint64
	for i := 0; i < 4; i++ {
		k := t[i] * mInv
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(k, m[j])
			var c uint64
			lo, c = bits.Add64(lo, t[i+j], 0)
			hi, _ = bits.Add64(hi, 0, c)
			lo, c = bits.Add64(lo, carry, 0)
			hi, _ = bits.Add64(hi, 0, c)
			t[i+j] = lo
			carry = hi
		}
		for k2 := i + 4; k2 < 8; k2++ {
			t[k2], carry = bits.Add64(t[k2], carry, 0)
		}
		top += carry
	}

	var out limbs
	copy(out[:], t[4:8])
	diff, borrow := subBorrow(out, m)
	return selectLimbs(top|(borrow^1), diff, out)
}

func montMul(a, b, m limbs, mInv uint64) limbs {
	return montReduce(mulWide(a, b), m, mInv)
}

func montSqr(a, m limbs, mInv uint64) limbs {
	return montReduce(mulWide(a, a), m, mInv)
}

// addLimbs computes (a+b) mod m, fully reduced, constant time.
func addLimbs(a, b, m limbs) limbs {
	sum, carry := addCarryOut(a, b)
	// sum (+carry*2^256) is < 2m; subtracting m once is always enough.
	// Take the subtraction's result whenever the 257-bit sum was >= m:
	// either the addition itself overflowed 256 bits, or it didn't but
	// sum >= m (no borrow from the subtraction). carry and borrow are
	// already 0/1 flags out of bits.Add64/bits.Sub64, combined by
	// arithmetic rather than a boolean expression.
	diff, borrow := subBorrow(sum, m)
	takeDiff := carry | (borrow ^ 1)
	return selectLimbs(takeDiff, diff, sum)
}

// subBorrow computes a-b, returning the 4-limb result (wrapped mod 2^256)
// and the final borrow (1 if a < b).
func subBorrow(a, b limbs) (limbs, uint64) {
	var diff limbs
	var borrow uint64
	for i := 0; i < 4; i++ {
		diff[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return diff, borrow
}

// nonZeroFlag returns 1 if x != 0, else 0, via the two's-complement
// sign-bit trick (x | -x has its top bit set iff x != 0): never a
// branch on x.
func nonZeroFlag(x uint64) uint64 {
	return (x | -x) >> 63
}

// isZeroFlag is the complement of nonZeroFlag.
func isZeroFlag(x uint64) uint64 {
	return 1 - nonZeroFlag(x)
}

// eqFlag32 returns 1 if a == b, else 0.
func eqFlag32(a, b uint32) uint64 {
	return isZeroFlag(uint64(a ^ b))
}

// selectLimbs returns a if cond == 1 else b (cond must be 0 or 1). The
// mask is derived from cond by arithmetic negation, never a language-level
// conditional on cond's (potentially secret-derived) value.
func selectLimbs(cond uint64, a, b limbs) limbs {
	mask := -cond
	var out limbs
	for i := range out {
		out[i] = (a[i] & mask) | (b[i] & ^mask)
	}
	return out
}

// condSub returns a-m if a>=m, else a. Used to finish a REDC or addition
// whose result is known to lie in [0, 2m).
func condSub(a, m limbs) limbs {
	diff, borrow := subBorrow(a, m)
	return selectLimbs(borrow^1, diff, a)
}

// subLimbs computes (a-b) mod m, fully reduced.
func subLimbs(a, b, m limbs) limbs {
	diff, borrow := subBorrow(a, b)
	sum, _ := addCarryOut(diff, m)
	return selectLimbs(borrow, sum, diff)
}

func addCarryOut(a, b limbs) (limbs, uint64) {
	var sum limbs
	var carry uint64
	for i := 0; i < 4; i++ {
		sum[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return sum, carry
}

// negLimbs computes (-a) mod m: m-a if a!=0, else 0.
func negLimbs(a, m limbs) limbs {
	diff, _ := subBorrow(m, a)
	return selectLimbs(isZeroFlag(a[0]|a[1]|a[2]|a[3]), limbs{}, diff)
}

// doubleLimbsMod computes (2a) mod m.
func doubleLimbsMod(a, m limbs) limbs {
	return addLimbs(a, a, m)
}

// tripleLimbsMod computes (3a) mod m.
func tripleLimbsMod(a, m limbs) limbs {
	return addLimbs(doubleLimbsMod(a, m), a, m)
}

// halveLimbsMod computes (a * 2^-1) mod m: if a is odd, add m first (which
// makes the sum even) before shifting right by one bit; otherwise shift
// directly. Both paths execute; the odd-path sum is selected branchlessly.
func halveLimbsMod(a, m limbs) limbs {
	odd := a[0] & 1
	sum, carry := addCarryOut(a, m)
	chosen := selectLimbs(odd, sum, a)
	topBit := selectUint64(odd, carry, 0)

	var out limbs
	for i := 0; i < 4; i++ {
		lo := chosen[i] >> 1
		if i < 3 {
			lo |= chosen[i+1] << 63
		} else {
			lo |= topBit << 63
		}
		out[i] = lo
	}
	return out
}

// selectUint64 returns a if cond == 1 else b (cond must be 0 or 1).
func selectUint64(cond uint64, a, b uint64) uint64 {
	mask := -cond
	return (a & mask) | (b & ^mask)
}

func isZeroLimbs(a limbs) bool {
	return (a[0] | a[1] | a[2] | a[3]) == 0
}

func equalLimbs(a, b limbs) bool {
	return (a[0]^b[0])|(a[1]^b[1])|(a[2]^b[2])|(a[3]^b[3]) == 0
}
