package sm2ec

// This file implements modular inversion via the addition chains at
// https://briansmith.org/ecc-inversion-addition-chains-01, adapted to
// the SM2 prime and order. Both exponents (p-3 and n-2) are public, so
// the chains themselves branch freely on loop counters; the only
// secret-dependent operations are the field/scalar multiplies and
// squarings they're built from, which are already constant time.

// InverseSqr computes a^-2 mod p via Fermat's a^(p-3), using the
// published addition chain: build x2=a^3, x4=a^15, x6=a^63, x12, x24,
// x30=a^(2^30-1), x31=a^(2^31-1), x32=a^(2^32-1), then starting from x31
// apply six blocks of (shift, multiply) — five by x32, the last by x30 —
// plus a final two squarings.
// f is expected in Montgomery form; the result is too.
func (f FieldElement) InverseSqr() FieldElement {
	x1 := f
	x2 := x1.MontSqr().MontMul(x1)
	x4 := x2.MontSqrN(2).MontMul(x2)
	x6 := x4.MontSqrN(2).MontMul(x2)
	x12 := x6.MontSqrN(6).MontMul(x6)
	x24 := x12.MontSqrN(12).MontMul(x12)
	x30 := x24.MontSqrN(6).MontMul(x6)
	x31 := x30.MontSqr().MontMul(x1)
	x32 := x31.MontSqr().MontMul(x1)

	r := x31.MontSqrN(33).MontMul(x32)
	r = r.MontSqrN(32).MontMul(x32)
	r = r.MontSqrN(32).MontMul(x32)
	r = r.MontSqrN(32).MontMul(x32)
	r = r.MontSqrN(64).MontMul(x32)
	r = r.MontSqrN(30).MontMul(x30)
	r = r.MontSqrN(2)
	return r
}

// Inverse computes a^-1 mod p as a * a^-2.
func (f FieldElement) Inverse() FieldElement {
	return f.MontMul(f.InverseSqr())
}

// ordInverseTable holds the eleven small odd-binary powers of a
// (1, 11, 101, 111, 1001, 1011, 1111, 10101, 11111, x31, x32, all in
// binary) that both mod-n inversion variants share.
type ordInverseTable struct {
	t [11]Scalar
}

const (
	ordI1 = iota
	ordI11
	ordI101
	ordI111
	ordI1001
	ordI1011
	ordI1111
	ordI10101
	ordI11111
	ordIx31
	ordIx32
)

func buildOrdInverseTable(a Scalar) ordInverseTable {
	var tb ordInverseTable
	tb.t[ordI1] = a

	t := a.MontSqrN(1)
	tb.t[ordI11] = t.MontMul(a)
	tb.t[ordI101] = t.MontMul(tb.t[ordI11])
	tb.t[ordI111] = t.MontMul(tb.t[ordI101])
	tb.t[ordI1001] = t.MontSqrN(2).MontMul(a)

	t = tb.t[ordI101].MontSqrN(1)
	tb.t[ordI1011] = t.MontMul(a)
	tb.t[ordI1111] = t.MontMul(tb.t[ordI101])
	tb.t[ordI10101] = t.MontSqrN(1).MontMul(a)
	tb.t[ordI11111] = tb.t[ordI10101].MontMul(t)

	t = tb.t[ordI10101].MontSqrN(1)
	t = t.MontMul(tb.t[ordI10101]) // x6
	out := t.MontSqrN(2).MontMul(tb.t[ordI11])
	tb.t[ordIx31] = out.MontSqrN(8).MontMul(out)
	tb.t[ordIx32] = tb.t[ordIx31].MontSqrN(8).MontMul(out)
	out = tb.t[ordIx32].MontSqrN(6).MontMul(t)
	tb.t[ordIx31] = out.MontSqrN(1).MontMul(a)
	tb.t[ordIx32] = tb.t[ordIx31].MontSqrN(1).MontMul(a)
	return tb
}

// InverseOrdDense computes a^-1 mod n (via a^(n-2)) using the dense
// addition chain: 11 precomputed small powers plus a fixed 25-step
// (shift, multiply) schedule over the low bits of n-2. s is expected in
// Montgomery form; the result is too.
func (s Scalar) InverseOrdDense() Scalar {
	tb := buildOrdInverseTable(s)

	out := tb.t[ordIx31].MontSqrN(33).MontMul(tb.t[ordIx32])

	chain := [25]struct {
		shift int
		idx   int
	}{
		{32, ordIx32}, {32, ordIx32}, {4, ordI111},
		{3, ordI1}, {11, ordI1111}, {5, ordI1111},
		{4, ordI1011}, {5, ordI1011}, {3, ordI1},
		{7, ordI111}, {5, ordI11}, {9, ordI101},
		{7, ordI10101}, {5, ordI10101}, {5, ordI111},
		{4, ordI111}, {6, ordI11111}, {3, ordI101},
		{10, ordI1001}, {5, ordI111}, {5, ordI111},
		{6, ordI10101}, {2, ordI1}, {9, ordI1001},
		{5, ordI1},
	}
	for _, step := range chain {
		out = out.MontSqrN(step.shift).MontMul(tb.t[step.idx])
	}
	return out
}

// InverseOrdSparse computes a^-1 mod n the same way as InverseOrdDense
// but via the simpler (if less efficient) fixed 4-bit-window schedule
// over a table of the 15 powers a^1..a^15. Kept only so it can be
// cross-checked against InverseOrdDense in tests; InverseOrd delegates
// to the dense form.
func (s Scalar) InverseOrdSparse() Scalar {
	var table [15]Scalar
	table[0] = s
	for i := 2; i < 16; i += 2 {
		table[i-1] = table[i/2-1].MontSqrN(1)
		table[i] = table[i-1].MontMul(table[0])
	}

	t := table[15-1].MontSqrN(4)
	t2 := t.MontMul(table[14-1])
	t = t.MontMul(table[15-1])

	out := t.MontSqrN(8)
	t2 = out.MontMul(t2)
	out = out.MontMul(t)

	t = out.MontSqrN(16)
	t = t.MontMul(t2)
	t2 = t.MontMul(table[1-1])

	out = t.MontSqrN(32)
	out = out.MontMul(t2)
	t = out.MontMul(table[1-1])
	t = t.MontMul(t2)

	out = out.MontSqrN(64)
	out = out.MontMul(t)

	expLo := [32]byte{
		0x7, 0x2, 0x0, 0x3, 0xd, 0xf, 0x6, 0xb, 0x2, 0x1, 0xc, 0x6, 0x0, 0x5, 0x2, 0xb,
		0x5, 0x3, 0xb, 0xb, 0xf, 0x4, 0x0, 0x9, 0x3, 0x9, 0xd, 0x5, 0x4, 0x1, 0x2, 0x1,
	}
	for i := 0; i < 32; i++ {
		out = out.MontSqrN(4)
		if expLo[i] != 0 {
			out = out.MontMul(table[expLo[i]-1])
		}
	}
	return out
}

// InverseOrd computes a^-1 mod n. It delegates to the dense addition
// chain, which the original reference implementation measured as
// modestly faster.
func (s Scalar) InverseOrd() Scalar {
	return s.InverseOrdDense()
}
