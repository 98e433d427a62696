package sm2ec

// MulGenerator computes k·G using the precomputed width-7 fixed
// generator table tbl (§4.8). k is assumed already reduced to [0, n);
// reducing an out-of-range scalar is the caller's responsibility and is
// explicitly not constant time (§8).
func MulGenerator(tbl *GeneratorTable, k Scalar) Jacobian {
	sStr := scalarToLE33(k)

	const w = 7
	const mask = (uint32(1) << (w + 1)) - 1

	wvalue := (uint32(sStr[0]) & 0x7f) << 1
	mag, neg := BoothRecodeW7(wvalue)
	p := tbl.Row(0).GatherW7(mag)
	p = negateAffine(neg, p)
	acc := FromAffine(p)

	for j := 1; j < GeneratorWindows; j++ {
		bitOff := 7*j - 1
		off := bitOff / 8
		wv := uint32(sStr[off]) | uint32(sStr[off+1])<<8
		wv = (wv >> uint(bitOff%8)) & mask

		mag, neg := BoothRecodeW7(wv)
		p := tbl.Row(j).GatherW7(mag)
		p = negateAffine(neg, p)
		acc = acc.AddMixed(p)
	}
	return acc
}

// negateAffine conditionally negates the Y coordinate of p. neg must be
// 0 or 1.
func negateAffine(neg uint64, p Affine) Affine {
	return Affine{X: p.X, Y: SelectField(neg, p.Y.Neg(), p.Y)}
}

// scalarToLE33 serializes k (normal form) as 33 little-endian bytes,
// the trailing byte always 0 — one byte of headroom so every 7-bit
// window, including the last, can be read as a 16-bit unit.
func scalarToLE33(k Scalar) [33]byte {
	be := k.Bytes()
	var out [33]byte
	for i := 0; i < 32; i++ {
		out[i] = be[31-i]
	}
	return out
}
