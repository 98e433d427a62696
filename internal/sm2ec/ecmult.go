package sm2ec

// buildVarTable constructs the 16-entry width-5 table (1P..16P) for one
// point via the doubling/addition schedule of §4.9: the order below
// (2P,3P,4P,6P,5P,7P,8P,12P,10P,14P,13P,11P,15P,9P,16P) never adds a
// point to itself, so Jacobian.Add's point-doubling fallback is never
// triggered here.
func buildVarTable(p Jacobian) *VarTable {
	var t VarTable
	t.points[0] = p // 1P

	p2 := p.Double()
	t.points[1] = p2 // 2P
	p3 := p2.Add(p)
	t.points[2] = p3 // 3P
	p4 := p2.Double()
	t.points[3] = p4 // 4P
	p6 := p3.Double()
	t.points[5] = p6 // 6P
	p5 := p4.Add(p)
	t.points[4] = p5 // 5P
	p7 := p6.Add(p)
	t.points[6] = p7 // 7P
	p8 := p4.Double()
	t.points[7] = p8 // 8P
	p12 := p6.Double()
	t.points[11] = p12 // 12P
	p10 := p5.Double()
	t.points[9] = p10 // 10P
	p14 := p7.Double()
	t.points[13] = p14 // 14P
	p13 := p12.Add(p)
	t.points[12] = p13 // 13P
	p11 := p10.Add(p)
	t.points[10] = p11 // 11P
	p15 := p14.Add(p)
	t.points[14] = p15 // 15P
	p9 := p8.Add(p)
	t.points[8] = p9 // 9P
	p16 := p8.Double()
	t.points[15] = p16 // 16P

	return &t
}

// negateJacobian conditionally negates the Y coordinate of p. neg must
// be 0 or 1.
func negateJacobian(neg uint64, p Jacobian) Jacobian {
	return Jacobian{X: p.X, Y: SelectField(neg, p.Y.Neg(), p.Y), Z: p.Z}
}

const varWindowSize = 5
const varWindowMask = (uint32(1) << (varWindowSize + 1)) - 1
const varTopOverlap = 256 % varWindowSize

// windowOffset returns the byte offset and bit shift used to extract
// the window ending at bit idx from a 33-byte little-endian scalar,
// matching the 1-bit Booth overlap between adjacent windows.
func windowOffset(idx int) (off int, shift uint) {
	return (idx - varTopOverlap) / 8, uint((idx - varTopOverlap) % 8)
}

// MulVar computes Σ scalars[i]·points[i] (§4.9). Every point gets its
// own 16-entry width-5 table; the main loop processes 256 bits top-down
// in 5-bit windows, Booth-recoded, accumulating then doubling 5 times
// per window.
func MulVar(points []Jacobian, scalars []Scalar) Jacobian {
	if len(points) != len(scalars) {
		panic("sm2ec: points and scalars must have same length")
	}
	num := len(points)
	tables := make([]*VarTable, num)
	sStrs := make([][33]byte, num)
	for i := range points {
		tables[i] = buildVarTable(points[i])
		sStrs[i] = scalarToLE33(scalars[i])
	}

	idx := 255
	off, shift := windowOffset(idx)
	wv := (uint32(sStrs[0][off]) >> shift) & varWindowMask
	mag, _ := BoothRecode(varWindowSize, wv)
	acc := tables[0].GatherW5(mag)

	for idx >= varWindowSize {
		start := 0
		if idx == 255 {
			start = 1
		}
		for i := start; i < num; i++ {
			off, shift := windowOffset(idx)
			wv := uint32(sStrs[i][off]) | uint32(sStrs[i][off+1])<<8
			wv = (wv >> shift) & varWindowMask

			mag, neg := BoothRecode(varWindowSize, wv)
			p := tables[i].GatherW5(mag)
			p = negateJacobian(neg, p)
			acc = acc.Add(p)
		}
		idx -= varWindowSize
		for s := 0; s < varWindowSize; s++ {
			acc = acc.Double()
		}
	}

	for i := 0; i < num; i++ {
		wv := (uint32(sStrs[i][0]) << 1) & varWindowMask
		mag, neg := BoothRecode(varWindowSize, wv)
		p := tables[i].GatherW5(mag)
		p = negateJacobian(neg, p)
		acc = acc.Add(p)
	}
	return acc
}

// Mul computes k·G + Σ scalars[i]·points[i], combining a fixed-point
// multiplication against the generator table with a variable-point
// multi-scalar multiplication. Either term may be omitted: pass a nil
// genTbl to skip the generator term, or an empty points/scalars pair to
// skip the variable term.
func Mul(genTbl *GeneratorTable, k *Scalar, points []Jacobian, scalars []Scalar) Jacobian {
	var genPart Jacobian
	haveGen := genTbl != nil && k != nil
	if haveGen {
		genPart = MulGenerator(genTbl, *k)
	}

	var varPart Jacobian
	haveVar := len(points) > 0
	if haveVar {
		varPart = MulVar(points, scalars)
	}

	switch {
	case haveGen && haveVar:
		return genPart.Add(varPart)
	case haveGen:
		return genPart
	case haveVar:
		return varPart
	default:
		return InfinityJacobian
	}
}
