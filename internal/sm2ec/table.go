package sm2ec

// VarTable holds the 16-entry width-5 odd/even multiple table
// (1P..16P) for one point in a variable-point multiplication (§4.9).
// Every gather touches every entry regardless of idx, giving a fixed
// memory-access pattern.
type VarTable struct {
	points [VariableTableWidth]Jacobian
}

// ScatterW5 stores point at logical index idx (1..16). Infinity
// (idx 0) is never stored.
func (t *VarTable) ScatterW5(idx int, point Jacobian) {
	for i := 0; i < VariableTableWidth; i++ {
		cond := eqFlag32(uint32(i), uint32(idx-1))
		t.points[i] = SelectJacobian(cond, point, t.points[i])
	}
}

// GatherW5 reads the entry at logical index idx (0..16), touching every
// entry in the table on every call. idx 0 yields the point at infinity.
func (t *VarTable) GatherW5(idx uint32) Jacobian {
	out := InfinityJacobian
	for i := 0; i < VariableTableWidth; i++ {
		cond := eqFlag32(uint32(i+1), idx)
		out = SelectJacobian(cond, t.points[i], out)
	}
	return out
}

// GenTableRow holds the 64-entry width-7 affine table for one 7-bit
// window of the fixed generator table Tg (§4.8, §9). This is the
// "fixed" variant: entries are affine (no Z needed — the generator
// table never needs a Z, and mixed addition supplies it at Z=1). The
// row is a plain array of affine points, not a bit-sliced layout; every
// gather scans all 64 entries in turn.
type GenTableRow struct {
	points [GeneratorTableWidth]Affine
}

// ScatterW7 stores point at logical index idx (1..64).
func (r *GenTableRow) ScatterW7(idx int, point Affine) {
	for i := 0; i < GeneratorTableWidth; i++ {
		cond := eqFlag32(uint32(i), uint32(idx-1))
		r.points[i] = SelectAffine(cond, point, r.points[i])
	}
}

// GatherW7 reads the entry at logical index idx (0..64), touching every
// entry on every call. idx 0 yields the all-zero affine point (infinity).
func (r *GenTableRow) GatherW7(idx uint32) Affine {
	out := Affine{}
	for i := 0; i < GeneratorTableWidth; i++ {
		cond := eqFlag32(uint32(i+1), idx)
		out = SelectAffine(cond, r.points[i], out)
	}
	return out
}

// UnfixedW7Table is the "unfixed" width-7 gather variant for an
// interleaved projective-derived scratch table, kept in reserve should
// a variable-point path ever need a denser window than width-5.
type UnfixedW7Table struct {
	points [GeneratorTableWidth]Jacobian
}

func (t *UnfixedW7Table) ScatterW7(idx int, point Jacobian) {
	for i := 0; i < GeneratorTableWidth; i++ {
		cond := eqFlag32(uint32(i), uint32(idx-1))
		t.points[i] = SelectJacobian(cond, point, t.points[i])
	}
}

func (t *UnfixedW7Table) GatherW7(idx uint32) Jacobian {
	out := InfinityJacobian
	for i := 0; i < GeneratorTableWidth; i++ {
		cond := eqFlag32(uint32(i+1), idx)
		out = SelectJacobian(cond, t.points[i], out)
	}
	return out
}
