package sm2ec

import (
	"testing"

	"sm2.mleku.dev/internal/sm2ref"
)

func TestMulVarMatchesReference(t *testing.T) {
	g := genPointMont()
	for i := 0; i < 16; i++ {
		kBig, k := randScalar(t)
		got := jacobianToRefPoint(MulVar([]Jacobian{g}, []Scalar{k}))
		want := sm2ref.SM2.ScalarBaseMult(kBig)
		if got.X.Cmp(want.X) != 0 || got.Y.Cmp(want.Y) != 0 {
			t.Fatalf("MulVar(%x*G) mismatch: got (%x,%x) want (%x,%x)",
				kBig, got.X, got.Y, want.X, want.Y)
		}
	}
}

func TestMulVarMultiScalar(t *testing.T) {
	g := genPointMont()
	g2 := g.Double()

	k1Big, k1 := randScalar(t)
	k2Big, k2 := randScalar(t)

	got := jacobianToRefPoint(MulVar([]Jacobian{g, g2}, []Scalar{k1, k2}))

	gRef := sm2ref.Point{X: sm2ref.SM2.Gx, Y: sm2ref.SM2.Gy}
	g2Ref := sm2ref.SM2.Double(gRef)
	term1 := sm2ref.SM2.ScalarMult(gRef, k1Big)
	term2 := sm2ref.SM2.ScalarMult(g2Ref, k2Big)
	want := sm2ref.SM2.Add(term1, term2)

	if got.X.Cmp(want.X) != 0 || got.Y.Cmp(want.Y) != 0 {
		t.Fatalf("MulVar multi-scalar mismatch: got (%x,%x) want (%x,%x)",
			got.X, got.Y, want.X, want.Y)
	}
}

func TestMulCombinesGeneratorAndVariable(t *testing.T) {
	tbl := CanonicalGeneratorTable()
	g := genPointMont()

	kBig, k := randScalar(t)
	mBig, m := randScalar(t)

	got := jacobianToRefPoint(Mul(tbl, &k, []Jacobian{g}, []Scalar{m}))

	gRef := sm2ref.Point{X: sm2ref.SM2.Gx, Y: sm2ref.SM2.Gy}
	term1 := sm2ref.SM2.ScalarBaseMult(kBig)
	term2 := sm2ref.SM2.ScalarMult(gRef, mBig)
	want := sm2ref.SM2.Add(term1, term2)

	if got.X.Cmp(want.X) != 0 || got.Y.Cmp(want.Y) != 0 {
		t.Fatalf("Mul mismatch: got (%x,%x) want (%x,%x)", got.X, got.Y, want.X, want.Y)
	}
}

func TestMulGeneratorOnlyAndVarOnly(t *testing.T) {
	tbl := CanonicalGeneratorTable()
	g := genPointMont()
	kBig, k := randScalar(t)

	genOnly := jacobianToRefPoint(Mul(tbl, &k, nil, nil))
	want := sm2ref.SM2.ScalarBaseMult(kBig)
	if genOnly.X.Cmp(want.X) != 0 {
		t.Fatal("generator-only Mul mismatch")
	}

	varOnly := jacobianToRefPoint(Mul(nil, nil, []Jacobian{g}, []Scalar{k}))
	if varOnly.X.Cmp(want.X) != 0 {
		t.Fatal("variable-only Mul mismatch")
	}

	none := Mul(nil, nil, nil, nil)
	if !none.IsInfinity() {
		t.Fatal("Mul with no terms must be infinity")
	}
}
