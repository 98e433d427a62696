package sm2ec

import (
	"crypto/rand"
	"math/big"
	"testing"

	"sm2.mleku.dev/internal/sm2ref"
)

func randScalar(t *testing.T) (*big.Int, Scalar) {
	t.Helper()
	for {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			t.Fatal(err)
		}
		n := new(big.Int).SetBytes(b)
		if n.Cmp(sm2ref.SM2.N) >= 0 {
			continue
		}
		var s Scalar
		if err := s.SetBytes(b); err != nil {
			t.Fatalf("SetBytes: %v", err)
		}
		return n, s
	}
}

func scalarToBig(s Scalar) *big.Int {
	return new(big.Int).SetBytes(s.Bytes())
}

func TestScalarAddSubMatchBigInt(t *testing.T) {
	for i := 0; i < 64; i++ {
		an, a := randScalar(t)
		bn, b := randScalar(t)

		gotAdd := scalarToBig(a.Add(b))
		wantAdd := new(big.Int).Add(an, bn)
		wantAdd.Mod(wantAdd, sm2ref.SM2.N)
		if gotAdd.Cmp(wantAdd) != 0 {
			t.Fatalf("Add mismatch: got %x want %x", gotAdd, wantAdd)
		}

		gotSub := scalarToBig(a.Sub(b))
		wantSub := new(big.Int).Sub(an, bn)
		wantSub.Mod(wantSub, sm2ref.SM2.N)
		if gotSub.Cmp(wantSub) != 0 {
			t.Fatalf("Sub mismatch: got %x want %x", gotSub, wantSub)
		}
	}
}

func TestScalarMontRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		_, a := randScalar(t)
		got := a.ToMont().FromMont()
		if !got.Equal(a) {
			t.Fatalf("ToMont/FromMont round trip failed for %x", a.Bytes())
		}
	}
}

func TestScalarMontMulMatchesBigInt(t *testing.T) {
	for i := 0; i < 64; i++ {
		an, a := randScalar(t)
		bn, b := randScalar(t)

		got := scalarToBig(a.ToMont().MontMul(b.ToMont()).FromMont())
		want := new(big.Int).Mul(an, bn)
		want.Mod(want, sm2ref.SM2.N)
		if got.Cmp(want) != 0 {
			t.Fatalf("MontMul mismatch: got %x want %x", got, want)
		}
	}
}

func TestScalarInverseOrdDenseAndSparseAgree(t *testing.T) {
	for i := 0; i < 32; i++ {
		an, a := randScalar(t)
		if an.Sign() == 0 {
			continue
		}
		aMont := a.ToMont()
		dense := aMont.InverseOrdDense()
		sparse := aMont.InverseOrdSparse()
		if !dense.Equal(sparse) {
			t.Fatalf("dense/sparse inverse disagree for a=%x", a.Bytes())
		}

		invNormal := dense.FromMont()
		prod := scalarToBig(a.ToMont().MontMul(invNormal.ToMont()).FromMont())
		if prod.Cmp(big.NewInt(1)) != 0 {
			t.Fatalf("a*a^-1 != 1 for a=%x, got %x", a.Bytes(), prod)
		}
	}
}

func TestScalarSetBytesRejectsOutOfRange(t *testing.T) {
	b := make([]byte, 32)
	sm2ref.SM2.N.FillBytes(b) // exactly n, out of range
	var s Scalar
	if err := s.SetBytes(b); err == nil {
		t.Fatal("expected ErrScalarOutOfRange for value == n")
	}
}
