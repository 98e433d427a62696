package sm2ec

import (
	"sync"

	sha256 "github.com/minio/sha256-simd"
)

// GeneratorTable is the precomputed fixed-point table Tg: 37 rows of 64
// affine points, row j holding k·2^(7j)·G for k=1..64 (§4.8, §9).
type GeneratorTable struct {
	rows  [GeneratorWindows]GenTableRow
	order limbs
}

// Row returns the j-th window row (0..36).
func (t *GeneratorTable) Row(j int) *GenTableRow { return &t.rows[j] }

// checksum computes a fast (non-cryptographically-load-bearing) digest
// over the table's coordinates, used only as a self-check that a shared
// handle's backing table hasn't been corrupted in memory between builds.
func (t *GeneratorTable) checksum() [32]byte {
	h := sha256.New()
	for i := range t.rows {
		for j := range t.rows[i].points {
			p := t.rows[i].points[j]
			h.Write(p.X.Bytes())
			h.Write(p.Y.Bytes())
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// buildGeneratorTable constructs Tg from the curve's base point. Table
// construction operates on public data (the generator) and is not
// required to be constant time.
func buildGeneratorTable() *GeneratorTable {
	var tbl GeneratorTable
	tbl.order = groupOrder

	gx := FieldElement{genX}.ToMont()
	gy := FieldElement{genY}.ToMont()
	base := Jacobian{X: gx, Y: gy, Z: FieldElement{fieldR1}}

	for j := 0; j < GeneratorWindows; j++ {
		baseAffine, err := base.ToAffineMont()
		if err != nil {
			panic("sm2ec: generator table base point is at infinity")
		}
		acc := FromAffine(baseAffine)
		for k := 1; k <= GeneratorTableWidth; k++ {
			accAffine, err := acc.ToAffineMont()
			if err != nil {
				panic("sm2ec: generator table accumulator point is at infinity")
			}
			tbl.rows[j].ScatterW7(k, accAffine)
			if k < GeneratorTableWidth {
				acc = acc.AddMixed(baseAffine)
			}
		}
		if j < GeneratorWindows-1 {
			for s := 0; s < 7; s++ {
				base = base.Double()
			}
		}
	}
	return &tbl
}

// GeneratorHandle is a refcounted, mutex-guarded handle to an immutable
// GeneratorTable. Scalar multiplications may share one table without
// copying it; the table is released only once every acquirer has.
type GeneratorHandle struct {
	mu    sync.Mutex
	refs  int
	table *GeneratorTable
}

// NewGeneratorHandle wraps t with an initial reference count of 1.
func NewGeneratorHandle(t *GeneratorTable) *GeneratorHandle {
	return &GeneratorHandle{refs: 1, table: t}
}

// Acquire increments the handle's reference count and returns the
// underlying table. It fails with ErrUndefinedGenerator if the handle
// was constructed without a table, ErrUnknownOrder if the table was
// built for a group order other than this package's curve, and
// ErrAllocationFailure if the handle has already been fully released.
func (h *GeneratorHandle) Acquire() (*GeneratorTable, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.table == nil {
		return nil, ErrUndefinedGenerator
	}
	if h.table.order != groupOrder {
		return nil, ErrUnknownOrder
	}
	if h.refs <= 0 {
		return nil, ErrAllocationFailure
	}
	h.refs++
	return h.table, nil
}

// Release decrements the handle's reference count.
func (h *GeneratorHandle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refs--
}

var (
	canonicalOnce  sync.Once
	canonicalTable *GeneratorTable
	canonicalSum   [32]byte
)

// CanonicalGeneratorTable returns the shared Tg table for the SM2
// recommended curve's generator, building it on first use. The table is
// immutable after construction and safe for concurrent readers.
func CanonicalGeneratorTable() *GeneratorTable {
	canonicalOnce.Do(func() {
		canonicalTable = buildGeneratorTable()
		canonicalSum = canonicalTable.checksum()
	})
	return canonicalTable
}

// VerifyCanonicalGeneratorTable recomputes the canonical table's
// checksum and compares it against the value captured at build time.
// This guards against in-memory corruption of the shared table; it is
// not a substitute for verifying the table's mathematical correctness.
func VerifyCanonicalGeneratorTable() bool {
	t := CanonicalGeneratorTable()
	return t.checksum() == canonicalSum
}
