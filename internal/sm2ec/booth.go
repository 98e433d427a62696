package sm2ec

// Booth recoding converts a (w+1)-bit window value into a signed digit
// in [-2^(w-1), 2^(w-1)], packed as (|d|<<1)|sign. A zero window maps
// to digit 0 (the infinity slot), halving the required table size
// relative to an unsigned window.
//
// Supported widths: 4 (reserved for future multi-scalar use), 5
// (variable-point), 6 (optional denser table), 7 (fixed generator).

// boothRecodeRaw implements the recurrence directly: s is all-ones if
// the window's top bit is set (negative digit), else 0.
func boothRecodeRaw(w uint, in uint32) uint32 {
	s := ^((in >> w) - 1)
	d := (uint32(1) << (w + 1)) - in - 1
	d = (d & s) | (in &^ s)
	d = (d >> 1) + (d & 1)
	return (d << 1) + (s & 1)
}

// BoothRecode recodes a (w+1)-bit window value in, returning the
// unsigned magnitude of the resulting digit (a valid table index,
// 0 meaning infinity) and a 0/1 flag for whether the digit is negative.
// The sign bit of boothRecodeRaw's packed output is already a 0/1
// integer; it is returned as-is rather than funneled through bool.
func BoothRecode(w uint, in uint32) (magnitude uint32, negative uint64) {
	packed := boothRecodeRaw(w, in)
	return packed >> 1, uint64(packed & 1)
}

// BoothRecodeW4 recodes a 5-bit window (width 4).
func BoothRecodeW4(in uint32) (uint32, uint64) { return BoothRecode(4, in) }

// BoothRecodeW5 recodes a 6-bit window (width 5).
func BoothRecodeW5(in uint32) (uint32, uint64) { return BoothRecode(5, in) }

// BoothRecodeW6 recodes a 7-bit window (width 6).
func BoothRecodeW6(in uint32) (uint32, uint64) { return BoothRecode(6, in) }

// BoothRecodeW7 recodes an 8-bit window (width 7).
func BoothRecodeW7(in uint32) (uint32, uint64) { return BoothRecode(7, in) }
