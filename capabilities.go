package sm2

import (
	"github.com/klauspost/cpuid/v2"
	"github.com/templexxx/cpu"
)

// Capabilities reports which CPU features the running process could use
// to accelerate the field and scalar arithmetic this package implements
// in portable Go. Nothing in internal/sm2ec currently dispatches on
// these flags — the constant-time engine is pure Go, carry-propagating
// math/bits arithmetic — but the surface is exposed so callers building
// an accelerated backend (assembly REDC, AVX2-parallel table scans) have
// a single place to query what the host actually supports.
type Capabilities struct {
	// HasAVX2 is true when the 256-bit integer AVX2 extensions are
	// available, as reported by klauspost/cpuid/v2.
	HasAVX2 bool
	// HasBMI2 is true when BMI2 (MULX/SHLX, used by wide-multiply
	// intrinsics) is available.
	HasBMI2 bool
	// HasADX is true when ADX (ADCX/ADOX, carry-chain addition) is
	// available — the pair AVX2 implementations most often want
	// alongside BMI2 for a carry-save multiply-accumulate.
	HasADX bool
	// X86Level is the microarchitecture level klauspost/cpuid/v2
	// reports (1 through 4, per the x86-64 psABI levels).
	X86Level int
	// ConfirmedByTemplexxxCPU cross-checks the AVX2 flag against the
	// independent templexxx/cpu detector, guarding against a single
	// detector's CPUID-parsing bug silently enabling an unsupported
	// code path.
	ConfirmedByTemplexxxCPU bool
}

// DetectCapabilities probes the running CPU once and returns the result.
// Cheap enough to call per-process at startup; callers that need it on
// a hot path should cache the result themselves.
func DetectCapabilities() Capabilities {
	return Capabilities{
		HasAVX2:                 cpuid.CPU.Has(cpuid.AVX2),
		HasBMI2:                 cpuid.CPU.Has(cpuid.BMI2),
		HasADX:                  cpuid.CPU.Has(cpuid.ADX),
		X86Level:                cpuid.CPU.X64Level(),
		ConfirmedByTemplexxxCPU: cpu.X86.HasAVX2,
	}
}
