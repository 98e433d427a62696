package sm2

import (
	"encoding/asn1"
	"errors"
	"math/big"

	"sm2.mleku.dev/internal/sm2ec"
)

// ErrMalformedSignature is returned when a DER-encoded signature does
// not decode to the expected two-integer SEQUENCE.
var ErrMalformedSignature = errors.New("sm2: malformed signature")

type asn1Signature struct {
	R, S *big.Int
}

// MarshalASN1 encodes sig as a DER SEQUENCE { r INTEGER, s INTEGER },
// the same wire shape crypto/ecdsa uses.
func (sig *Signature) MarshalASN1() ([]byte, error) {
	r := sig.R.Bytes()
	s := sig.S.Bytes()
	return asn1.Marshal(asn1Signature{
		R: new(big.Int).SetBytes(r),
		S: new(big.Int).SetBytes(s),
	})
}

// ParseASN1Signature decodes a DER-encoded (r, s) pair.
func ParseASN1Signature(der []byte) (*Signature, error) {
	var parsed asn1Signature
	rest, err := asn1.Unmarshal(der, &parsed)
	if err != nil {
		return nil, ErrMalformedSignature
	}
	if len(rest) != 0 {
		return nil, ErrMalformedSignature
	}
	if parsed.R.Sign() < 0 || parsed.S.Sign() < 0 {
		return nil, ErrMalformedSignature
	}

	rb, err := leftPad32(parsed.R.Bytes())
	if err != nil {
		return nil, err
	}
	sb, err := leftPad32(parsed.S.Bytes())
	if err != nil {
		return nil, err
	}

	var r, s sm2ec.Scalar
	if err := r.SetBytes(rb); err != nil {
		return nil, ErrMalformedSignature
	}
	if err := s.SetBytes(sb); err != nil {
		return nil, ErrMalformedSignature
	}
	return &Signature{R: r, S: s}, nil
}

// leftPad32 left-pads b with zero bytes to 32 bytes. big.Int.Bytes
// strips leading zeros, so this restores the fixed-width encoding
// Scalar.SetBytes requires. An input longer than 32 bytes cannot
// represent an in-range r/s and is rejected rather than silently
// truncated into range.
func leftPad32(b []byte) ([]byte, error) {
	if len(b) > 32 {
		return nil, ErrMalformedSignature
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out, nil
}
