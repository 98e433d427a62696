package sm2

import "github.com/templexxx/xhex"

// EncodeToString hex-encodes src, matching encoding/hex's convention
// but using xhex's wider-word encode loop.
func EncodeToString(src []byte) string {
	return xhex.EncodeToString(src)
}

// DecodeString hex-decodes s, matching encoding/hex's convention.
func DecodeString(s string) ([]byte, error) {
	return xhex.DecodeString(s)
}

// PrivateKeyFromHex decodes a 32-byte big-endian private key scalar
// from its hex encoding.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(b)
}

// PublicKeyFromHex decodes an uncompressed 64-byte X‖Y public key from
// its 128-character hex encoding.
func PublicKeyFromHex(s string) (*PublicKey, error) {
	b, err := DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != 64 {
		return nil, ErrInvalidPublicKey
	}
	return NewPublicKey(b[:32], b[32:])
}
