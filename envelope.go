package sm2

import (
	"encoding/binary"
	"errors"
	"io"

	"sm2.mleku.dev/internal/sm2ec"
	"sm2.mleku.dev/internal/sm3"
)

// ErrDecryptionFailed is returned when ciphertext integrity (the C3
// digest) does not match, or C1 does not decode to a point on the
// curve.
var ErrDecryptionFailed = errors.New("sm2: decryption failed")

// ErrEmptyPlaintext is returned by Encrypt for a zero-length message —
// the KDF has nothing to mask and C3 would commit to an empty message.
var ErrEmptyPlaintext = errors.New("sm2: empty plaintext")

// kdf implements the GB/T 32918.4-2016 §5.4.3 key derivation function:
// SM3(Z‖ct) for a 32-bit big-endian counter ct starting at 1,
// concatenated until klen bytes have been produced.
func kdf(z []byte, klen int) []byte {
	out := make([]byte, 0, klen)
	var ctBuf [4]byte
	for ct := uint32(1); len(out) < klen; ct++ {
		binary.BigEndian.PutUint32(ctBuf[:], ct)
		h := sm3.New()
		h.Write(z)
		h.Write(ctBuf[:])
		out = h.Sum(out)
	}
	return out[:klen]
}

func xorBytes(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// Encrypt implements GB/T 32918.4-2016 §6.1 public-key encryption under
// pub, producing ciphertext laid out as C1‖C3‖C2 (the 2017 revision's
// ordering): C1 is the uncompressed ephemeral point (65 bytes, 0x04
// prefix), C3 is the 32-byte SM3 integrity tag, C2 is the masked
// plaintext.
func Encrypt(rnd io.Reader, pub *PublicKey, msg []byte) ([]byte, error) {
	if len(msg) == 0 {
		return nil, ErrEmptyPlaintext
	}

	tbl := generatorTable()
	pubMont := sm2ec.Affine{X: pub.X.ToMont(), Y: pub.Y.ToMont()}
	var buf [32]byte

	for {
		var k sm2ec.Scalar
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return nil, err
		}
		if err := k.SetBytes(buf[:]); err != nil {
			continue
		}
		if k.IsZero() {
			continue
		}

		c1Point := sm2ec.MulGenerator(tbl, k)
		c1Affine, err := c1Point.ToAffine()
		if err != nil {
			// k nonzero and reduced mod n, so k·G cannot be infinity;
			// treat as any other vanishingly unlikely retry condition.
			continue
		}

		kPub := sm2ec.MulVar([]sm2ec.Jacobian{sm2ec.FromAffine(pubMont)}, []sm2ec.Scalar{k})
		shared, err := kPub.ToAffine()
		if err != nil {
			continue
		}
		x2 := shared.X.Bytes()
		y2 := shared.Y.Bytes()

		z := make([]byte, 0, 64)
		z = append(z, x2...)
		z = append(z, y2...)
		t := kdf(z, len(msg))
		if allZero(t) {
			continue
		}

		c2 := make([]byte, len(msg))
		xorBytes(c2, msg, t)

		h := sm3.New()
		h.Write(x2)
		h.Write(msg)
		h.Write(y2)
		c3 := h.Sum(nil)

		out := make([]byte, 0, 65+32+len(msg))
		out = append(out, 0x04)
		out = append(out, c1Affine.X.Bytes()...)
		out = append(out, c1Affine.Y.Bytes()...)
		out = append(out, c3...)
		out = append(out, c2...)
		return out, nil
	}
}

// Decrypt implements GB/T 32918.4-2016 §7.1 public-key decryption of
// ciphertext produced by Encrypt, under priv.
func Decrypt(priv *PrivateKey, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 1+64+sm3.Size+1 || ciphertext[0] != 0x04 {
		return nil, ErrDecryptionFailed
	}
	x1 := ciphertext[1:33]
	y1 := ciphertext[33:65]
	c3 := ciphertext[65 : 65+sm3.Size]
	c2 := ciphertext[65+sm3.Size:]

	c1, err := NewPublicKey(x1, y1)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	c1Mont := sm2ec.Affine{X: c1.X.ToMont(), Y: c1.Y.ToMont()}
	dPoint := sm2ec.MulVar([]sm2ec.Jacobian{sm2ec.FromAffine(c1Mont)}, []sm2ec.Scalar{priv.D})
	shared, err := dPoint.ToAffine()
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	x2 := shared.X.Bytes()
	y2 := shared.Y.Bytes()

	z := make([]byte, 0, 64)
	z = append(z, x2...)
	z = append(z, y2...)
	t := kdf(z, len(c2))
	if allZero(t) {
		return nil, ErrDecryptionFailed
	}

	msg := make([]byte, len(c2))
	xorBytes(msg, c2, t)

	h := sm3.New()
	h.Write(x2)
	h.Write(msg)
	h.Write(y2)
	u := h.Sum(nil)

	if !constantTimeEqual(u, c3) {
		return nil, ErrDecryptionFailed
	}
	return msg, nil
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}
