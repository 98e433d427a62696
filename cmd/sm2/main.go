// Command sm2 is a thin CLI exercising key generation, signing,
// verification, and public-key encryption end to end.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"

	"sm2.mleku.dev"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "genkey":
		err = cmdGenKey(os.Args[2:])
	case "sign":
		err = cmdSign(os.Args[2:])
	case "verify":
		err = cmdVerify(os.Args[2:])
	case "encrypt":
		err = cmdEncrypt(os.Args[2:])
	case "decrypt":
		err = cmdDecrypt(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "sm2:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sm2 genkey|sign|verify|encrypt|decrypt [flags]")
}

func cmdGenKey(args []string) error {
	fs := flag.NewFlagSet("genkey", flag.ExitOnError)
	fs.Parse(args)

	priv, err := sm2.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	fmt.Println("private:", sm2.EncodeToString(priv.Bytes()))
	fmt.Println("public: ", sm2.EncodeToString(priv.Public.Bytes()))
	return nil
}

func cmdSign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	privHex := fs.String("priv", "", "hex-encoded private key")
	id := fs.String("id", "", "signer identity (defaults to the GB/T example ID)")
	msg := fs.String("msg", "", "message to sign")
	fs.Parse(args)

	priv, err := sm2.PrivateKeyFromHex(*privHex)
	if err != nil {
		return err
	}
	sig, err := sm2.Sign(rand.Reader, priv, []byte(*id), []byte(*msg))
	if err != nil {
		return err
	}
	der, err := sig.MarshalASN1()
	if err != nil {
		return err
	}
	fmt.Println(sm2.EncodeToString(der))
	return nil
}

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	pubHex := fs.String("pub", "", "hex-encoded uncompressed public key")
	id := fs.String("id", "", "signer identity (defaults to the GB/T example ID)")
	msg := fs.String("msg", "", "message that was signed")
	sigHex := fs.String("sig", "", "hex-encoded DER signature")
	fs.Parse(args)

	pub, err := sm2.PublicKeyFromHex(*pubHex)
	if err != nil {
		return err
	}
	der, err := sm2.DecodeString(*sigHex)
	if err != nil {
		return err
	}
	sig, err := sm2.ParseASN1Signature(der)
	if err != nil {
		return err
	}
	if !sm2.Verify(pub, []byte(*id), []byte(*msg), sig) {
		return fmt.Errorf("signature does not verify")
	}
	fmt.Println("ok")
	return nil
}

func cmdEncrypt(args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	pubHex := fs.String("pub", "", "hex-encoded uncompressed public key")
	msg := fs.String("msg", "", "plaintext to encrypt")
	fs.Parse(args)

	pub, err := sm2.PublicKeyFromHex(*pubHex)
	if err != nil {
		return err
	}
	ct, err := sm2.Encrypt(rand.Reader, pub, []byte(*msg))
	if err != nil {
		return err
	}
	fmt.Println(sm2.EncodeToString(ct))
	return nil
}

func cmdDecrypt(args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	privHex := fs.String("priv", "", "hex-encoded private key")
	ctHex := fs.String("ct", "", "hex-encoded ciphertext")
	fs.Parse(args)

	priv, err := sm2.PrivateKeyFromHex(*privHex)
	if err != nil {
		return err
	}
	ct, err := sm2.DecodeString(*ctHex)
	if err != nil {
		return err
	}
	msg, err := sm2.Decrypt(priv, ct)
	if err != nil {
		return err
	}
	fmt.Println(string(msg))
	return nil
}
