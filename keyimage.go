package ringct

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

// DeriveKeyImage computes the key image of a one-time keypair:
// privateKey * hashToPoint(publicKey). The result is deterministic; the same
// keypair always yields the same image, which is what lets a ledger detect a
// second spend of the same output.
func DeriveKeyImage(privateKey, publicKey []byte) (Key, error) {
	if len(privateKey) != KeyLength {
		return Key{}, fmt.Errorf("%w: private key is %d bytes, want %d", ErrMalformedInput, len(privateKey), KeyLength)
	}
	if len(publicKey) != KeyLength {
		return Key{}, fmt.Errorf("%w: public key is %d bytes, want %d", ErrMalformedInput, len(publicKey), KeyLength)
	}

	var privKey, pubKey Key
	copy(privKey[:], privateKey)
	copy(pubKey[:], publicKey)

	private, err := decodeScalar(privKey)
	if err != nil {
		return Key{}, fmt.Errorf("private key: %w", err)
	}
	public, err := decodePoint(pubKey)
	if err != nil {
		return Key{}, fmt.Errorf("public key: %w", err)
	}

	var image ristretto.Point
	image.ScalarMult(hashToPoint(public), private)
	return pointToKey(&image), nil
}
