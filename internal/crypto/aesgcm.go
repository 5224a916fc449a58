package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/rand"
	"fmt"
)

const (
	// AESKeyBytes is the AES-256 key size; a P-256 ECDH shared secret
	// is exactly this long and is used directly as the content key.
	AESKeyBytes = 32
	// IVBytes is the GCM nonce size on the wire.
	IVBytes = 12
)

// NewIV returns a fresh random 12-byte GCM nonce.
func NewIV() ([]byte, error) {
	iv := make([]byte, IVBytes)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// EphemeralECDH returns a one-shot P-256 key pair for a single seal.
func EphemeralECDH() (*ecdh.PrivateKey, error) {
	return ecdh.P256().GenerateKey(rand.Reader)
}

// SharedSecret derives the 32-byte ECDH secret between priv and an
// uncompressed P-256 public point.
func SharedSecret(priv *ecdh.PrivateKey, peerPoint []byte) ([]byte, error) {
	pub, err := ecdh.P256().NewPublicKey(peerPoint)
	if err != nil {
		return nil, fmt.Errorf("invalid peer point: %w", err)
	}
	return priv.ECDH(pub)
}

// SealAESGCM encrypts plaintext with AES-256-GCM under key and iv.
// No associated data beyond the IV and ciphertext themselves.
func SealAESGCM(key, iv, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key, len(iv))
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, iv, plaintext, nil), nil
}

// OpenAESGCM decrypts ciphertext; any authentication failure is a hard
// failure with no partial plaintext.
func OpenAESGCM(key, iv, ciphertext []byte) ([]byte, error) {
	aead, err := newGCM(key, len(iv))
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, iv, ciphertext, nil)
}

func newGCM(key []byte, ivLen int) (cipher.AEAD, error) {
	if len(key) != AESKeyBytes {
		return nil, fmt.Errorf("aes key length %d, want %d", len(key), AESKeyBytes)
	}
	if ivLen != IVBytes {
		return nil, fmt.Errorf("iv length %d, want %d", ivLen, IVBytes)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
