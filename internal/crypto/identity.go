package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"keyring/internal/domain"
)

// Identity carries the unlocked long-term key pairs: P-256 ECDH for
// deriving message keys and P-256 ECDSA for signing envelopes.
type Identity struct {
	ECDH *ecdh.PrivateKey
	Sign *ecdsa.PrivateKey
}

// NewIdentity generates a fresh ECDH key pair and an ECDSA key pair.
func NewIdentity() (*Identity, error) {
	dh, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ecdh key: %w", err)
	}
	sig, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ecdsa key: %w", err)
	}
	return &Identity{ECDH: dh, Sign: sig}, nil
}

// Bundle returns the public halves in directory wire form.
func (id *Identity) Bundle() domain.PublicKeyBundle {
	return domain.PublicKeyBundle{
		ECDHPublicJWK: ECDHPublicJWK(id.ECDH.PublicKey()),
		SignPublicJWK: ECDSAPublicJWK(&id.Sign.PublicKey),
	}
}

// Export returns the persistable private JWK form.
func (id *Identity) Export() domain.Identity {
	dhPub := ECDHPublicJWK(id.ECDH.PublicKey())
	dhPub.D = b64url.EncodeToString(id.ECDH.Bytes())

	sigPub := ECDSAPublicJWK(&id.Sign.PublicKey)
	var d [coordBytes]byte
	id.Sign.D.FillBytes(d[:])
	sigPub.D = b64url.EncodeToString(d[:])

	return domain.Identity{ECDHPrivateJWK: dhPub, SignPrivateJWK: sigPub}
}

// ParseIdentity rebuilds an unlocked Identity from its persisted form.
func ParseIdentity(stored domain.Identity) (*Identity, error) {
	dhScalar, err := b64url.DecodeString(stored.ECDHPrivateJWK.D)
	if err != nil {
		return nil, fmt.Errorf("identity: bad ecdh scalar: %w", err)
	}
	dh, err := ecdh.P256().NewPrivateKey(dhScalar)
	if err != nil {
		return nil, fmt.Errorf("identity: invalid ecdh key: %w", err)
	}

	sigPub, err := ECDSAPublicFromJWK(stored.SignPrivateJWK)
	if err != nil {
		return nil, fmt.Errorf("identity: invalid ecdsa public: %w", err)
	}
	sigScalar, err := b64url.DecodeString(stored.SignPrivateJWK.D)
	if err != nil {
		return nil, fmt.Errorf("identity: bad ecdsa scalar: %w", err)
	}
	if len(sigScalar) != coordBytes {
		return nil, fmt.Errorf("identity: ecdsa scalar length %d, want %d", len(sigScalar), coordBytes)
	}
	sig := &ecdsa.PrivateKey{
		PublicKey: *sigPub,
		D:         new(big.Int).SetBytes(sigScalar),
	}
	return &Identity{ECDH: dh, Sign: sig}, nil
}
