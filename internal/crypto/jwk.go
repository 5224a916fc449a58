package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"fmt"
	"math/big"

	"keyring/internal/domain"
)

const (
	jwkKty = "EC"
	jwkCrv = "P-256"

	coordBytes = 32
	pointBytes = 65 // 0x04 || X || Y
)

var b64url = base64.RawURLEncoding

// ECDHPublicJWK exports a DH public key as a P-256 JWK.
func ECDHPublicJWK(pub *ecdh.PublicKey) domain.JWK {
	raw := pub.Bytes()
	return domain.JWK{
		Kty: jwkKty,
		Crv: jwkCrv,
		X:   b64url.EncodeToString(raw[1 : 1+coordBytes]),
		Y:   b64url.EncodeToString(raw[1+coordBytes:]),
	}
}

// ECDHPublicFromJWK parses and validates a P-256 DH public key.
func ECDHPublicFromJWK(j domain.JWK) (*ecdh.PublicKey, error) {
	raw, err := jwkPoint(j)
	if err != nil {
		return nil, err
	}
	pub, err := ecdh.P256().NewPublicKey(raw)
	if err != nil {
		return nil, fmt.Errorf("jwk: invalid P-256 point: %w", err)
	}
	return pub, nil
}

// ECDSAPublicJWK exports a signing public key as a P-256 JWK.
func ECDSAPublicJWK(pub *ecdsa.PublicKey) domain.JWK {
	var x, y [coordBytes]byte
	pub.X.FillBytes(x[:])
	pub.Y.FillBytes(y[:])
	return domain.JWK{
		Kty: jwkKty,
		Crv: jwkCrv,
		X:   b64url.EncodeToString(x[:]),
		Y:   b64url.EncodeToString(y[:]),
	}
}

// ECDSAPublicFromJWK parses and validates a P-256 signing public key.
func ECDSAPublicFromJWK(j domain.JWK) (*ecdsa.PublicKey, error) {
	raw, err := jwkPoint(j)
	if err != nil {
		return nil, err
	}
	return ParseECDSAPublic(raw)
}

// ECDSAPublicBytes returns the canonical uncompressed-point encoding of
// a signing public key. This is the form embedded in envelopes and
// covered by signatures.
func ECDSAPublicBytes(pub *ecdsa.PublicKey) []byte {
	out := make([]byte, pointBytes)
	out[0] = 4
	pub.X.FillBytes(out[1 : 1+coordBytes])
	pub.Y.FillBytes(out[1+coordBytes:])
	return out
}

// ParseECDSAPublic parses an uncompressed P-256 point into a signing
// public key. The point is validated through crypto/ecdh before the
// coordinates are trusted.
func ParseECDSAPublic(raw []byte) (*ecdsa.PublicKey, error) {
	if _, err := ecdh.P256().NewPublicKey(raw); err != nil {
		return nil, fmt.Errorf("invalid P-256 point: %w", err)
	}
	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(raw[1 : 1+coordBytes]),
		Y:     new(big.Int).SetBytes(raw[1+coordBytes:]),
	}, nil
}

func jwkPoint(j domain.JWK) ([]byte, error) {
	if j.Kty != jwkKty || j.Crv != jwkCrv {
		return nil, fmt.Errorf("jwk: unsupported key type %q/%q", j.Kty, j.Crv)
	}
	x, err := b64url.DecodeString(j.X)
	if err != nil {
		return nil, fmt.Errorf("jwk: bad x coordinate: %w", err)
	}
	y, err := b64url.DecodeString(j.Y)
	if err != nil {
		return nil, fmt.Errorf("jwk: bad y coordinate: %w", err)
	}
	if len(x) != coordBytes || len(y) != coordBytes {
		return nil, fmt.Errorf("jwk: coordinate length %d/%d, want %d", len(x), len(y), coordBytes)
	}
	raw := make([]byte, 0, pointBytes)
	raw = append(raw, 4)
	raw = append(raw, x...)
	raw = append(raw, y...)
	return raw, nil
}
