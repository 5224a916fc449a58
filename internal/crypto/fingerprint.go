package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"keyring/internal/domain"
)

// CanonicalBundle returns the canonical encoding of a bundle: the
// uncompressed ECDH point followed by the uncompressed signing point.
// Both fingerprints and trust comparisons are defined over these bytes.
func CanonicalBundle(b domain.PublicKeyBundle) ([]byte, error) {
	dhPoint, err := jwkPoint(b.ECDHPublicJWK)
	if err != nil {
		return nil, err
	}
	sigPoint, err := jwkPoint(b.SignPublicJWK)
	if err != nil {
		return nil, err
	}
	return append(dhPoint, sigPoint...), nil
}

// BundleFingerprint returns the SHA-256 hex digest of the canonical
// bundle encoding.
func BundleFingerprint(b domain.PublicKeyBundle) (domain.Fingerprint, error) {
	canon, err := CanonicalBundle(b)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return domain.Fingerprint(hex.EncodeToString(sum[:])), nil
}

// ShortFingerprint truncates a fingerprint to 20 hex chars for display.
func ShortFingerprint(fp domain.Fingerprint) string {
	s := fp.String()
	if len(s) > 20 {
		return s[:20]
	}
	return s
}
