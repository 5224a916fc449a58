// Package crypto exposes the minimal primitives used by keyring.
//
// Contents
//
//   - P-256 identity key generation and JWK import/export (NewIdentity,
//     ParseIdentity)
//   - ECDH shared-secret derivation against an ephemeral or long-term
//     public point (SharedSecret)
//   - ECDSA P-256/SHA-256 signing and verification (Sign, Verify)
//   - AES-256-GCM sealing and opening with 12-byte IVs (SealAESGCM,
//     OpenAESGCM, NewIV)
//   - Canonical bundle encoding and fingerprints (CanonicalBundle,
//     BundleFingerprint, ShortFingerprint)
//
// # Notes
//
// Public keys cross package boundaries as uncompressed P-256 points or
// as domain.JWK values; private material stays inside *Identity or the
// callers' byte slices. Callers should treat derived secrets as
// sensitive and rely on memzero.Zero when practical to reduce lifetime
// in memory.
package crypto
