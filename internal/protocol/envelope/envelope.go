package envelope

import (
	"context"
	"fmt"

	"keyring/internal/crypto"
	"keyring/internal/domain"
	"keyring/internal/util/memzero"
)

// versionTag is mixed into every signature payload so a version-1
// signature can never be replayed into a future format.
var versionTag = []byte("E2EE1")

// BundleResolver fetches a user's current public key bundle. It is only
// consulted on the rare open path where the embedded sender key fails
// to verify.
type BundleResolver func(ctx context.Context, id domain.UserID) (domain.PublicKeyBundle, error)

// Seal encrypts plaintext for the holder of recipient's ECDH key and
// signs it with the sender's ECDSA key.
func Seal(recipient domain.PublicKeyBundle, sender *crypto.Identity, plaintext []byte) (domain.Envelope, error) {
	recipientDH, err := crypto.ECDHPublicFromJWK(recipient.ECDHPublicJWK)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("seal: recipient bundle: %w", err)
	}

	eph, err := crypto.EphemeralECDH()
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("seal: ephemeral key: %w", err)
	}
	key, err := eph.ECDH(recipientDH)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("seal: derive key: %w", err)
	}
	defer memzero.Zero(key)

	iv, err := crypto.NewIV()
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("seal: iv: %w", err)
	}
	ct, err := crypto.SealAESGCM(key, iv, plaintext)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("seal: encrypt: %w", err)
	}

	ephPoint := eph.PublicKey().Bytes()
	sig, err := crypto.Sign(sender.Sign, signaturePayload(ephPoint, iv, ct))
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("seal: sign: %w", err)
	}

	return domain.Envelope{
		Version:       domain.EnvelopeVersion,
		EphemeralKey:  ephPoint,
		IV:            iv,
		Ciphertext:    ct,
		Signature:     sig,
		SenderSignKey: crypto.ECDSAPublicBytes(&sender.Sign.PublicKey),
	}, nil
}

// Open verifies env against sender and decrypts it with the local ECDH
// private key.
//
// Verification order is embedded key first, directory current key
// second. The directory fallback tolerates a bad or stale embed but
// also means a directory that lies about the sender's current key can
// rescue an envelope the embed alone would reject; that is a boundary
// of the trust model, not something this layer detects.
func Open(ctx context.Context, sender domain.UserID, env domain.Envelope, local *crypto.Identity, resolve BundleResolver) ([]byte, error) {
	if env.Version != domain.EnvelopeVersion {
		return nil, fmt.Errorf("%w: version %d", domain.ErrBadEnvelope, env.Version)
	}

	payload := signaturePayload(env.EphemeralKey, env.IV, env.Ciphertext)
	if !verifyEmbedded(env, payload) && !verifyDirectory(ctx, sender, env, payload, resolve) {
		return nil, domain.ErrSignatureInvalid
	}

	key, err := crypto.SharedSecret(local.ECDH, env.EphemeralKey)
	if err != nil {
		return nil, fmt.Errorf("open: derive key: %w", err)
	}
	defer memzero.Zero(key)

	pt, err := crypto.OpenAESGCM(key, env.IV, env.Ciphertext)
	if err != nil {
		return nil, domain.ErrDecryptFailed
	}
	return pt, nil
}

// signaturePayload is the exact byte sequence a signature covers:
// version tag, ephemeral point, IV, ciphertext. Omitting any field
// here is a protocol violation.
func signaturePayload(ephPoint, iv, ct []byte) []byte {
	out := make([]byte, 0, len(versionTag)+len(ephPoint)+len(iv)+len(ct))
	out = append(out, versionTag...)
	out = append(out, ephPoint...)
	out = append(out, iv...)
	out = append(out, ct...)
	return out
}

func verifyEmbedded(env domain.Envelope, payload []byte) bool {
	pub, err := crypto.ParseECDSAPublic(env.SenderSignKey)
	if err != nil {
		return false
	}
	return crypto.Verify(pub, payload, env.Signature)
}

func verifyDirectory(ctx context.Context, sender domain.UserID, env domain.Envelope, payload []byte, resolve BundleResolver) bool {
	if resolve == nil {
		return false
	}
	bundle, err := resolve(ctx, sender)
	if err != nil {
		return false
	}
	pub, err := crypto.ECDSAPublicFromJWK(bundle.SignPublicJWK)
	if err != nil {
		return false
	}
	return crypto.Verify(pub, payload, env.Signature)
}
