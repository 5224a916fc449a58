package crypto_test

import (
	"bytes"
	"testing"

	"keyring/internal/crypto"
)

// makeIdentity returns a fresh identity or fails the test.
func makeIdentity(t *testing.T) *crypto.Identity {
	t.Helper()
	id, err := crypto.NewIdentity()
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	return id
}

func TestIdentityExportParseRoundTrip(t *testing.T) {
	id := makeIdentity(t)

	parsed, err := crypto.ParseIdentity(id.Export())
	if err != nil {
		t.Fatalf("ParseIdentity: %v", err)
	}
	if !bytes.Equal(parsed.ECDH.Bytes(), id.ECDH.Bytes()) {
		t.Fatal("ecdh private key changed across export/parse")
	}
	if parsed.Sign.D.Cmp(id.Sign.D) != 0 {
		t.Fatal("ecdsa private scalar changed across export/parse")
	}

	// The parsed identity must still interoperate with the original.
	sig, err := crypto.Sign(parsed.Sign, []byte("check"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !crypto.Verify(&id.Sign.PublicKey, []byte("check"), sig) {
		t.Fatal("signature from parsed key does not verify against original public")
	}
}

func TestJWKPublicRoundTrip(t *testing.T) {
	id := makeIdentity(t)
	bundle := id.Bundle()

	dh, err := crypto.ECDHPublicFromJWK(bundle.ECDHPublicJWK)
	if err != nil {
		t.Fatalf("ECDHPublicFromJWK: %v", err)
	}
	if !bytes.Equal(dh.Bytes(), id.ECDH.PublicKey().Bytes()) {
		t.Fatal("ecdh public point changed across JWK round trip")
	}

	sig, err := crypto.ECDSAPublicFromJWK(bundle.SignPublicJWK)
	if err != nil {
		t.Fatalf("ECDSAPublicFromJWK: %v", err)
	}
	if !bytes.Equal(crypto.ECDSAPublicBytes(sig), crypto.ECDSAPublicBytes(&id.Sign.PublicKey)) {
		t.Fatal("ecdsa public point changed across JWK round trip")
	}
}

func TestJWKRejectsBadInput(t *testing.T) {
	id := makeIdentity(t)
	good := id.Bundle().ECDHPublicJWK

	bad := good
	bad.Crv = "P-384"
	if _, err := crypto.ECDHPublicFromJWK(bad); err == nil {
		t.Fatal("want error for wrong curve")
	}

	bad = good
	bad.X = "!!!not-base64!!!"
	if _, err := crypto.ECDHPublicFromJWK(bad); err == nil {
		t.Fatal("want error for undecodable coordinate")
	}

	bad = good
	bad.Y = bad.X[:10]
	if _, err := crypto.ECDHPublicFromJWK(bad); err == nil {
		t.Fatal("want error for short coordinate")
	}
}

func TestSharedSecretAgreement(t *testing.T) {
	alice := makeIdentity(t)
	bob := makeIdentity(t)

	ab, err := crypto.SharedSecret(alice.ECDH, bob.ECDH.PublicKey().Bytes())
	if err != nil {
		t.Fatalf("SharedSecret: %v", err)
	}
	ba, err := crypto.SharedSecret(bob.ECDH, alice.ECDH.PublicKey().Bytes())
	if err != nil {
		t.Fatalf("SharedSecret: %v", err)
	}
	if !bytes.Equal(ab, ba) {
		t.Fatal("shared secrets differ")
	}
	if len(ab) != crypto.AESKeyBytes {
		t.Fatalf("secret length %d, want %d", len(ab), crypto.AESKeyBytes)
	}
}

func TestAESGCMRoundTripAndTamper(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, crypto.AESKeyBytes)
	iv, err := crypto.NewIV()
	if err != nil {
		t.Fatalf("NewIV: %v", err)
	}

	ct, err := crypto.SealAESGCM(key, iv, []byte("attachment bytes"))
	if err != nil {
		t.Fatalf("SealAESGCM: %v", err)
	}
	pt, err := crypto.OpenAESGCM(key, iv, ct)
	if err != nil {
		t.Fatalf("OpenAESGCM: %v", err)
	}
	if string(pt) != "attachment bytes" {
		t.Fatalf("got %q", pt)
	}

	ct[0] ^= 1
	if _, err := crypto.OpenAESGCM(key, iv, ct); err == nil {
		t.Fatal("tampered ciphertext must not open")
	}
}

func TestBundleFingerprintStableAndDistinct(t *testing.T) {
	a := makeIdentity(t)
	b := makeIdentity(t)

	fa1, err := crypto.BundleFingerprint(a.Bundle())
	if err != nil {
		t.Fatalf("BundleFingerprint: %v", err)
	}
	fa2, err := crypto.BundleFingerprint(a.Bundle())
	if err != nil {
		t.Fatalf("BundleFingerprint: %v", err)
	}
	fb, err := crypto.BundleFingerprint(b.Bundle())
	if err != nil {
		t.Fatalf("BundleFingerprint: %v", err)
	}

	if fa1 != fa2 {
		t.Fatal("fingerprint not deterministic")
	}
	if fa1 == fb {
		t.Fatal("distinct bundles share a fingerprint")
	}
	if got := crypto.ShortFingerprint(fa1); len(got) != 20 {
		t.Fatalf("short fingerprint length %d, want 20", len(got))
	}
}
