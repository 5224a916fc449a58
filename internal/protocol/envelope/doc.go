// Package envelope implements the CipherV1 hybrid-encryption primitive:
// one signed, AEAD-encrypted unit from a sender to exactly one
// recipient.
//
// Sealing generates a fresh ephemeral P-256 pair, derives the AES-256
// content key via ECDH against the recipient's long-term DH key,
// encrypts under a random 12-byte IV, and signs the version tag,
// ephemeral point, IV and ciphertext with the sender's long-term ECDSA
// key. The sender's current signing key is always embedded so old
// envelopes still verify after a key rotation.
//
// Opening verifies the signature against the embedded key first and
// falls back to the sender's current directory bundle, then derives the
// same content key from the local DH private key and the envelope's
// ephemeral point.
package envelope
