package domain

// EnvelopeVersion is the CipherV1 format version carried in the "v"
// field and mixed into every signature payload.
const EnvelopeVersion = 1

// Envelope is one CipherV1 unit: sender to exactly one recipient, for
// exactly one plaintext. Immutable once produced.
//
// EphemeralKey and SenderSignKey are uncompressed P-256 points (65
// bytes, 0x04 prefix). Signature is ASN.1 DER ECDSA over the canonical
// payload: version tag, ephemeral key, IV, ciphertext — in that order.
// SenderSignKey is always embedded so a recipient can verify even after
// the sender rotates keys.
type Envelope struct {
	Version       int    `json:"v"`
	EphemeralKey  []byte `json:"epk"`
	IV            []byte `json:"iv"`
	Ciphertext    []byte `json:"ct"`
	Signature     []byte `json:"sig"`
	SenderSignKey []byte `json:"spk"`
}

// Payload is the structured plaintext convention: a display text plus
// optional attachment secrets smuggled inside the encrypted body. It is
// only interpreted when the decrypted plaintext begins with '{'.
type Payload struct {
	Text        string             `json:"t"`
	Attachments []AttachmentSecret `json:"att,omitempty"`
}
