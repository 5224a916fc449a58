package domain

// JWK is the minimal JSON Web Key form used on the directory wire.
// Only P-256 EC keys appear in this protocol; X and Y carry the public
// coordinates and D, when present, the private scalar. All three are
// base64url without padding, per RFC 7517.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d,omitempty"`
}

// PublicKeyBundle is one user's published public identity: an ECDH key
// for deriving message keys and an ECDSA key for verifying signatures.
// Bundles are immutable once fetched; a key rotation produces a new
// bundle, which the trust store detects.
type PublicKeyBundle struct {
	ECDHPublicJWK JWK `json:"ecdh_public_jwk"`
	SignPublicJWK JWK `json:"sign_public_jwk"`
}

// Identity is the persisted form of the local user's long-term key
// pairs. It is only ever written to disk inside an encrypted blob and
// never leaves the local account namespace.
type Identity struct {
	ECDHPrivateJWK JWK `json:"ecdh_private_jwk"`
	SignPrivateJWK JWK `json:"sign_private_jwk"`
}
