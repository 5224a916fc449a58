// Package domain defines the shared types of the keyring: user and
// namespace identifiers, public key bundles and their JWK wire form, the
// CipherV1 envelope and its dual/group fan-out variants, trust pinning
// records, attachment secrets, and the interfaces the services depend on.
//
// The package is dependency-free so every layer can import it.
package domain
