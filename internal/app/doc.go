// Package app wires the stores, caches and services into one keyring
// context per account namespace.
//
// Nothing here is ambient: the caller owns the Keyring value and passes
// it into every operation, so two logged-in accounts get two fully
// siloed contexts (separate identity, directory cache, trust records
// and attachment secrets).
package app
