// Package store persists keyring state on disk, one directory per
// account namespace.
//
// The long-term identity is encrypted at rest: a key derived from the
// user's passphrase with scrypt seals the JSON identity under
// ChaCha20-Poly1305. Trust records, attachment secrets and the
// published-keys flag are plain JSON files written atomically via a
// temp file and rename.
package store
