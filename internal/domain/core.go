package domain

// UserID identifies a chat user in the directory.
type UserID string

// String returns the string form of the user id.
func (u UserID) String() string { return string(u) }

// Namespace identifies the local account silo. Stores, caches and trust
// records for different namespaces never mix.
type Namespace string

// String returns the string form of the namespace.
func (n Namespace) String() string { return string(n) }

// Fingerprint is a hex digest of a public key bundle presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
