package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrNotFound is returned when the directory has no key bundle for
	// a user, including cached negative results.
	ErrNotFound = errors.New("no published keys for user")

	// ErrSignatureInvalid is returned when an envelope signature fails
	// against both the embedded and the directory sender key.
	ErrSignatureInvalid = errors.New("envelope signature invalid")

	// ErrDecryptFailed is returned when AEAD authentication fails.
	// There is never partial plaintext.
	ErrDecryptFailed = errors.New("envelope decryption failed")

	// ErrBadEnvelope is returned by the strict wire parser for unknown,
	// missing or malformed fields.
	ErrBadEnvelope = errors.New("malformed envelope")

	// ErrWrongPassphrase is returned when the identity blob cannot be
	// opened, meaning a bad passphrase or a corrupted file.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted identity")

	// ErrNoIdentity is returned when an operation needs the local
	// identity but it has not been unlocked for this namespace.
	ErrNoIdentity = errors.New("identity not unlocked")
)

// MissingRecipientsError reports the member ids that had no resolvable
// key bundle during a group fan-out. The whole fan-out fails; no
// partial envelope set is ever produced.
type MissingRecipientsError struct {
	IDs []UserID
}

func (e *MissingRecipientsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("no published keys for members: %s", strings.Join(ids, ", "))
}

func (e *MissingRecipientsError) Unwrap() error { return ErrNotFound }
