package domain

import "context"

// DirectoryClient is how we talk to the key directory, all with context.
type DirectoryClient interface {
	// FetchBundle returns the published bundle for id, or ErrNotFound.
	FetchBundle(ctx context.Context, id UserID) (PublicKeyBundle, error)
	// PublishBundle uploads the local user's public keys.
	PublishBundle(ctx context.Context, bundle PublicKeyBundle) error
}

// IdentityStore persists the local long-term identity, encrypted at
// rest under a passphrase.
type IdentityStore interface {
	SaveIdentity(passphrase string, id Identity) error
	LoadIdentity(passphrase string) (Identity, error)
	HasIdentity() (bool, error)
}

// UploadFlagStore tracks whether the public keys were published for the
// local namespace. The flag is only set after a successful upload so a
// failed publish retries on the next call.
type UploadFlagStore interface {
	Uploaded() (bool, error)
	MarkUploaded() error
}

// TrustRecordStore persists TOFU records by peer id.
type TrustRecordStore interface {
	SaveRecord(peer UserID, rec TrustRecord) error
	LoadRecord(peer UserID) (TrustRecord, bool, error)
	DeleteRecord(peer UserID) error
}

// AttachmentSecretStore persists attachment secrets by attachment id.
type AttachmentSecretStore interface {
	SaveSecrets(secrets []AttachmentSecret) error
	LoadSecret(id string) (AttachmentSecret, bool, error)
}

// BundleObserver receives every bundle fetched from the directory.
// Implemented by the trust store; observation is advisory and must
// never block or veto key fetches.
type BundleObserver interface {
	Observe(peer UserID, bundle PublicKeyBundle) (TrustRecord, error)
}
