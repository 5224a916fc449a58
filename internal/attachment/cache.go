package attachment

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"keyring/internal/crypto"
	"keyring/internal/domain"
)

// Cache stores and retrieves attachment secrets for one namespace.
type Cache struct {
	store domain.AttachmentSecretStore
	log   *logrus.Entry
}

// New returns a cache over the given secret persistence.
func New(ns domain.Namespace, store domain.AttachmentSecretStore) *Cache {
	return &Cache{
		store: store,
		log: logrus.WithFields(logrus.Fields{
			"component": "attachment",
			"namespace": ns.String(),
		}),
	}
}

// Remember upserts secrets by attachment id. Secrets without an id are
// skipped.
func (c *Cache) Remember(secrets []domain.AttachmentSecret) error {
	keep := make([]domain.AttachmentSecret, 0, len(secrets))
	for _, s := range secrets {
		if s.ID == "" {
			continue
		}
		keep = append(keep, s)
	}
	if len(keep) == 0 {
		return nil
	}
	c.log.WithField("count", len(keep)).Debug("caching attachment secrets")
	return c.store.SaveSecrets(keep)
}

// Get returns the secret for one attachment id.
func (c *Cache) Get(id string) (domain.AttachmentSecret, bool, error) {
	return c.store.LoadSecret(id)
}

// GetMany returns the secrets for ids; missing ids are silently omitted.
func (c *Cache) GetMany(ids []string) ([]domain.AttachmentSecret, error) {
	out := make([]domain.AttachmentSecret, 0, len(ids))
	for _, id := range ids {
		s, ok, err := c.store.LoadSecret(id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// SealBytes encrypts attachment bytes under the secret's key and IV.
func SealBytes(secret domain.AttachmentSecret, plaintext []byte) ([]byte, error) {
	ct, err := crypto.SealAESGCM(secret.Key, secret.IV, plaintext)
	if err != nil {
		return nil, fmt.Errorf("seal attachment %s: %w", secret.ID, err)
	}
	return ct, nil
}

// OpenBytes decrypts attachment bytes fetched from blob storage.
func OpenBytes(secret domain.AttachmentSecret, blob []byte) ([]byte, error) {
	pt, err := crypto.OpenAESGCM(secret.Key, secret.IV, blob)
	if err != nil {
		return nil, domain.ErrDecryptFailed
	}
	return pt, nil
}
