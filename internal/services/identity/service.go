package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"keyring/internal/crypto"
	"keyring/internal/domain"
)

// Service creates, unlocks and publishes the local identity for one
// account namespace.
//
// The identity contains:
//   - P-256 ECDH key pair for deriving per-message content keys.
//   - P-256 ECDSA key pair for signing envelopes.
type Service struct {
	ns    domain.Namespace
	store domain.IdentityStore
	flags domain.UploadFlagStore
	log   *logrus.Entry

	mu      sync.Mutex
	current *crypto.Identity
}

// New returns an identity service backed by the given stores.
func New(ns domain.Namespace, store domain.IdentityStore, flags domain.UploadFlagStore) *Service {
	return &Service{
		ns:    ns,
		store: store,
		flags: flags,
		log: logrus.WithFields(logrus.Fields{
			"component": "identity",
			"namespace": ns.String(),
		}),
	}
}

// EnsureIdentity loads the identity for this namespace, generating and
// persisting a fresh one if none exists yet.
//
// The service mutex is held across the whole load-or-generate so
// concurrent callers single-flight onto one key pair. Generation
// failure is fatal for the operation; there is no fallback key source.
func (s *Service) EnsureIdentity(ctx context.Context, passphrase string) (*crypto.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return s.current, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exists, err := s.store.HasIdentity()
	if err != nil {
		return nil, err
	}
	if exists {
		stored, err := s.store.LoadIdentity(passphrase)
		if err != nil {
			return nil, err
		}
		id, err := crypto.ParseIdentity(stored)
		if err != nil {
			return nil, err
		}
		s.current = id
		return id, nil
	}

	id, err := crypto.NewIdentity()
	if err != nil {
		return nil, fmt.Errorf("generate identity: %w", err)
	}
	if err := s.store.SaveIdentity(passphrase, id.Export()); err != nil {
		return nil, fmt.Errorf("persist identity: %w", err)
	}
	s.log.Info("generated new identity key pairs")
	s.current = id
	return id, nil
}

// Identity returns the unlocked identity, or domain.ErrNoIdentity if
// EnsureIdentity has not run for this namespace.
func (s *Service) Identity() (*crypto.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, domain.ErrNoIdentity
	}
	return s.current, nil
}

// Bundle returns the public halves of the unlocked identity.
func (s *Service) Bundle() (domain.PublicKeyBundle, error) {
	id, err := s.Identity()
	if err != nil {
		return domain.PublicKeyBundle{}, err
	}
	return id.Bundle(), nil
}

// Fingerprint returns the fingerprint of the local public key bundle.
func (s *Service) Fingerprint() (domain.Fingerprint, error) {
	b, err := s.Bundle()
	if err != nil {
		return "", err
	}
	return crypto.BundleFingerprint(b)
}

// PublishIfNeeded uploads the public keys to the directory once per
// namespace. The uploaded flag is only set after a successful POST, so
// a transport failure leaves it unset and the next call retries.
func (s *Service) PublishIfNeeded(ctx context.Context, dir domain.DirectoryClient) error {
	uploaded, err := s.flags.Uploaded()
	if err != nil {
		return err
	}
	if uploaded {
		return nil
	}

	bundle, err := s.Bundle()
	if err != nil {
		return err
	}
	if err := dir.PublishBundle(ctx, bundle); err != nil {
		return fmt.Errorf("publish keys: %w", err)
	}
	if err := s.flags.MarkUploaded(); err != nil {
		return err
	}
	s.log.Info("published public keys to directory")
	return nil
}
