package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"keyring/internal/attachment"
	"keyring/internal/directory"
	"keyring/internal/domain"
	identitysvc "keyring/internal/services/identity"
	messagesvc "keyring/internal/services/message"
	"keyring/internal/store"
	"keyring/internal/trust"
)

// Keyring bundles one namespace's stores, caches and services.
type Keyring struct {
	Namespace   domain.Namespace
	Identity    *identitysvc.Service
	Directory   *directory.Cache
	Client      domain.DirectoryClient
	Trust       *trust.Store
	Attachments *attachment.Cache
	Messages    *messagesvc.Service
}

// NewKeyring constructs the dependency graph from cfg.
func NewKeyring(cfg Config) (*Keyring, error) {
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("namespace required")
	}
	dir := filepath.Join(cfg.Home, cfg.Namespace.String())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	// File-based stores, all rooted in the namespace directory.
	identityStore := store.NewIdentityFileStore(dir)
	flagStore := store.NewPublishFlagStore(dir)
	trustStore := store.NewTrustFileStore(dir)
	attachmentStore := store.NewAttachmentFileStore(dir)

	client := directory.NewHTTP(cfg.DirectoryURL, cfg.HTTP)

	identity := identitysvc.New(cfg.Namespace, identityStore, flagStore)
	trustSvc := trust.New(cfg.Namespace, trustStore)
	attachments := attachment.New(cfg.Namespace, attachmentStore)

	// If the directory 404s on our own id, republish the local keys
	// once before treating ourselves as absent. This bypasses the
	// uploaded flag: the directory just told us it has nothing.
	republish := func(ctx context.Context) error {
		bundle, err := identity.Bundle()
		if err != nil {
			return err
		}
		if err := client.PublishBundle(ctx, bundle); err != nil {
			return err
		}
		return flagStore.MarkUploaded()
	}
	cache := directory.NewCache(cfg.Namespace, client, trustSvc, cfg.SelfID, republish)

	messages := messagesvc.New(cfg.Namespace, cfg.SelfID, identity, cache, attachments)

	return &Keyring{
		Namespace:   cfg.Namespace,
		Identity:    identity,
		Directory:   cache,
		Client:      client,
		Trust:       trustSvc,
		Attachments: attachments,
		Messages:    messages,
	}, nil
}
