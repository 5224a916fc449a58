package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"keyring/internal/domain"
)

// SelfRecover republishes the local user's keys. The cache calls it
// once when the directory 404s on the local user's own id, then retries
// the fetch before caching the negative result.
type SelfRecover func(ctx context.Context) error

// Cache memoizes directory lookups for one account namespace.
//
// Negative results ("known absent") are cached too, so users who never
// published keys cost one round-trip, not one per message. Entries are
// only dropped by Invalidate or replaced by a forced refresh; writers
// to the same namespace follow last-writer-wins.
type Cache struct {
	client    domain.DirectoryClient
	trust     domain.BundleObserver
	selfID    domain.UserID
	republish SelfRecover
	log       *logrus.Entry

	mu      sync.Mutex
	entries map[domain.UserID]cacheEntry
}

type cacheEntry struct {
	bundle domain.PublicKeyBundle
	absent bool
}

// NewCache returns an empty cache for one namespace. trust and
// republish may be nil.
func NewCache(ns domain.Namespace, client domain.DirectoryClient, trust domain.BundleObserver, selfID domain.UserID, republish SelfRecover) *Cache {
	return &Cache{
		client:    client,
		trust:     trust,
		selfID:    selfID,
		republish: republish,
		log: logrus.WithFields(logrus.Fields{
			"component": "directory",
			"namespace": ns.String(),
		}),
		entries: make(map[domain.UserID]cacheEntry),
	}
}

// Bundle returns the key bundle for id.
//
// A cached positive entry is returned as-is; a cached negative entry
// raises domain.ErrNotFound without touching the network. On a miss, or
// when force is set, the directory is queried and the cache updated
// either way.
func (c *Cache) Bundle(ctx context.Context, id domain.UserID, force bool) (domain.PublicKeyBundle, error) {
	if !force {
		c.mu.Lock()
		e, ok := c.entries[id]
		c.mu.Unlock()
		if ok {
			if e.absent {
				return domain.PublicKeyBundle{}, domain.ErrNotFound
			}
			return e.bundle, nil
		}
	}

	bundle, err := c.fetch(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		c.store(id, cacheEntry{absent: true})
		return domain.PublicKeyBundle{}, domain.ErrNotFound
	}
	if err != nil {
		// Transport failures are not cached; the next call retries.
		return domain.PublicKeyBundle{}, err
	}

	c.store(id, cacheEntry{bundle: bundle})
	c.observe(id, bundle)
	return bundle, nil
}

// Invalidate drops any cached entry, positive or negative, for id.
func (c *Cache) Invalidate(id domain.UserID) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// fetch queries the directory, recovering the local user's own missing
// entry once by republishing.
func (c *Cache) fetch(ctx context.Context, id domain.UserID) (domain.PublicKeyBundle, error) {
	bundle, err := c.client.FetchBundle(ctx, id)
	if !errors.Is(err, domain.ErrNotFound) || id != c.selfID || c.republish == nil {
		return bundle, err
	}

	c.log.WithField("user", id.String()).Info("own keys missing from directory, republishing")
	if rerr := c.republish(ctx); rerr != nil {
		c.log.WithError(rerr).Warn("republish failed")
		return domain.PublicKeyBundle{}, err
	}
	return c.client.FetchBundle(ctx, id)
}

func (c *Cache) store(id domain.UserID, e cacheEntry) {
	c.mu.Lock()
	c.entries[id] = e
	c.mu.Unlock()
}

func (c *Cache) observe(id domain.UserID, bundle domain.PublicKeyBundle) {
	if c.trust == nil {
		return
	}
	rec, err := c.trust.Observe(id, bundle)
	if err != nil {
		c.log.WithError(err).WithField("user", id.String()).Warn("trust observation failed")
		return
	}
	if rec.Changed {
		c.log.WithField("user", id.String()).Warn("peer key fingerprint changed")
	}
}
