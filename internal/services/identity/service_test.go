package identity_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyring/internal/domain"
	identitysvc "keyring/internal/services/identity"
	"keyring/internal/store"
)

func newService(t *testing.T) (*identitysvc.Service, string) {
	t.Helper()
	dir := t.TempDir()
	return identitysvc.New("ns", store.NewIdentityFileStore(dir), store.NewPublishFlagStore(dir)), dir
}

// flakyDirectory fails the first N publish attempts, then succeeds.
type flakyDirectory struct {
	failures  int
	published []domain.PublicKeyBundle
}

func (f *flakyDirectory) FetchBundle(ctx context.Context, id domain.UserID) (domain.PublicKeyBundle, error) {
	return domain.PublicKeyBundle{}, domain.ErrNotFound
}

func (f *flakyDirectory) PublishBundle(ctx context.Context, bundle domain.PublicKeyBundle) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("network down")
	}
	f.published = append(f.published, bundle)
	return nil
}

func TestEnsureIdentityIsIdempotent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.EnsureIdentity(ctx, "passphrase")
	require.NoError(t, err)
	second, err := svc.EnsureIdentity(ctx, "passphrase")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestEnsureIdentitySingleFlight(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	const callers = 8
	bundles := make([]domain.PublicKeyBundle, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := svc.EnsureIdentity(ctx, "passphrase")
			if assert.NoError(t, err) {
				bundles[i] = id.Bundle()
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Equal(t, bundles[0], bundles[i], "concurrent callers must share one key pair")
	}
}

func TestEnsureIdentitySurvivesRestart(t *testing.T) {
	svc, dir := newService(t)
	ctx := context.Background()

	created, err := svc.EnsureIdentity(ctx, "passphrase")
	require.NoError(t, err)

	// A new service over the same directory simulates a restart.
	reloaded := identitysvc.New("ns", store.NewIdentityFileStore(dir), store.NewPublishFlagStore(dir))
	loaded, err := reloaded.EnsureIdentity(ctx, "passphrase")
	require.NoError(t, err)

	assert.Equal(t, created.Bundle(), loaded.Bundle())
}

func TestIdentityBeforeEnsureFails(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Identity()
	assert.ErrorIs(t, err, domain.ErrNoIdentity)
}

func TestPublishIfNeededRetriesAfterFailure(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.EnsureIdentity(ctx, "passphrase")
	require.NoError(t, err)

	dir := &flakyDirectory{failures: 1}
	require.Error(t, svc.PublishIfNeeded(ctx, dir), "first publish fails on transport")

	// Flag stayed unset, so the next call retries and succeeds.
	require.NoError(t, svc.PublishIfNeeded(ctx, dir))
	require.Len(t, dir.published, 1)

	// Uploaded flag now set; further calls are no-ops.
	require.NoError(t, svc.PublishIfNeeded(ctx, dir))
	assert.Len(t, dir.published, 1)
}

func TestPublishedBundleMatchesIdentity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	id, err := svc.EnsureIdentity(ctx, "passphrase")
	require.NoError(t, err)

	dir := &flakyDirectory{}
	require.NoError(t, svc.PublishIfNeeded(ctx, dir))
	require.Len(t, dir.published, 1)
	assert.Equal(t, id.Bundle(), dir.published[0])
}
