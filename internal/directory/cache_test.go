package directory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyring/internal/crypto"
	"keyring/internal/directory"
	"keyring/internal/domain"
)

// fakeDirectory is an in-memory DirectoryClient that counts fetches.
type fakeDirectory struct {
	mu      sync.Mutex
	bundles map[domain.UserID]domain.PublicKeyBundle
	fetches map[domain.UserID]int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		bundles: make(map[domain.UserID]domain.PublicKeyBundle),
		fetches: make(map[domain.UserID]int),
	}
}

func (f *fakeDirectory) FetchBundle(ctx context.Context, id domain.UserID) (domain.PublicKeyBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[id]++
	b, ok := f.bundles[id]
	if !ok {
		return domain.PublicKeyBundle{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeDirectory) PublishBundle(ctx context.Context, bundle domain.PublicKeyBundle) error {
	return nil
}

func (f *fakeDirectory) fetchCount(id domain.UserID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[id]
}

func (f *fakeDirectory) set(id domain.UserID, b domain.PublicKeyBundle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bundles[id] = b
}

func makeBundle(t *testing.T) domain.PublicKeyBundle {
	t.Helper()
	id, err := crypto.NewIdentity()
	require.NoError(t, err)
	return id.Bundle()
}

func TestBundleCachesPositive(t *testing.T) {
	dir := newFakeDirectory()
	dir.set("7", makeBundle(t))
	cache := directory.NewCache("ns", dir, nil, "me", nil)

	first, err := cache.Bundle(context.Background(), "7", false)
	require.NoError(t, err)
	second, err := cache.Bundle(context.Background(), "7", false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, dir.fetchCount("7"), "second lookup must be served from cache")
}

func TestBundleCachesNegative(t *testing.T) {
	dir := newFakeDirectory()
	cache := directory.NewCache("ns", dir, nil, "me", nil)

	_, err := cache.Bundle(context.Background(), "42", false)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = cache.Bundle(context.Background(), "42", false)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, dir.fetchCount("42"), "negative result must be cached")
}

func TestBundleForceRefetches(t *testing.T) {
	dir := newFakeDirectory()
	old := makeBundle(t)
	dir.set("7", old)
	cache := directory.NewCache("ns", dir, nil, "me", nil)

	_, err := cache.Bundle(context.Background(), "7", false)
	require.NoError(t, err)

	rotated := makeBundle(t)
	dir.set("7", rotated)

	got, err := cache.Bundle(context.Background(), "7", true)
	require.NoError(t, err)
	assert.Equal(t, rotated, got)
	assert.Equal(t, 2, dir.fetchCount("7"))
}

func TestInvalidateDropsEntry(t *testing.T) {
	dir := newFakeDirectory()
	cache := directory.NewCache("ns", dir, nil, "me", nil)

	_, err := cache.Bundle(context.Background(), "42", false)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// User publishes keys; a plain lookup still sees the cached
	// absence until the entry is invalidated.
	dir.set("42", makeBundle(t))
	_, err = cache.Bundle(context.Background(), "42", false)
	require.ErrorIs(t, err, domain.ErrNotFound)

	cache.Invalidate("42")
	_, err = cache.Bundle(context.Background(), "42", false)
	require.NoError(t, err)
}

func TestSelfMissingTriggersRepublish(t *testing.T) {
	dir := newFakeDirectory()
	me := makeBundle(t)
	republished := 0
	republish := func(ctx context.Context) error {
		republished++
		dir.set("me", me)
		return nil
	}
	cache := directory.NewCache("ns", dir, nil, "me", republish)

	got, err := cache.Bundle(context.Background(), "me", false)
	require.NoError(t, err)
	assert.Equal(t, me, got)
	assert.Equal(t, 1, republished)
}

func TestSelfRepublishFailureCachesAbsent(t *testing.T) {
	dir := newFakeDirectory()
	republish := func(ctx context.Context) error { return errors.New("directory down") }
	cache := directory.NewCache("ns", dir, nil, "me", republish)

	_, err := cache.Bundle(context.Background(), "me", false)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// recordingObserver captures trust observations.
type recordingObserver struct {
	mu    sync.Mutex
	seen  []domain.UserID
	fails bool
}

func (r *recordingObserver) Observe(peer domain.UserID, bundle domain.PublicKeyBundle) (domain.TrustRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fails {
		return domain.TrustRecord{}, errors.New("observe failed")
	}
	r.seen = append(r.seen, peer)
	return domain.TrustRecord{}, nil
}

func TestFetchedBundlesFeedTrustStore(t *testing.T) {
	dir := newFakeDirectory()
	dir.set("7", makeBundle(t))
	obs := &recordingObserver{}
	cache := directory.NewCache("ns", dir, obs, "me", nil)

	_, err := cache.Bundle(context.Background(), "7", false)
	require.NoError(t, err)
	_, err = cache.Bundle(context.Background(), "7", false)
	require.NoError(t, err)

	assert.Equal(t, []domain.UserID{"7"}, obs.seen, "cache hits must not re-observe")
}

func TestTrustFailureDoesNotBlockFetch(t *testing.T) {
	dir := newFakeDirectory()
	dir.set("7", makeBundle(t))
	cache := directory.NewCache("ns", dir, &recordingObserver{fails: true}, "me", nil)

	_, err := cache.Bundle(context.Background(), "7", false)
	require.NoError(t, err, "trust observation is advisory only")
}
