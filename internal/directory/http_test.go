package directory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyring/internal/directory"
	"keyring/internal/domain"
)

func TestFetchBundle(t *testing.T) {
	want := makeBundle(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/7/keys", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(want))
	}))
	defer srv.Close()

	got, err := directory.NewHTTP(srv.URL, nil).FetchBundle(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFetchBundleNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := directory.NewHTTP(srv.URL, nil).FetchBundle(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchBundleServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := directory.NewHTTP(srv.URL, nil).FetchBundle(context.Background(), "7")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound, "5xx is transport failure, not absence")
}

func TestFetchBundleEscapesUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/a%2Fb/keys", r.URL.EscapedPath())
		require.NoError(t, json.NewEncoder(w).Encode(makeBundle(t)))
	}))
	defer srv.Close()

	_, err := directory.NewHTTP(srv.URL, nil).FetchBundle(context.Background(), "a/b")
	require.NoError(t, err)
}

func TestPublishBundle(t *testing.T) {
	published := makeBundle(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/me/keys", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var got domain.PublicKeyBundle
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, published, got)
	}))
	defer srv.Close()

	err := directory.NewHTTP(srv.URL, nil).PublishBundle(context.Background(), published)
	require.NoError(t, err)
}

func TestPublishBundleRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	err := directory.NewHTTP(srv.URL, nil).PublishBundle(context.Background(), makeBundle(t))
	assert.Error(t, err)
}
