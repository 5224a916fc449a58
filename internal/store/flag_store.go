package store

import (
	"path/filepath"
	"sync"
	"time"

	"keyring/internal/domain"
)

const publishFilename = "published.json"

type publishMeta struct {
	Uploaded    bool  `json:"uploaded"`
	PublishedAt int64 `json:"published_at,omitempty"`
}

// PublishFlagStore tracks whether the public keys were uploaded to the
// directory for this namespace.
type PublishFlagStore struct {
	dir string
	mu  sync.Mutex
}

// NewPublishFlagStore returns a PublishFlagStore rooted at dir.
func NewPublishFlagStore(dir string) *PublishFlagStore {
	return &PublishFlagStore{dir: dir}
}

// Uploaded reports whether a successful publish was recorded.
func (s *PublishFlagStore) Uploaded() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var meta publishMeta
	if err := readJSON(filepath.Join(s.dir, publishFilename), &meta); err != nil {
		return false, err
	}
	return meta.Uploaded, nil
}

// MarkUploaded records a successful publish.
func (s *PublishFlagStore) MarkUploaded() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := publishMeta{Uploaded: true, PublishedAt: time.Now().Unix()}
	return writeJSON(filepath.Join(s.dir, publishFilename), meta, 0o600)
}

// Compile-time assertion that PublishFlagStore implements domain.UploadFlagStore.
var _ domain.UploadFlagStore = (*PublishFlagStore)(nil)
