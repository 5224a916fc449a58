package store

import (
	"path/filepath"
	"sync"

	"keyring/internal/domain"
)

const attachmentFilename = "attachment_keys.json"

// AttachmentFileStore persists attachment secrets as a JSON map keyed
// by attachment id.
type AttachmentFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewAttachmentFileStore returns an AttachmentFileStore rooted at dir.
func NewAttachmentFileStore(dir string) *AttachmentFileStore {
	return &AttachmentFileStore{dir: dir}
}

// SaveSecrets upserts secrets by attachment id.
func (s *AttachmentFileStore) SaveSecrets(secrets []domain.AttachmentSecret) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[string]domain.AttachmentSecret)
	path := filepath.Join(s.dir, attachmentFilename)
	if err := readJSON(path, &m); err != nil {
		return err
	}
	for _, sec := range secrets {
		m[sec.ID] = sec
	}
	return writeJSON(path, m, 0o600)
}

// LoadSecret returns the secret for id, if any.
func (s *AttachmentFileStore) LoadSecret(id string) (domain.AttachmentSecret, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[string]domain.AttachmentSecret)
	if err := readJSON(filepath.Join(s.dir, attachmentFilename), &m); err != nil {
		return domain.AttachmentSecret{}, false, err
	}
	sec, ok := m[id]
	return sec, ok, nil
}

// Compile-time assertion that AttachmentFileStore implements domain.AttachmentSecretStore.
var _ domain.AttachmentSecretStore = (*AttachmentFileStore)(nil)
