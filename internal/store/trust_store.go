package store

import (
	"path/filepath"
	"sync"

	"keyring/internal/domain"
)

const trustFilename = "trust.json"

// TrustFileStore persists TOFU records as a JSON map keyed by peer id.
type TrustFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewTrustFileStore returns a TrustFileStore rooted at dir.
func NewTrustFileStore(dir string) *TrustFileStore {
	return &TrustFileStore{dir: dir}
}

// SaveRecord upserts the record for peer.
func (s *TrustFileStore) SaveRecord(peer domain.UserID, rec domain.TrustRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[domain.UserID]domain.TrustRecord)
	path := filepath.Join(s.dir, trustFilename)
	if err := readJSON(path, &m); err != nil {
		return err
	}
	m[peer] = rec
	return writeJSON(path, m, 0o600)
}

// LoadRecord returns the record for peer, if any.
func (s *TrustFileStore) LoadRecord(peer domain.UserID) (domain.TrustRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[domain.UserID]domain.TrustRecord)
	if err := readJSON(filepath.Join(s.dir, trustFilename), &m); err != nil {
		return domain.TrustRecord{}, false, err
	}
	rec, ok := m[peer]
	return rec, ok, nil
}

// DeleteRecord drops the record for peer entirely.
func (s *TrustFileStore) DeleteRecord(peer domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[domain.UserID]domain.TrustRecord)
	path := filepath.Join(s.dir, trustFilename)
	if err := readJSON(path, &m); err != nil {
		return err
	}
	delete(m, peer)
	return writeJSON(path, m, 0o600)
}

// Compile-time assertion that TrustFileStore implements domain.TrustRecordStore.
var _ domain.TrustRecordStore = (*TrustFileStore)(nil)
