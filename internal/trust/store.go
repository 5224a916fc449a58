package trust

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"keyring/internal/crypto"
	"keyring/internal/domain"
)

// KeyChangeFunc is notified when a pinned peer presents a different
// fingerprint. It runs synchronously inside Observe; keep it cheap.
type KeyChangeFunc func(peer domain.UserID, rec domain.TrustRecord)

// Store pins peer key fingerprints per account namespace.
type Store struct {
	records domain.TrustRecordStore
	log     *logrus.Entry

	mu        sync.Mutex
	listeners []KeyChangeFunc
}

// New returns a trust store over the given record persistence.
func New(ns domain.Namespace, records domain.TrustRecordStore) *Store {
	return &Store{
		records: records,
		log: logrus.WithFields(logrus.Fields{
			"component": "trust",
			"namespace": ns.String(),
		}),
	}
}

// OnKeyChange registers a listener for fingerprint changes.
func (s *Store) OnKeyChange(fn KeyChangeFunc) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Observe records a sighting of a peer's bundle.
//
// First sighting pins the fingerprint with changed=false. A different
// fingerprint later records the previous one, sets changed and fires
// the key-change listeners. The same fingerprint again only refreshes
// last-seen; a sticky changed flag is preserved and does not re-fire.
func (s *Store) Observe(peer domain.UserID, bundle domain.PublicKeyBundle) (domain.TrustRecord, error) {
	fp, err := crypto.BundleFingerprint(bundle)
	if err != nil {
		return domain.TrustRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	rec, ok, err := s.records.LoadRecord(peer)
	if err != nil {
		return domain.TrustRecord{}, err
	}

	switch {
	case !ok:
		rec = domain.TrustRecord{
			Fingerprint: fp,
			FirstSeenAt: now,
			LastSeenAt:  now,
		}
	case rec.Fingerprint != fp:
		rec.PreviousFingerprint = rec.Fingerprint
		rec.Fingerprint = fp
		rec.LastSeenAt = now
		rec.Changed = true
		s.log.WithFields(logrus.Fields{
			"user":     peer.String(),
			"previous": crypto.ShortFingerprint(rec.PreviousFingerprint),
			"current":  crypto.ShortFingerprint(fp),
		}).Warn("peer key changed")
		defer s.notify(peer, rec)
	default:
		rec.LastSeenAt = now
	}

	if err := s.records.SaveRecord(peer, rec); err != nil {
		return domain.TrustRecord{}, err
	}
	return rec, nil
}

// Record returns the pinned record for peer, if any.
func (s *Store) Record(peer domain.UserID) (domain.TrustRecord, bool, error) {
	return s.records.LoadRecord(peer)
}

// Forget drops the pinned record entirely. The next observation re-pins
// from scratch with changed=false.
func (s *Store) Forget(peer domain.UserID) error {
	return s.records.DeleteRecord(peer)
}

// notify runs with s.mu held; listeners must not call back into the
// store.
func (s *Store) notify(peer domain.UserID, rec domain.TrustRecord) {
	for _, fn := range s.listeners {
		fn(peer, rec)
	}
}

// Compile-time assertion that Store implements domain.BundleObserver.
var _ domain.BundleObserver = (*Store)(nil)
