package domain

// TrustRecord is the per-peer trust-on-first-use advisory record.
// Changed is sticky: once a fingerprint change is detected it stays set
// until the record is explicitly forgotten.
type TrustRecord struct {
	Fingerprint         Fingerprint `json:"fingerprint"`
	FirstSeenAt         int64       `json:"first_seen_at"`
	LastSeenAt          int64       `json:"last_seen_at"`
	PreviousFingerprint Fingerprint `json:"previous_fingerprint,omitempty"`
	Changed             bool        `json:"changed"`
}
