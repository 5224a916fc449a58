// Package trust implements trust-on-first-use pinning of peer key
// bundles.
//
// The first bundle observed for a peer pins its fingerprint. A later
// bundle with a different fingerprint records the previous one, marks
// the record changed and notifies listeners; the changed flag stays set
// until the record is explicitly forgotten. The store is advisory
// telemetry for the UI — it never blocks encryption or decryption.
package trust
