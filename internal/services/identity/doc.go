// Package identity manages the local user's long-term key pairs.
//
// The identity is created lazily on first use, persisted encrypted
// under the account passphrase, and published to the key directory
// exactly once per namespace. Creation is single-flight: concurrent
// callers can never race into two different key pairs.
package identity
