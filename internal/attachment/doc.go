// Package attachment caches the symmetric secrets for encrypted
// attachments.
//
// Attachment keys never travel on their own channel: they ride inside
// the E2E-encrypted message payload and are dropped into this cache
// when a message is decrypted (or sent). Whenever attachment bytes must
// be decrypted later, the key is looked up here by attachment id.
// Entries never expire automatically.
package attachment
