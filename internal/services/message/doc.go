// Package message is the surface the chat layer calls: encrypt a
// plaintext for one peer or a whole group, and decrypt an incoming wire
// string.
//
// Decryption classifies the wire string by prefix, builds an explicit
// ordered list of candidate envelopes (the one addressed to the viewer
// first), and folds over them until one opens. Per-candidate failures
// are swallowed; after exhausting candidates the caller gets a generic
// locked-message placeholder, never an error. Structured payloads carry
// attachment secrets, which are routed into the attachment cache before
// the display text is returned.
package message
