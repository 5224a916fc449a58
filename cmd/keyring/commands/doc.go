// Package commands implements the keyring CLI: identity management,
// key publishing, trust inspection and manual encrypt/decrypt against
// a chat backend's key directory.
package commands
