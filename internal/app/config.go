package app

import (
	"keyring/internal/directory"
	"keyring/internal/domain"
)

// Config holds runtime wiring options for building a keyring.
type Config struct {
	Home         string           // state directory, e.g. $HOME/.keyring
	Namespace    domain.Namespace // local account silo
	SelfID       domain.UserID    // the local user's directory id
	DirectoryURL string           // chat backend base URL
	HTTP         directory.Doer   // optional; defaults to http.DefaultClient
}
