package main

import (
	"os"

	"keyring/cmd/keyring/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
