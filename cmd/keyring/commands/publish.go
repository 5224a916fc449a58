package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Upload public keys to the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := unlock(cmd); err != nil {
				return err
			}
			if err := keyring.Identity.PublishIfNeeded(cmd.Context(), keyring.Client); err != nil {
				return err
			}
			fmt.Println("published")
			return nil
		},
	}
}

// unlock loads the local identity with the passphrase flag.
func unlock(cmd *cobra.Command) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	_, err := keyring.Identity.EnsureIdentity(cmd.Context(), passphrase)
	return err
}
