package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyring/internal/crypto"
	"keyring/internal/domain"
)

// fingerprint [peer]: print the local fingerprint, or a peer's.
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [peer]",
		Short: "Print the local or a peer's key fingerprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := unlock(cmd); err != nil {
					return err
				}
				fp, err := keyring.Identity.Fingerprint()
				if err != nil {
					return err
				}
				fmt.Printf("Fingerprint: %s\n", crypto.ShortFingerprint(fp))
				return nil
			}

			peer := domain.UserID(args[0])
			bundle, err := keyring.Directory.Bundle(cmd.Context(), peer, false)
			if err != nil {
				return err
			}
			fp, err := crypto.BundleFingerprint(bundle)
			if err != nil {
				return err
			}
			fmt.Printf("Fingerprint for %s: %s\n", peer, crypto.ShortFingerprint(fp))
			return nil
		},
	}
}
