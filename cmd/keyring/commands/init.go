package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyring/internal/crypto"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate identity keys and store them securely",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if _, err := keyring.Identity.EnsureIdentity(cmd.Context(), passphrase); err != nil {
				return err
			}
			fp, err := keyring.Identity.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Printf("Identity ready.\nFingerprint: %s\n", crypto.ShortFingerprint(fp))
			return nil
		},
	}
}
