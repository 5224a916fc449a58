package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"keyring/internal/crypto"
	"keyring/internal/domain"
)

func trustCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trust",
		Short: "Inspect or reset pinned peer keys",
	}
	cmd.AddCommand(trustShowCmd(), trustForgetCmd())
	return cmd
}

func trustShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <peer>",
		Short: "Show the pinned record for a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.UserID(args[0])
			rec, ok, err := keyring.Trust.Record(peer)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("no pinned key for %s\n", peer)
				return nil
			}
			fmt.Printf("Fingerprint: %s\n", crypto.ShortFingerprint(rec.Fingerprint))
			fmt.Printf("First seen:  %s\n", time.Unix(rec.FirstSeenAt, 0).Format(time.RFC3339))
			fmt.Printf("Last seen:   %s\n", time.Unix(rec.LastSeenAt, 0).Format(time.RFC3339))
			if rec.Changed {
				fmt.Printf("WARNING: key changed (was %s)\n", crypto.ShortFingerprint(rec.PreviousFingerprint))
			}
			return nil
		},
	}
}

func trustForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <peer>",
		Short: "Drop the pinned record for a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := keyring.Trust.Forget(domain.UserID(args[0])); err != nil {
				return err
			}
			fmt.Println("forgotten")
			return nil
		},
	}
}
