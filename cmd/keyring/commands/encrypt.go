package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyring/internal/domain"
)

// encrypt <message>: seal a message for a peer or a whole group.
func encryptCmd() *cobra.Command {
	var (
		peer  string
		group []string
	)
	cmd := &cobra.Command{
		Use:   "encrypt <message>",
		Short: "Encrypt a message for a peer or group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := unlock(cmd); err != nil {
				return err
			}

			var (
				wire string
				err  error
			)
			switch {
			case peer != "" && len(group) > 0:
				return fmt.Errorf("use either --peer or --group, not both")
			case peer != "":
				wire, err = keyring.Messages.EncryptForUser(cmd.Context(), domain.UserID(peer), args[0])
			case len(group) > 0:
				members := make([]domain.UserID, len(group))
				for i, m := range group {
					members[i] = domain.UserID(m)
				}
				wire, err = keyring.Messages.EncryptForGroup(cmd.Context(), members, args[0])
			default:
				return fmt.Errorf("recipient required (--peer or --group)")
			}
			if err != nil {
				return err
			}
			fmt.Println(wire)
			return nil
		},
	}
	cmd.Flags().StringVar(&peer, "peer", "", "recipient user id")
	cmd.Flags().StringSliceVar(&group, "group", nil, "group member ids")
	return cmd
}
