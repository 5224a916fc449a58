package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyring/internal/domain"
)

// decrypt <sender> <wire>: resolve a wire string to display text.
func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <sender> <wire>",
		Short: "Decrypt an incoming wire string",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := unlock(cmd); err != nil {
				return err
			}
			text := keyring.Messages.Decrypt(cmd.Context(), domain.UserID(args[0]), args[1])
			fmt.Println(text)
			return nil
		},
	}
}
