package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"keyring/internal/app"
	"keyring/internal/domain"
)

var (
	home       string
	namespace  string
	selfID     string
	passphrase string
	dirURL     string

	keyring *app.Keyring
)

func Execute() error {
	root := &cobra.Command{
		Use:   "keyring",
		Short: "End-to-end encryption keyring for chat",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".keyring")
			}
			if namespace == "" {
				namespace = selfID
			}

			kr, err := app.NewKeyring(app.Config{
				Home:         home,
				Namespace:    domain.Namespace(namespace),
				SelfID:       domain.UserID(selfID),
				DirectoryURL: dirURL,
			})
			if err != nil {
				return err
			}
			keyring = kr
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.keyring)")
	root.PersistentFlags().StringVar(&namespace, "namespace", "", "account namespace (default: --user)")
	root.PersistentFlags().StringVar(&selfID, "user", "", "your directory user id")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the identity keys")
	root.PersistentFlags().StringVar(&dirURL, "directory", "", "directory base URL (e.g. https://chat.example.com/api)")

	root.AddCommand(initCmd(), fingerprintCmd(), publishCmd(), encryptCmd(), decryptCmd(), trustCmd())
	return root.Execute()
}
