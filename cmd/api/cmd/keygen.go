// AngelaMos | 2026
// keygen.go

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/auth"
)

var (
	keygenPrivate string
	keygenPublic  string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an ES256 signing key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.GenerateKeyPair(keygenPrivate, keygenPublic); err != nil {
			return err
		}
		cmd.Printf("wrote %s and %s\n", keygenPrivate, keygenPublic)
		return nil
	},
}

func init() {
	keygenCmd.Flags().StringVar(&keygenPrivate, "private", "keys/private.pem", "private key output path")
	keygenCmd.Flags().StringVar(&keygenPublic, "public", "keys/public.pem", "public key output path")
}
