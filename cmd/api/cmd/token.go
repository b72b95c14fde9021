// AngelaMos | 2026
// token.go

package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/auth"
)

var (
	tokenUserID int
	tokenRoleID int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token",
	Long: `Mint a signed access token for a user. Needs jwt.private_key_path.

Example:
  api token --user-id 1 --role-id 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUserID <= 0 {
			return errors.New("--user-id must be a positive integer")
		}

		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		manager, err := auth.NewJWTManager(cfg.JWT)
		if err != nil {
			return err
		}

		token, err := manager.CreateAccessToken(auth.AccessTokenClaims{
			UserID: tokenUserID,
			RoleID: tokenRoleID,
		})
		if err != nil {
			return err
		}

		cmd.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().IntVar(&tokenUserID, "user-id", 0, "user ID to put in the subject")
	tokenCmd.Flags().IntVar(&tokenRoleID, "role-id", 2, "role ID claim")
}
