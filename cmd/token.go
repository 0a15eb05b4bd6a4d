package cmd

import (
	"fmt"
	"time"

	"github.com/cyberes/diagnostico-relay/auth"
	"github.com/spf13/cobra"
)

var (
	tokenUser auth.User
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for /api/user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		token, err := auth.GenerateToken(cfg.Auth.JWTSecret, tokenUser, tokenTTL)
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser.ID, "id", "", "User id (token subject)")
	tokenCmd.Flags().StringVar(&tokenUser.Name, "name", "", "User name")
	tokenCmd.Flags().StringVar(&tokenUser.Email, "email", "", "User email")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(tokenCmd)
}
