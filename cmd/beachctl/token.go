package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"beachtrack/internal/auth/local"
	"beachtrack/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a local HS256 bearer token for a user",
	Long:  "Signs a token with BEACH_AUTH_JWT_SECRET. The server accepts it when BEACH_AUTH_PROVIDER=local.",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

var (
	tokenUserID string
	tokenExpiry time.Duration
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user", "u", "", "User id to put in the subject claim (required)")
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", 0, "Token lifetime (defaults to BEACH_AUTH_TOKEN_EXPIRY)")
	if err := tokenCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	authCfg := cfg.Auth
	if tokenExpiry > 0 {
		authCfg.TokenExpiry = tokenExpiry
	}

	token, expiresAt, err := local.NewIssuer(authCfg).Issue(tokenUserID)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
		"token":     token,
		"expiresAt": expiresAt.UTC(),
	})
}
