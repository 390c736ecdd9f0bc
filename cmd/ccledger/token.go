package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/community_currency/internal/auth"
	"github.com/SscSPs/community_currency/internal/core/domain"
	"github.com/SscSPs/community_currency/internal/dto"
	"github.com/SscSPs/community_currency/internal/platform/config"
	"github.com/spf13/cobra"
)

var (
	tokenIdentity string
	tokenTTL      time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage bearer tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Print a signed bearer token for an identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !dto.IsValidIdentity(tokenIdentity) {
			return fmt.Errorf("invalid identity %q", tokenIdentity)
		}
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.JWTExpiryDuration
		}

		token, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, ttl).Issue(domain.Identity(tokenIdentity))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenIssueCmd.Flags().StringVar(&tokenIdentity, "identity", "", "identity the token authorizes (required)")
	tokenIssueCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	_ = tokenIssueCmd.MarkFlagRequired("identity")

	tokenCmd.AddCommand(tokenIssueCmd)
	rootCmd.AddCommand(tokenCmd)
}
