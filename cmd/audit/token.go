package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/system"
	"github.com/heartmarshall/sapl-backend/internal/auth"
	"github.com/heartmarshall/sapl-backend/internal/config"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

var tokenTTL time.Duration

type userLookup interface {
	UserByUsername(ctx context.Context, username string) (domain.User, error)
}

type tokenIssuer interface {
	IssueFor(u domain.User) (string, error)
}

var tokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Issue a bearer token for a system user",
	Long: "Looks the user up and prints a signed access token. Superusers get " +
		"the admin role that opens the audit and system views; inactive users are refused.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		ttl := cfg.Auth.AccessTokenTTL
		if tokenTTL > 0 {
			ttl = tokenTTL
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		token, err := issueToken(ctx, system.New(pool),
			auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default auth.access_token_ttl)")
}

func issueToken(ctx context.Context, users userLookup, issuer tokenIssuer, username string) (string, error) {
	u, err := users.UserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	return issuer.IssueFor(u)
}
