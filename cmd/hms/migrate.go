package main

import (
	"context"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/hmsv1/hospital-system/internal/core/service"
	"github.com/hmsv1/hospital-system/pkg/logger"
)

// NewMigrateSecretsCmd creates the migrate-secrets subcommand.
func NewMigrateSecretsCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate-secrets",
		Short: "Hash stored secrets that are not in a recognised hash format",
		Long: `Rewrites every stored secret that is not a bcrypt or argon2id hash with a hash
of its current value. Login never accepts such secrets, so affected accounts
cannot sign in until this has run. Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			cfg, log, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			store, repo, err := openAccounts(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(store, log)

			accounts := service.NewAccountService(repo, newHasher(cfg), service.NewSchemeVerifier(), logger.Component(log, "migrate"))
			n, err := accounts.MigrateLegacySecrets(ctx)
			if err != nil {
				return oops.Code("MIGRATION_FAILED").With("migrated", n).Wrap(err)
			}

			cmd.Printf("Migrated %d secret(s)\n", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "timeout for the whole migration")

	return cmd
}
