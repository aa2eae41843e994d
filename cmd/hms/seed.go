package main

import (
	"context"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/hmsv1/hospital-system/internal/core/service"
	"github.com/hmsv1/hospital-system/pkg/logger"
)

const defaultTaskTimeout = 30 * time.Second

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default staff accounts",
		Long: `Creates one account per role with the password <username><SEED_PASSWORD_SUFFIX>.
Does nothing when the account store already holds accounts.`,
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

			accounts := service.NewAccountService(repo, newHasher(cfg), service.NewSchemeVerifier(), logger.Component(log, "seed"))
			n, err := accounts.SeedDefaults(ctx, cfg.Auth.SeedPasswordSuffix)
			if err != nil {
				return oops.Code("SEED_FAILED").Wrap(err)
			}

			cmd.Printf("Seeded %d account(s)\n", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultTaskTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}
