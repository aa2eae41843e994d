package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/hmsv1/hospital-system/internal/api"
	"github.com/hmsv1/hospital-system/internal/api/handler"
	"github.com/hmsv1/hospital-system/internal/core/service"
	redisstore "github.com/hmsv1/hospital-system/internal/infrastructure/db/redis"
	"github.com/hmsv1/hospital-system/internal/infrastructure/queue"
	"github.com/hmsv1/hospital-system/pkg/logger"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API serving login, logout and account management.
Login attempts are audited to a Redis stream in the background.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, seed)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "create the default staff accounts when the store is empty")

	return cmd
}

func runServe(cmd *cobra.Command, seed bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	store, repo, err := openAccounts(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store, log)

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return oops.Code("REDIS_CONNECT_FAILED").With("addr", cfg.Redis.Addr).Wrap(err)
	}
	defer func() { _ = rdb.Close() }()

	// Audit workers outlive ctx so records already queued at shutdown are flushed.
	dispatcher := queue.NewDispatcher(
		cfg.Redis.AuditWorkers, 0,
		redisstore.NewAuditStream(rdb, cfg.Redis.AuditStream),
		logger.Component(log, "audit"),
	)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	hasher := newHasher(cfg)
	verifier := service.NewSchemeVerifier()
	issuer, err := newTokenIssuer(cfg)
	if err != nil {
		return err
	}

	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return oops.Code("DECOY_HASH_FAILED").Wrap(err)
	}

	accounts := service.NewAccountService(repo, hasher, verifier, logger.Component(log, "accounts"))
	if seed {
		n, err := accounts.SeedDefaults(ctx, cfg.Auth.SeedPasswordSuffix)
		if err != nil {
			return oops.Code("SEED_FAILED").Wrap(err)
		}
		log.Info().Int("created", n).Msg("default staff seeded")
	}

	authLog := logger.Component(log, "auth")
	auth := service.NewAuthService(
		service.NewIdentityResolver(repo, authLog),
		verifier,
		issuer,
		authLog,
		service.WithAuditSink(dispatcher),
		service.WithDecoyHash(decoy),
	)

	e := api.NewRouter(api.Deps{
		Auth:     auth,
		Accounts: accounts,
		Health: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(store.DB),
			"redis":   handler.RedisPinger(rdb),
		},
		SessionSecret: sessionSecret(cfg, log),
		CORSOrigin:    cfg.CORSOrigin,
		Log:           logger.Component(log, "http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("token_format", cfg.Auth.TokenFormat).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return oops.Code("HTTP_SERVER_FAILED").Wrap(err)
		}
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	return nil
}
