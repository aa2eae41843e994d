package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/hmsv1/hospital-system/internal/core/ports"
	"github.com/hmsv1/hospital-system/internal/core/service"
	mongostore "github.com/hmsv1/hospital-system/internal/infrastructure/db/mongo"
	"github.com/hmsv1/hospital-system/internal/pkg/config"
	"github.com/hmsv1/hospital-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// loadConfig reads configuration and initialises the process logger.
func loadConfig(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(ctx, files...)
	if err != nil {
		return nil, zerolog.Logger{}, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "hms",
		Version: version,
	})
	return cfg, log, nil
}

// openAccounts connects to MongoDB and ensures the account indexes exist.
func openAccounts(ctx context.Context, cfg *config.Config) (*mongostore.Store, *mongostore.AccountRepository, error) {
	store, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, oops.Code("DB_CONNECT_FAILED").With("database", cfg.Mongo.Database).Wrap(err)
	}

	repo := mongostore.NewAccountRepository(store.DB)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = store.Close(context.Background())
		return nil, nil, oops.Code("DB_INDEX_FAILED").Wrap(err)
	}
	return store, repo, nil
}

func closeStore(store *mongostore.Store, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect failed")
	}
}

// newHasher returns the hasher for newly written secrets.
func newHasher(cfg *config.Config) ports.PasswordHasher {
	if cfg.Auth.PasswordScheme == config.PasswordSchemeArgon2id {
		return service.NewArgon2idHasher()
	}
	return service.NewBcryptHasher(cfg.Auth.BcryptCost)
}

// newTokenIssuer returns the issuer for the configured token format.
func newTokenIssuer(cfg *config.Config) (ports.TokenIssuer, error) {
	if cfg.Auth.TokenFormat == config.TokenFormatSigned {
		issuer, err := service.NewSignedTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("token issuer: %w", err)
		}
		return issuer, nil
	}
	return service.NewOpaqueTokenIssuer(), nil
}

// sessionSecret returns the key the session guard checks, or "" when
// account routes run unguarded. The unguarded case is logged as a warning.
func sessionSecret(cfg *config.Config, log zerolog.Logger) string {
	if cfg.Auth.TokenFormat == config.TokenFormatSigned {
		return cfg.Auth.JWTSecret
	}
	log.Warn().
		Str("token_format", cfg.Auth.TokenFormat).
		Msg("account management routes are unauthenticated; set SESSION_TOKEN_FORMAT=signed to require a session")
	return ""
}
