package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, TokenFormatOpaque, cfg.Auth.TokenFormat)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, PasswordSchemeBcrypt, cfg.Auth.PasswordScheme)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "123", cfg.Auth.SeedPasswordSuffix)
	assert.Equal(t, "hospital", cfg.Mongo.Database)
	assert.Equal(t, "hms:auth:audit", cfg.Redis.AuditStream)
	assert.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                 "9090",
		"ENV":                  "production",
		"SESSION_TOKEN_FORMAT": "signed",
		"JWT_SECRET":           "s3cret",
		"SESSION_TOKEN_TTL":    "2h",
		"PASSWORD_SCHEME":      "argon2id",
		"MONGO_URI":            "mongodb://db:27017",
		"REDIS_ADDR":           "cache:6379",
		"AUDIT_WORKERS":        "8",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, TokenFormatSigned, cfg.Auth.TokenFormat)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, PasswordSchemeArgon2id, cfg.Auth.PasswordScheme)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 8, cfg.Redis.AuditWorkers)
}

func TestLoad_SignedTokensNeedSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_TOKEN_FORMAT": "signed",
	}))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownValues(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"SESSION_TOKEN_FORMAT": "cookie"}))
	assert.Error(t, err)

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{"PASSWORD_SCHEME": "md5"}))
	assert.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	path := t.TempDir() + "/test.env"
	require.NoError(t, os.WriteFile(path, []byte("MONGO_DB=hms_from_file\nAUDIT_WORKERS=2\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("MONGO_DB")
		_ = os.Unsetenv("AUDIT_WORKERS")
	})

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hms_from_file", cfg.Mongo.Database)
	assert.Equal(t, 2, cfg.Redis.AuditWorkers)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(context.Background(), t.TempDir()+"/absent.env")
	assert.Error(t, err)
}
