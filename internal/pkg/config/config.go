package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	TokenFormatOpaque = "opaque"
	TokenFormatSigned = "signed"

	PasswordSchemeBcrypt   = "bcrypt"
	PasswordSchemeArgon2id = "argon2id"
)

type Config struct {
	Port       string `env:"PORT,       default=8080"`
	Env        string `env:"ENV,        default=development"`
	LogLevel   string `env:"LOG_LEVEL,  default=info"`
	CORSOrigin string `env:"CORS_ORIGIN, default=http://localhost:3000"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET"`
	TokenFormat        string        `env:"SESSION_TOKEN_FORMAT, default=opaque"`
	TokenTTL           time.Duration `env:"SESSION_TOKEN_TTL,    default=24h"`
	PasswordScheme     string        `env:"PASSWORD_SCHEME,      default=bcrypt"`
	BcryptCost         int           `env:"BCRYPT_COST,          default=10"`
	SeedPasswordSuffix string        `env:"SEED_PASSWORD_SUFFIX, default=123"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital"`
}

type RedisConfig struct {
	Addr         string `env:"REDIS_ADDR,    default=localhost:6379"`
	DB           int    `env:"REDIS_DB,      default=0"`
	AuditStream  string `env:"AUDIT_STREAM,  default=hms:auth:audit"`
	AuditWorkers int    `env:"AUDIT_WORKERS, default=4"`
}

// IsDevelopment reports whether the service runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks combinations envconfig tags cannot express.
func (c *Config) Validate() error {
	switch c.Auth.TokenFormat {
	case TokenFormatOpaque:
	case TokenFormatSigned:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("config: SESSION_TOKEN_FORMAT=%s requires JWT_SECRET", TokenFormatSigned)
		}
	default:
		return fmt.Errorf("config: unknown SESSION_TOKEN_FORMAT %q", c.Auth.TokenFormat)
	}

	switch c.Auth.PasswordScheme {
	case PasswordSchemeBcrypt, PasswordSchemeArgon2id:
	default:
		return fmt.Errorf("config: unknown PASSWORD_SCHEME %q", c.Auth.PasswordScheme)
	}
	return nil
}

// Load reads the optional env files (".env" when none are given), then
// configuration from environment variables. Variables already set in the
// environment win over file values.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("config: read env file: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
