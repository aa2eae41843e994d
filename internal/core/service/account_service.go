package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hmsv1/hospital-system/internal/core/domain"
	"github.com/hmsv1/hospital-system/internal/core/ports"
	"github.com/hmsv1/hospital-system/internal/pkg/metrics"
)

// HashRecognizer reports whether a stored secret is already a supported hash.
type HashRecognizer interface {
	Recognized(stored string) bool
}

// AccountService manages staff accounts. Plaintext passwords never reach
// the repository: every write goes through the hasher.
type AccountService struct {
	repo       ports.AccountRepository
	hasher     ports.PasswordHasher
	recognizer HashRecognizer
	log        zerolog.Logger
	now        func() time.Time
}

func NewAccountService(repo ports.AccountRepository, hasher ports.PasswordHasher, recognizer HashRecognizer, log zerolog.Logger) *AccountService {
	return &AccountService{
		repo:       repo,
		hasher:     hasher,
		recognizer: recognizer,
		log:        log,
		now:        time.Now,
	}
}

func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.List(ctx)
}

func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// Create provisions a new account with a hashed password.
func (s *AccountService) Create(ctx context.Context, input ports.AccountInput) (*domain.Account, error) {
	input = normalize(input)
	if input.Password == "" {
		return nil, domain.ErrInvalidAccount
	}
	if err := validateAccount(input); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Name:         input.Name,
		Phone:        input.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	metrics.AccountsCreatedTotal.WithLabelValues(string(created.Role)).Inc()
	s.log.Info().Int64("account_id", created.ID).Str("role", string(created.Role)).Msg("account created")
	return created, nil
}

// Update replaces the account's profile. The stored hash changes only when
// input.Password is non-empty.
func (s *AccountService) Update(ctx context.Context, id int64, input ports.AccountInput) (*domain.Account, error) {
	input = normalize(input)
	if err := validateAccount(input); err != nil {
		return nil, err
	}

	var hash string
	if input.Password != "" {
		var err error
		if hash, err = s.hashPassword(input.Password); err != nil {
			return nil, err
		}
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.Username = input.Username
	account.Email = input.Email
	account.Role = input.Role
	account.Name = input.Name
	account.Phone = input.Phone
	account.UpdatedAt = s.now().UTC()
	if hash != "" {
		account.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info().Int64("account_id", account.ID).Bool("password_changed", input.Password != "").Msg("account updated")
	return account, nil
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("account_id", id).Msg("account deleted")
	return nil
}

// MigrateLegacySecrets rehashes every stored secret that is not in a
// supported hash format and returns how many accounts were rewritten.
func (s *AccountService) MigrateLegacySecrets(ctx context.Context) (int, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, a := range accounts {
		if a.PasswordHash == "" || s.recognizer.Recognized(a.PasswordHash) {
			continue
		}

		hash, err := s.hasher.Hash(a.PasswordHash)
		if err != nil {
			return migrated, fmt.Errorf("hash legacy secret for account %d: %w", a.ID, err)
		}
		if err := s.repo.UpdatePasswordHash(ctx, a.ID, hash); err != nil {
			return migrated, err
		}

		migrated++
		metrics.LegacySecretsMigratedTotal.Inc()
		s.log.Info().Int64("account_id", a.ID).Msg("legacy secret rehashed")
	}
	return migrated, nil
}

// hashPassword surfaces bcrypt's input limit as a client error.
func (s *AccountService) hashPassword(plain string) (string, error) {
	hash, err := s.hasher.Hash(plain)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func normalize(in ports.AccountInput) ports.AccountInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Role = domain.Role(strings.ToUpper(strings.TrimSpace(string(in.Role))))
	return in
}

func validateAccount(in ports.AccountInput) error {
	if in.Username == "" || in.Email == "" || in.Name == "" {
		return domain.ErrInvalidAccount
	}
	if !in.Role.Valid() {
		return domain.ErrInvalidRole
	}
	return nil
}
