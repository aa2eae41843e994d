package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/hmsv1/hospital-system/internal/core/domain"
	"github.com/hmsv1/hospital-system/internal/core/ports"
)

// IdentityResolver maps a login identifier to an account. Email is tried
// before username, so a value that is one account's email and another
// account's username always resolves to the email owner.
type IdentityResolver struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewIdentityResolver(repo ports.AccountRepository, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{repo: repo, log: log}
}

type lookup struct {
	path string
	find func(ctx context.Context, value string) (*domain.Account, error)
}

// Resolve returns (nil, nil) when no account matches. Errors are reserved for
// store failures and wrap domain.ErrDependencyFailure.
func (r *IdentityResolver) Resolve(ctx context.Context, identifier string) (*domain.Account, error) {
	lookups := []lookup{
		{path: "email", find: r.repo.FindByEmail},
		{path: "username", find: r.repo.FindByUsername},
	}

	for _, l := range lookups {
		account, err := l.find(ctx, identifier)
		if err == nil {
			r.log.Debug().Str("lookup", l.path).Int64("account_id", account.ID).Msg("identity resolved")
			return account, nil
		}
		if errors.Is(err, domain.ErrAccountNotFound) {
			continue
		}
		return nil, oops.
			Code("AUTH_DEPENDENCY_FAILURE").
			With("lookup", l.path).
			Wrap(fmt.Errorf("find account by %s: %w: %w", l.path, domain.ErrDependencyFailure, err))
	}

	r.log.Debug().Msg("identity not resolved")
	return nil, nil
}
