package ports

import (
	"context"

	"github.com/hmsv1/hospital-system/internal/core/domain"
)

// AccountInput carries the writable fields of an account. Password is
// plaintext; an empty Password on update keeps the stored hash.
type AccountInput struct {
	Username string
	Password string
	Email    string
	Role     domain.Role
	Name     string
	Phone    string
}

// AccountService defines use-case operations for staff accounts.
type AccountService interface {
	List(ctx context.Context) ([]*domain.Account, error)
	Get(ctx context.Context, id int64) (*domain.Account, error)
	Create(ctx context.Context, input AccountInput) (*domain.Account, error)
	Update(ctx context.Context, id int64, input AccountInput) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}
