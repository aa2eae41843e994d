package handler

import (
	"time"

	"github.com/hmsv1/hospital-system/internal/core/domain"
	"github.com/hmsv1/hospital-system/internal/core/ports"
)

type createAccountRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"required,role"`
	Name     string `json:"name"     validate:"required,max=128"`
	Phone    string `json:"phone"    validate:"omitempty,max=32"`
}

// updateAccountRequest leaves Password optional; an empty value keeps the
// stored hash.
type updateAccountRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"required,role"`
	Name     string `json:"name"     validate:"required,max=128"`
	Phone    string `json:"phone"    validate:"omitempty,max=32"`
}

type accountResponse struct {
	domain.Identity
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r createAccountRequest) toInput() ports.AccountInput {
	return ports.AccountInput{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		Role:     domain.Role(r.Role),
		Name:     r.Name,
		Phone:    r.Phone,
	}
}

func (r updateAccountRequest) toInput() ports.AccountInput {
	return createAccountRequest(r).toInput()
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		Identity:  a.Identity(),
		Phone:     a.Phone,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAccountResponses(accounts []*domain.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}
