package ports

import (
	"context"

	"github.com/hmsv1/hospital-system/internal/core/domain"
)

// AuthService authenticates a credential and issues a session.
type AuthService interface {
	Authenticate(ctx context.Context, identifier, secret string) (*domain.Session, error)
}

// PasswordVerifier checks a presented secret against a stored representation.
type PasswordVerifier interface {
	Verify(presented, stored string) bool
}

// PasswordHasher produces a stored representation for a plaintext secret.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// TokenIssuer mints a fresh session token per successful login.
type TokenIssuer interface {
	Issue() (string, error)
}

// AuditSink receives one record per login attempt. Record must not block.
type AuditSink interface {
	Record(entry domain.LoginAudit)
}
