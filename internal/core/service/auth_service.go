package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/hmsv1/hospital-system/internal/core/domain"
	"github.com/hmsv1/hospital-system/internal/core/ports"
	"github.com/hmsv1/hospital-system/internal/pkg/metrics"
)

// Resolver finds the account named by a login identifier.
type Resolver interface {
	Resolve(ctx context.Context, identifier string) (*domain.Account, error)
}

// AuthService implements login: resolve, verify, issue.
type AuthService struct {
	resolver  Resolver
	verifier  ports.PasswordVerifier
	issuer    ports.TokenIssuer
	audit     ports.AuditSink
	decoyHash string
	log       zerolog.Logger
	now       func() time.Time
}

// AuthOption customises an AuthService at construction.
type AuthOption func(*AuthService)

// WithAuditSink sends one record per attempt to sink.
func WithAuditSink(sink ports.AuditSink) AuthOption {
	return func(s *AuthService) {
		if sink != nil {
			s.audit = sink
		}
	}
}

// WithDecoyHash makes unknown identifiers pay for a verification against
// hash, so both failure paths take comparable time.
func WithDecoyHash(hash string) AuthOption {
	return func(s *AuthService) { s.decoyHash = hash }
}

func NewAuthService(resolver Resolver, verifier ports.PasswordVerifier, issuer ports.TokenIssuer, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		resolver: resolver,
		verifier: verifier,
		issuer:   issuer,
		audit:    nopAuditSink{},
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate returns a fresh session for a matching credential.
//
// Failures:
//   - domain.ErrMalformedRequest: empty identifier or secret, no lookup made.
//   - domain.ErrInvalidCredentials: unknown identifier or wrong secret; the two
//     cases return the same error value.
//   - an error wrapping domain.ErrDependencyFailure: the store or token issuer failed.
func (s *AuthService) Authenticate(ctx context.Context, identifier, secret string) (*domain.Session, error) {
	entry := domain.LoginAudit{Identifier: strings.TrimSpace(identifier), At: s.now().UTC()}

	if entry.Identifier == "" || secret == "" {
		s.finish(entry, domain.OutcomeMalformed, "")
		return nil, domain.ErrMalformedRequest
	}

	account, err := s.resolver.Resolve(ctx, entry.Identifier)
	if err != nil {
		s.log.Error().Err(err).Msg("identity lookup failed")
		s.finish(entry, domain.OutcomeDependencyFailure, domain.ReasonLookupFailed)
		return nil, err
	}

	if account == nil {
		if s.decoyHash != "" {
			s.verify(secret, s.decoyHash)
		}
		s.finish(entry, domain.OutcomeInvalidCredentials, domain.ReasonUnknownIdentifier)
		return nil, domain.ErrInvalidCredentials
	}

	entry.AccountID = account.ID
	if !s.verify(secret, account.PasswordHash) {
		s.finish(entry, domain.OutcomeInvalidCredentials, domain.ReasonSecretMismatch)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue()
	if err != nil {
		s.log.Error().Err(err).Int64("account_id", account.ID).Msg("session token issue failed")
		s.finish(entry, domain.OutcomeDependencyFailure, domain.ReasonTokenFailed)
		return nil, oops.
			Code("AUTH_DEPENDENCY_FAILURE").
			With("operation", "issue token").
			Wrap(fmt.Errorf("issue session token: %w: %w", domain.ErrDependencyFailure, err))
	}

	s.finish(entry, domain.OutcomeSuccess, "")
	s.log.Info().Int64("account_id", account.ID).Str("role", string(account.Role)).Msg("login succeeded")

	return &domain.Session{Token: token, Identity: account.Identity()}, nil
}

func (s *AuthService) verify(presented, stored string) bool {
	timer := prometheus.NewTimer(metrics.PasswordVerifyDuration)
	defer timer.ObserveDuration()
	return s.verifier.Verify(presented, stored)
}

func (s *AuthService) finish(entry domain.LoginAudit, outcome domain.LoginOutcome, reason string) {
	entry.Outcome = outcome
	entry.Reason = reason
	metrics.LoginAttemptsTotal.WithLabelValues(string(outcome)).Inc()
	s.audit.Record(entry)
}

type nopAuditSink struct{}

func (nopAuditSink) Record(domain.LoginAudit) {}
