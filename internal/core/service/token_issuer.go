package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultSessionTTL = 24 * time.Hour

// OpaqueTokenIssuer returns 128-bit random identifiers rendered as 32 hex
// characters. It keeps no record of what it has issued.
type OpaqueTokenIssuer struct{}

func NewOpaqueTokenIssuer() *OpaqueTokenIssuer {
	return &OpaqueTokenIssuer{}
}

func (OpaqueTokenIssuer) Issue() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(id[:]), nil
}

// SignedTokenIssuer returns HS256 JWTs whose only claims are a random jti,
// iat and exp. The token says nothing about the account it was issued to.
type SignedTokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSignedTokenIssuer(secret string, ttl time.Duration) (*SignedTokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("signed session tokens require a secret")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SignedTokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *SignedTokenIssuer) Issue() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	now := i.now()
	claims := jwt.RegisteredClaims{
		ID:        id.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}
