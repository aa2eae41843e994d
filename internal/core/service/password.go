package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/hmsv1/hospital-system/internal/core/ports"
)

// argon2id parameters used for newly produced hashes.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

const argon2Prefix = "$argon2id$"

var errEmptyPassword = errors.New("password cannot be empty")

// BcryptVerifier checks secrets against bcrypt hashes ($2a$, $2b$, $2y$).
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(presented, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

// Argon2idVerifier checks secrets against PHC-encoded argon2id hashes:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
type Argon2idVerifier struct{}

func (Argon2idVerifier) Verify(presented, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}
	if threads == 0 || threads > 255 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 || len(expected) > 1024 {
		return false
	}

	computed := argon2.IDKey([]byte(presented), salt, iterations, memory, uint8(threads), uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

type scheme struct {
	prefix   string
	verifier ports.PasswordVerifier
}

// SchemeVerifier picks a verifier by the stored value's format prefix.
// Values without a recognised prefix (legacy plaintext included) never verify.
type SchemeVerifier struct {
	schemes []scheme
}

// NewSchemeVerifier returns a verifier that understands bcrypt and argon2id.
func NewSchemeVerifier() *SchemeVerifier {
	b := BcryptVerifier{}
	return &SchemeVerifier{schemes: []scheme{
		{prefix: "$2a$", verifier: b},
		{prefix: "$2b$", verifier: b},
		{prefix: "$2y$", verifier: b},
		{prefix: argon2Prefix, verifier: Argon2idVerifier{}},
	}}
}

func (v *SchemeVerifier) Verify(presented, stored string) bool {
	for _, s := range v.schemes {
		if strings.HasPrefix(stored, s.prefix) {
			return s.verifier.Verify(presented, stored)
		}
	}
	return false
}

// Recognized reports whether stored is in a supported hash format.
func (v *SchemeVerifier) Recognized(stored string) bool {
	for _, s := range v.schemes {
		if strings.HasPrefix(stored, s.prefix) {
			return true
		}
	}
	return false
}

// BcryptHasher hashes secrets with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher falls back to bcrypt.DefaultCost when cost is out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// Argon2idHasher hashes secrets with argon2id and encodes them as PHC strings.
type Argon2idHasher struct{}

func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{}
}

func (h *Argon2idHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errEmptyPassword
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2id salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}
