// Package auth verifies the shared-secret credential on inbound task
// submissions. This is the only authentication in the system: there are
// no sessions or bearer tokens, every request carries the secret.
package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/phrazzld/appforge-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidSecret indicates the submitted credential does not match the
// configured value.
var ErrInvalidSecret = errors.New("invalid shared secret")

// SecretVerifier checks submitted credentials against the configured
// secret. When a bcrypt hash is configured it takes precedence, so the
// plaintext secret never has to appear in the environment.
type SecretVerifier struct {
	secret string
	hash   []byte
}

// NewSecretVerifier creates a verifier from the auth configuration.
func NewSecretVerifier(cfg config.AuthConfig) (*SecretVerifier, error) {
	if cfg.Secret == "" && cfg.SecretHash == "" {
		return nil, errors.New("either auth secret or secret hash must be configured")
	}
	return &SecretVerifier{
		secret: cfg.Secret,
		hash:   []byte(cfg.SecretHash),
	}, nil
}

// Verify checks a submitted credential. Comparison is constant-time in
// both modes.
func (v *SecretVerifier) Verify(candidate string) error {
	if len(v.hash) > 0 {
		if err := bcrypt.CompareHashAndPassword(v.hash, []byte(candidate)); err != nil {
			return ErrInvalidSecret
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(v.secret), []byte(candidate)) != 1 {
		return ErrInvalidSecret
	}
	return nil
}
