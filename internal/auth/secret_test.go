package auth

import (
	"testing"

	"github.com/phrazzld/appforge-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSecretVerifierPlaintext(t *testing.T) {
	t.Parallel()

	verifier, err := NewSecretVerifier(config.AuthConfig{Secret: "s3cret"})
	require.NoError(t, err)

	assert.NoError(t, verifier.Verify("s3cret"))
	assert.ErrorIs(t, verifier.Verify("wrong"), ErrInvalidSecret)
	assert.ErrorIs(t, verifier.Verify(""), ErrInvalidSecret)
}

func TestSecretVerifierHash(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	verifier, err := NewSecretVerifier(config.AuthConfig{SecretHash: string(hash)})
	require.NoError(t, err)

	assert.NoError(t, verifier.Verify("s3cret"))
	assert.ErrorIs(t, verifier.Verify("wrong"), ErrInvalidSecret)
}

// A configured hash takes precedence over a configured plaintext secret.
func TestSecretVerifierHashPrecedence(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("from-hash"), bcrypt.MinCost)
	require.NoError(t, err)

	verifier, err := NewSecretVerifier(config.AuthConfig{
		Secret:     "from-plaintext",
		SecretHash: string(hash),
	})
	require.NoError(t, err)

	assert.NoError(t, verifier.Verify("from-hash"))
	assert.ErrorIs(t, verifier.Verify("from-plaintext"), ErrInvalidSecret)
}

func TestNewSecretVerifierRequiresCredential(t *testing.T) {
	t.Parallel()

	_, err := NewSecretVerifier(config.AuthConfig{})
	assert.Error(t, err)
}
