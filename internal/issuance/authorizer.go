package issuance

import (
	"context"
	"log/slog"

	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/secrets"
)

// Authorizer decides whether an override secret allows re-issuing a
// credential. Deployments can swap in a real credential check.
type Authorizer interface {
	Authorize(ctx context.Context, secret string) bool
}

// SecretAuthorizer checks a single shared secret against a bcrypt hash.
// There is no lockout or rate limit.
type SecretAuthorizer struct {
	hash   string
	logger *slog.Logger
}

// NewSecretAuthorizer builds an authorizer from a bcrypt hash.
func NewSecretAuthorizer(hash string, logger *slog.Logger) (*SecretAuthorizer, error) {
	if hash == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "override secret hash is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SecretAuthorizer{hash: hash, logger: logger}, nil
}

// NewSecretAuthorizerFromPlain hashes a plaintext secret once at startup.
func NewSecretAuthorizerFromPlain(secret string, logger *slog.Logger) (*SecretAuthorizer, error) {
	hash, err := secrets.Hash(secret)
	if err != nil {
		return nil, err
	}
	return NewSecretAuthorizer(hash, logger)
}

func (a *SecretAuthorizer) Authorize(ctx context.Context, secret string) bool {
	if secret == "" {
		return false
	}
	err := secrets.Verify(secret, a.hash)
	if err == nil {
		return true
	}
	if !dErrors.HasCode(err, dErrors.CodeWrongSecret) {
		a.logger.ErrorContext(ctx, "override secret verification failed", "error", err)
	}
	return false
}

// DenyAll rejects every override. Used when no secret is configured.
type DenyAll struct{}

func (DenyAll) Authorize(context.Context, string) bool { return false }

var (
	_ Authorizer = (*SecretAuthorizer)(nil)
	_ Authorizer = DenyAll{}
)
