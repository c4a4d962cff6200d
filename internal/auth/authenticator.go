// Package auth implements account credentials and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/tripzy/internal/models"
)

// Authenticator is what AuthService needs from a credential scheme.
// Emails are compared case-insensitively.
type Authenticator interface {
	// Register stores a new traveler. A taken email yields ErrEmailExists.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the traveler behind email. It does not reveal
	// whether the email or the credential was wrong: both are
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	ValidateCredential(credential string) error
}

var _ Authenticator = (*PasswordAuthenticator)(nil)
