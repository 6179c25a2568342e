package auth

import (
	"context"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the handler layer.
type Authenticator interface {
	// Register creates a new user account with the given email, username
	// and credential. Returns the created user or an error if registration
	// fails (taken email/username, weak credential).
	Register(ctx context.Context, email, username, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if valid.
	// The identifier is a username or an email address.
	Authenticate(ctx context.Context, identifier, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements. For passwords: length.
	ValidateCredential(credential string) error
}
