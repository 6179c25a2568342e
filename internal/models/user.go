package models

// User represents a registered user account.
//
// Users are immutable once created except through account deletion, which
// cascades over everything they lead or own.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique).
	// Accepted interchangeably with Username at login.
	Email string

	// Username is the user's unique handle.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized out of the service.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
